package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("acme", "cash-ledger", "token123")
	c.apiBaseURL = srv.URL
	c.rawBaseURL = srv.URL
	return c
}

func TestCreateIssue(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody createIssueRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Issue{Number: 77, HTMLURL: "https://github.com/acme/cash-ledger/issues/77"})
	})

	issue, err := c.CreateIssue(context.Background(), "Check: DE-BE-00042", "body", []string{"submission"})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}
	if issue.Number != 77 || !strings.HasSuffix(issue.HTMLURL, "/77") {
		t.Fatalf("unexpected issue %+v", issue)
	}
	if gotPath != "/repos/acme/cash-ledger/issues" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer token123" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody.Title != "Check: DE-BE-00042" || len(gotBody.Labels) != 1 {
		t.Fatalf("unexpected request body %+v", gotBody)
	}
}

func TestCreateIssueUpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})
	if _, err := c.CreateIssue(context.Background(), "t", "b", nil); err == nil {
		t.Fatal("expected error on non-201 response")
	}
}

func TestFetchLocationIDs(t *testing.T) {
	csvBody := "location_id,name,category\nDE-BE-00042,Cafe Satoshi,cafe\nDE-BE-00043,Kiosk 21,kiosk\n,,\n"
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(csvBody))
	})

	ids, err := c.FetchLocationIDs(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/acme/cash-ledger/main/data/locations.csv" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}
	if _, ok := ids["DE-BE-00042"]; !ok {
		t.Fatalf("missing id in %v", ids)
	}
}

func TestFetchLocationIDsMissingColumn(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("name,category\nCafe Satoshi,cafe\n"))
	})
	if _, err := c.FetchLocationIDs(context.Background()); err == nil {
		t.Fatal("expected error without location_id column")
	}
}
