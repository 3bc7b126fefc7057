// Package github talks to the external issue tracker and ledger repository.
// Both are collaborators, not owned state: the core only cares about the
// created issue's number and URL, and about the set of location ids in the
// ledger CSV.
package github

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const requestTimeout = 10 * time.Second

// Client wraps the GitHub REST API for one owner/repo pair.
type Client struct {
	owner string
	repo  string
	token string

	http    *http.Client
	limiter *rate.Limiter

	// Overridable for tests.
	apiBaseURL string
	rawBaseURL string
}

// NewClient creates a client with bounded timeouts and request pacing so a
// burst of submissions cannot trip the API's abuse limits.
func NewClient(owner, repo, token string) *Client {
	return &Client{
		owner:      owner,
		repo:       repo,
		token:      token,
		http:       &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(1), 5),
		apiBaseURL: "https://api.github.com",
		rawBaseURL: "https://raw.githubusercontent.com",
	}
}

// Issue is the subset of the created issue the core needs.
type Issue struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}

type createIssueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

// CreateIssue opens an issue and returns its number and URL.
func (c *Client) CreateIssue(ctx context.Context, title, body string, labels []string) (Issue, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Issue{}, err
	}
	payload, err := json.Marshal(createIssueRequest{Title: title, Body: body, Labels: labels})
	if err != nil {
		return Issue{}, err
	}
	url := fmt.Sprintf("%s/repos/%s/%s/issues", c.apiBaseURL, c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Issue{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Issue{}, fmt.Errorf("create issue: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Issue{}, fmt.Errorf("create issue: unexpected status %d: %s", resp.StatusCode, snippet)
	}
	var issue Issue
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return Issue{}, fmt.Errorf("create issue: decode response: %w", err)
	}
	return issue, nil
}

// FetchLocationIDs downloads the ledger CSV and returns the location_id
// column as a set. Used as the location cache's fetch func.
func (c *Client) FetchLocationIDs(ctx context.Context) (map[string]struct{}, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/%s/%s/main/data/locations.csv", c.rawBaseURL, c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ledger: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch ledger: unexpected status %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("fetch ledger: read header: %w", err)
	}
	idCol := -1
	for i, name := range header {
		if name == "location_id" {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("fetch ledger: no location_id column")
	}

	valid := make(map[string]struct{})
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetch ledger: read row: %w", err)
		}
		if idCol < len(row) && row[idCol] != "" {
			valid[row[idCol]] = struct{}{}
		}
	}
	return valid, nil
}
