package ids

import (
	"strings"
	"testing"
	"time"
)

func TestNewSubmissionIDFormat(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	id := NewSubmissionID(now)
	if !strings.HasPrefix(id, "SUB-") {
		t.Fatalf("expected SUB- prefix, got %q", id)
	}
	if !ValidSubmissionID(id) {
		t.Fatalf("generated id %q does not pass its own format check", id)
	}
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("expected three segments, got %q", id)
	}
}

func TestNewSubmissionIDUnique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewSubmissionID(now)
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestValidSubmissionID(t *testing.T) {
	cases := []struct {
		id    string
		valid bool
	}{
		{"SUB-m5xk2p1q-a1b2c3d4", true},
		{"SUB-1-1", true},
		{"", false},
		{"SUB--", false},
		{"SUB-abc", false},
		{"sub-m5xk2p1q-a1b2c3d4", false},
		{"SUB-m5xk2p1q-A1B2C3D4", false},
		{"SUB-m5xk2p1q-a1b2c3d4-extra", false},
		{"submission:SUB-1-1", false},
		{"SUB-1-1\n", false},
	}
	for _, c := range cases {
		if got := ValidSubmissionID(c.id); got != c.valid {
			t.Errorf("ValidSubmissionID(%q) = %v, want %v", c.id, got, c.valid)
		}
	}
}

func TestNewULIDSortable(t *testing.T) {
	a := New()
	b := New()
	if a == b {
		t.Fatalf("expected distinct ids")
	}
	if len(a) != 26 || len(b) != 26 {
		t.Fatalf("unexpected ulid lengths: %q %q", a, b)
	}
}
