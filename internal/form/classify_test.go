package form

import (
	"errors"
	"testing"
)

func TestClassifyNewLocation(t *testing.T) {
	kind, err := Classify(map[string]string{
		FieldName:     "Cafe Satoshi",
		FieldAddress:  "Mainstr. 1",
		FieldCategory: "cafe",
	})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if kind != KindNewLocation {
		t.Fatalf("got %q", kind)
	}
}

func TestClassifyNormalCheck(t *testing.T) {
	kind, err := Classify(map[string]string{
		FieldLocationID:    "DE-BE-00042",
		FieldDateTime:      "2026-01-15T14:00",
		FieldPublicPostURL: "https://njump.me/note1abc",
	})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if kind != KindCheckNormal {
		t.Fatalf("got %q", kind)
	}
}

func TestClassifyCriticalCheck(t *testing.T) {
	fields := map[string]string{
		FieldLocationID: "DE-BE-00042",
		FieldDateTime:   "2026-01-15T14:00",
		FieldCheckType:  "Critical change",
	}

	// Without evidence the critical check is rejected.
	if _, err := Classify(fields); err == nil {
		t.Fatal("expected rejection without critical_evidence")
	}

	// With evidence it is accepted and does not require the public post.
	fields[FieldCriticalEvidence] = "https://example.com/photo.jpg"
	kind, err := Classify(fields)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if kind != KindCheckCritical {
		t.Fatalf("got %q", kind)
	}
}

func TestClassifyNormalCheckRequiresPublicPost(t *testing.T) {
	_, err := Classify(map[string]string{
		FieldLocationID: "DE-BE-00042",
		FieldDateTime:   "2026-01-15T14:00",
	})
	if err == nil {
		t.Fatal("expected rejection without public_post_url")
	}
}

// A payload satisfying both predicates classifies as new-location. The
// precedence is a documented contract.
func TestClassifyPrefersNewLocation(t *testing.T) {
	kind, err := Classify(map[string]string{
		FieldName:          "Cafe Satoshi",
		FieldAddress:       "Mainstr. 1",
		FieldCategory:      "cafe",
		FieldLocationID:    "DE-BE-00042",
		FieldDateTime:      "2026-01-15T14:00",
		FieldPublicPostURL: "https://njump.me/note1abc",
	})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if kind != KindNewLocation {
		t.Fatalf("expected new-location precedence, got %q", kind)
	}
}

func TestClassifyNeitherPredicate(t *testing.T) {
	if _, err := Classify(map[string]string{FieldName: "only a name"}); err == nil {
		t.Fatal("expected structural rejection")
	}
}

func TestClassifyEmptyMapping(t *testing.T) {
	if _, err := Classify(map[string]string{}); !errors.Is(err, ErrNoFormData) {
		t.Fatalf("expected ErrNoFormData, got %v", err)
	}
}
