package form

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decodePayload(t *testing.T, raw string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return payload
}

// The three recognized shapes carrying an equivalent field set must yield an
// identical normalized mapping.
func TestExtractShapesEquivalent(t *testing.T) {
	want := map[string]string{
		"name":          "Cafe Satoshi",
		"address":       "Mainstr. 1, Berlin",
		"contact_value": "npub1xyz",
	}

	shapes := map[string]string{
		"nested field array": `{"data":{"fields":[
			{"key":"q1","label":"location_name","value":"Cafe Satoshi"},
			{"key":"q2","label":"full_address","value":"  Mainstr. 1, Berlin "},
			{"key":"q3","label":"payout_contact","value":"npub1xyz"}
		]}}`,
		"flat nested object": `{"data":{
			"location_name":"Cafe Satoshi",
			"full_address":"Mainstr. 1, Berlin",
			"payout_contact":"npub1xyz"
		}}`,
		"top-level field array": `{"fields":[
			{"key":"location_name","value":"Cafe Satoshi"},
			{"key":"full_address","value":"Mainstr. 1, Berlin"},
			{"key":"payout_contact","value":"npub1xyz"}
		]}`,
	}

	for name, raw := range shapes {
		got := Extract(decodePayload(t, raw))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %v, want %v", name, got, want)
		}
	}
}

func TestExtractDropsNullAndEmpty(t *testing.T) {
	got := Extract(decodePayload(t, `{"data":{
		"name":"x",
		"comment":null,
		"website":"   "
	}}`))
	want := map[string]string{"name": "x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractCoercesScalars(t *testing.T) {
	got := Extract(decodePayload(t, `{"data":{"comment":42,"check_type":true}}`))
	if got["comment"] != "42" {
		t.Errorf("number coercion: got %q", got["comment"])
	}
	if got["check_type"] != "true" {
		t.Errorf("bool coercion: got %q", got["check_type"])
	}
}

func TestExtractJoinsMultiSelect(t *testing.T) {
	got := Extract(decodePayload(t, `{"data":{"category":["cafe","restaurant"]}}`))
	if got["category"] != "cafe, restaurant" {
		t.Fatalf("got %q", got["category"])
	}
}

// Only the first matching shape is consulted: a data container hides a
// top-level fields array.
func TestExtractShapePriority(t *testing.T) {
	got := Extract(decodePayload(t, `{
		"data":{"name":"from data"},
		"fields":[{"key":"name","value":"from fields"}]
	}`))
	if got["name"] != "from data" {
		t.Fatalf("expected data shape to win, got %q", got["name"])
	}
}

func TestExtractUnrecognizedShape(t *testing.T) {
	got := Extract(decodePayload(t, `{"hello":"world"}`))
	if len(got) != 0 {
		t.Fatalf("expected empty mapping, got %v", got)
	}
}

func TestMapFieldNameDefaultsToIdentity(t *testing.T) {
	if got := MapFieldName("Store Name"); got != "name" {
		t.Errorf("mapped: got %q", got)
	}
	if got := MapFieldName("Unknown Field"); got != "unknown_field" {
		t.Errorf("identity fallback: got %q", got)
	}
}
