package form

import (
	"strconv"
	"strings"
)

// Extract flattens a decoded JSON payload into canonical field names with
// trimmed string values. Three shapes are recognized, in priority order:
//
//  1. a field array under "data.fields" (Tally-style webhook),
//  2. a flat object under "data",
//  3. a top-level "fields" array.
//
// Only the first matching shape is consulted. Null and empty values are
// dropped. An empty result means "no form data"; the caller treats that as
// a client error, not this package.
func Extract(payload map[string]any) map[string]string {
	if data, ok := payload["data"].(map[string]any); ok {
		if fields, ok := data["fields"].([]any); ok {
			return fromFieldArray(fields)
		}
		return fromFlatObject(data)
	}
	if fields, ok := payload["fields"].([]any); ok {
		return fromFieldArray(fields)
	}
	return map[string]string{}
}

func fromFieldArray(fields []any) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		entry, ok := f.(map[string]any)
		if !ok {
			continue
		}
		name, _ := entry["label"].(string)
		if strings.TrimSpace(name) == "" {
			name, _ = entry["key"].(string)
		}
		if strings.TrimSpace(name) == "" {
			continue
		}
		if value, ok := stringify(entry["value"]); ok {
			out[MapFieldName(name)] = value
		}
	}
	return out
}

func fromFlatObject(data map[string]any) map[string]string {
	out := make(map[string]string, len(data))
	for name, raw := range data {
		if value, ok := stringify(raw); ok {
			out[MapFieldName(name)] = value
		}
	}
	return out
}

// stringify coerces a JSON value to a trimmed string. Nulls, empty strings
// and nested objects report ok=false and are dropped.
func stringify(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	case []any:
		// multi-select answers arrive as arrays
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := stringify(item); ok {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, ", "), true
	default:
		return "", false
	}
}
