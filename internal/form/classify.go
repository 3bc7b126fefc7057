package form

import (
	"errors"
	"strings"
)

// Kind is the submission kind, fixed at classification time.
type Kind string

const (
	KindNewLocation   Kind = "new-location"
	KindCheckNormal   Kind = "check-normal"
	KindCheckCritical Kind = "check-critical"
)

// criticalMarker identifies a critical check in the check_type field.
const criticalMarker = "critical"

var (
	ErrNoFormData    = errors.New("no form data found in request")
	errUnclassified  = errors.New("submission must contain either a new location (name, address, category) or a check (location_id, date_time)")
	errNoEvidence    = errors.New("critical check requires the critical_evidence field")
	errNoPublicPost  = errors.New("check requires the public_post_url field")
)

// Classify decides the submission kind from field presence. A payload that
// satisfies both the new-location and the check predicate classifies as
// new-location; the precedence is contractual, not an ordering accident.
func Classify(fields map[string]string) (Kind, error) {
	if len(fields) == 0 {
		return "", ErrNoFormData
	}
	if has(fields, FieldName) && has(fields, FieldAddress) && has(fields, FieldCategory) {
		return KindNewLocation, nil
	}
	if has(fields, FieldLocationID) && has(fields, FieldDateTime) {
		if isCritical(fields[FieldCheckType]) {
			if !has(fields, FieldCriticalEvidence) {
				return "", errNoEvidence
			}
			return KindCheckCritical, nil
		}
		if !has(fields, FieldPublicPostURL) {
			return "", errNoPublicPost
		}
		return KindCheckNormal, nil
	}
	return "", errUnclassified
}

func isCritical(checkType string) bool {
	return strings.Contains(strings.ToLower(checkType), criticalMarker)
}

func has(fields map[string]string, name string) bool {
	return strings.TrimSpace(fields[name]) != ""
}
