// Package form normalizes untrusted submission payloads: it flattens the
// known payload shapes into one field mapping, classifies the submission
// kind and applies structural and format validation.
package form

import "strings"

// Canonical field names used throughout the service.
const (
	FieldName             = "name"
	FieldAddress          = "address"
	FieldCategory         = "category"
	FieldLocationID       = "location_id"
	FieldDateTime         = "date_time"
	FieldCheckType        = "check_type"
	FieldPublicPostURL    = "public_post_url"
	FieldCriticalEvidence = "critical_evidence"
	FieldPhotoURL         = "photo_url"
	FieldWebsite          = "website"
	FieldComment          = "comment"
	FieldContactMethod    = "contact_method"
	FieldContactValue     = "contact_value"
)

// fieldNameMap translates incoming form keys and labels to canonical names.
// Lookups that miss fall back to the normalized input, so the mapping is a
// total function over incoming keys.
var fieldNameMap = map[string]string{
	"location_name":    FieldName,
	"store_name":       FieldName,
	"name_of_location": FieldName,
	"full_address":     FieldAddress,
	"street_address":   FieldAddress,
	"location_address": FieldAddress,
	"location":         FieldLocationID,
	"location-id":      FieldLocationID,
	"locationid":       FieldLocationID,
	"visit_date":       FieldDateTime,
	"datetime":         FieldDateTime,
	"date":             FieldDateTime,
	"type_of_check":    FieldCheckType,
	"checktype":        FieldCheckType,
	"public_post":      FieldPublicPostURL,
	"post_url":         FieldPublicPostURL,
	"post_link":        FieldPublicPostURL,
	"evidence_url":     FieldCriticalEvidence,
	"critical_proof":   FieldCriticalEvidence,
	"photo":            FieldPhotoURL,
	"photo_link":       FieldPhotoURL,
	"notes":            FieldComment,
	"payout_method":    FieldContactMethod,
	"contact":          FieldContactValue,
	"payout_contact":   FieldContactValue,
	"contact_info":     FieldContactValue,
}

// MapFieldName returns the canonical name for an incoming key, defaulting to
// the normalized input when no mapping exists.
func MapFieldName(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "_")
	if mapped, ok := fieldNameMap[key]; ok {
		return mapped
	}
	return key
}
