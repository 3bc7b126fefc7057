package form

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// PlaceholderNotSpecified is the literal the form front end sends for
// optional URL answers the submitter skipped.
const PlaceholderNotSpecified = "n/a"

// locationIDPattern: <2-letter country>-<2-letter region>-<5 digits>.
var locationIDPattern = regexp.MustCompile(`^[A-Z]{2}-[A-Z]{2}-[0-9]{5}$`)

// urlFields must parse as absolute http(s) URLs when present.
var urlFields = []string{
	FieldPublicPostURL,
	FieldCriticalEvidence,
	FieldPhotoURL,
	FieldWebsite,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Validate applies structural and format checks after classification.
// knownLocation reports whether a well-formed location id exists in the
// ledger; a nil func disables the existence check (empty or unavailable
// cache).
func Validate(fields map[string]string, now time.Time, knownLocation func(string) bool) error {
	if id := fields[FieldLocationID]; id != "" {
		if !locationIDPattern.MatchString(id) {
			return fmt.Errorf("location_id %q does not match the expected format", id)
		}
		if knownLocation != nil && !knownLocation(id) {
			return fmt.Errorf("location_id %q is not a known location", id)
		}
	}

	if raw := fields[FieldDateTime]; raw != "" {
		// Unparseable values pass through: the front end sends
		// browser-local formats and the date is advisory.
		if t, ok := parseDate(raw); ok && t.After(now) {
			return fmt.Errorf("date_time must not be in the future")
		}
	}

	for _, name := range urlFields {
		raw := fields[name]
		if raw == "" || strings.EqualFold(raw, PlaceholderNotSpecified) {
			continue
		}
		if !isAbsoluteURL(raw) {
			return fmt.Errorf("field %s must be a valid URL", name)
		}
	}
	return nil
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
