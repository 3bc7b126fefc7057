// Package privacy splits a validated submission into its public and private
// halves and derives the pseudonymous submitter identity.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"satspots.org/internal/form"
)

// privateFieldNames never leave the submission store.
var privateFieldNames = map[string]struct{}{
	form.FieldContactMethod: {},
	form.FieldContactValue:  {},
}

// Partition splits fields into two disjoint mappings whose union equals the
// input. The private half holds the payout contact; everything else is
// public.
func Partition(fields map[string]string) (public, private map[string]string) {
	public = make(map[string]string, len(fields))
	private = make(map[string]string, len(privateFieldNames))
	for name, value := range fields {
		if _, ok := privateFieldNames[name]; ok {
			private[name] = value
		} else {
			public[name] = value
		}
	}
	return public, private
}

// SubmitterID derives the stable pseudonymous identity from the contact
// fields: USER-<12 hex> of a one-way digest over the normalized
// method:value pair. Returns "" when either contact field is missing; that
// is not an error, the submission is simply unattributed.
//
// The id is stored alongside the raw contact, not instead of it; secrecy
// relies on access control, not on the hash being secret.
func SubmitterID(private map[string]string) string {
	method := normalizeContact(private[form.FieldContactMethod])
	value := normalizeContact(private[form.FieldContactValue])
	if method == "" || value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(method + ":" + value))
	return "USER-" + hex.EncodeToString(sum[:])[:12]
}

func normalizeContact(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
