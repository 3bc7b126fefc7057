// Package admin authenticates the administrative surface against a single
// shared credential. All failure modes collapse to one observable outcome;
// the distinction survives only in audit detail.
package admin

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"strings"
)

// MinTokenLength is the minimum acceptable reference credential length. A
// shorter (or absent) configured credential disables the surface entirely
// rather than accepting weak secrets.
const MinTokenLength = 16

// ErrUnauthorized is the single error the admin surface ever reports for an
// authentication failure, regardless of root cause.
var ErrUnauthorized = errors.New("admin: unauthorized")

// Audit action tags for authentication outcomes.
const (
	ActionAuthMissing = "auth-missing"
	ActionAuthFailed  = "auth-failed"
)

// Verdict is the authentication outcome. Action and Cause feed the audit
// log only; the HTTP response never varies with them.
type Verdict struct {
	OK     bool
	Action string
	Cause  string
}

// Authenticator validates bearer credentials against the configured
// reference.
type Authenticator struct {
	reference string
}

// NewAuthenticator creates an authenticator for the given reference
// credential. An empty or short reference is accepted here and rejected on
// every Verify call, so misconfiguration fails closed.
func NewAuthenticator(reference string) *Authenticator {
	return &Authenticator{reference: reference}
}

// Verify checks the Authorization header value. The credential comparison
// runs over fixed-length digests so its duration does not depend on where a
// mismatch occurs or on the presented length, and it runs before the
// reference-policy branches so those do not shape timing either.
func (a *Authenticator) Verify(authorization string) Verdict {
	token, err := extractBearerToken(authorization)
	if err != nil {
		return Verdict{Action: ActionAuthMissing, Cause: err.Error()}
	}

	refDigest := sha256.Sum256([]byte(a.reference))
	gotDigest := sha256.Sum256([]byte(token))
	match := subtle.ConstantTimeCompare(refDigest[:], gotDigest[:]) == 1

	switch {
	case a.reference == "":
		return Verdict{Action: ActionAuthFailed, Cause: "reference-missing"}
	case len(a.reference) < MinTokenLength:
		return Verdict{Action: ActionAuthFailed, Cause: "reference-too-short"}
	case !match:
		return Verdict{Action: ActionAuthFailed, Cause: "mismatch"}
	}
	return Verdict{OK: true}
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	const bearer = "Bearer "
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}
