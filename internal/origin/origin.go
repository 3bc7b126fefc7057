// Package origin validates the Origin header of inbound requests against
// per-surface allow-lists. The webhook and admin surfaces keep independent
// lists; the admin list carries no default testing entries.
package origin

import "strings"

// Gatekeeper holds the allowed origin prefixes for one surface.
type Gatekeeper struct {
	allowed []string
}

// publicDefaults are the production form origins.
var publicDefaults = []string{
	"https://satspots.org",
	"https://www.satspots.org",
	"http://localhost:",
	"http://127.0.0.1:",
}

// adminDefault is the only origin the admin surface trusts out of the box.
var adminDefault = "https://admin.satspots.org"

// NewPublic builds the webhook-surface gatekeeper. devOrigins is the
// comma-separated override supplied out-of-band for non-production testing.
func NewPublic(devOrigins string) *Gatekeeper {
	return &Gatekeeper{allowed: append(parseList(devOrigins), publicDefaults...)}
}

// NewAdmin builds the stricter admin-surface gatekeeper.
func NewAdmin(origins string) *Gatekeeper {
	return &Gatekeeper{allowed: append(parseList(origins), adminDefault)}
}

// Allow reports whether the Origin header value is acceptable. An absent
// origin is always rejected.
func (g *Gatekeeper) Allow(origin string) bool {
	if origin == "" {
		return false
	}
	for _, prefix := range g.allowed {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}

func parseList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
