package privacy

import "crypto/sha256"

// Deterministic display names for public attribution, drawn from Bitcoin,
// cryptography and mathematics pioneers.
var adjectives = []string{
	"Clever", "Bright", "Brilliant", "Sharp", "Wise", "Savvy", "Astute", "Shrewd",
	"Keen", "Quick", "Witty", "Brainy", "Gifted", "Ingenious", "Nimble", "Insightful",
}

var figures = []string{
	"Satoshi", "Finney", "Szabo", "Back", "Nakamoto", "Andresen", "Maxwell", "Wuille", "Todd",
	"Diffie", "Hellman", "Rivest", "Shamir", "Merkle", "Chaum", "Schneier", "Bernstein",
	"Euler", "Gauss", "Turing", "Shannon", "Fermat", "Lovelace", "Noether", "Ramanujan", "Galois",
}

// Pseudonym derives a deterministic display name from a submitter id, for
// use in public issue bodies. The same id always yields the same name.
func Pseudonym(submitterID string) string {
	if submitterID == "" || submitterID == "unknown" {
		return "Anonymous"
	}
	sum := sha256.Sum256([]byte(submitterID))
	return adjectives[int(sum[0])%len(adjectives)] + " " + figures[int(sum[1])%len(figures)]
}
