package origin

import "testing"

func TestPublicGatekeeper(t *testing.T) {
	g := NewPublic("https://staging.example.com, https://preview.example.com")

	allowed := []string{
		"https://satspots.org",
		"https://www.satspots.org",
		"http://localhost:3000",
		"http://127.0.0.1:8080",
		"https://staging.example.com",
		"https://preview.example.com",
	}
	for _, o := range allowed {
		if !g.Allow(o) {
			t.Errorf("expected %q allowed", o)
		}
	}

	denied := []string{"", "https://evil.example.com", "http://satspots.org.evil.com"}
	for _, o := range denied {
		if g.Allow(o) {
			t.Errorf("expected %q denied", o)
		}
	}
}

func TestAdminGatekeeperHasNoTestingDefaults(t *testing.T) {
	g := NewAdmin("")

	if !g.Allow("https://admin.satspots.org") {
		t.Fatal("expected production admin origin allowed")
	}
	for _, o := range []string{"http://localhost:3000", "https://satspots.org", ""} {
		if g.Allow(o) {
			t.Errorf("expected %q denied on the admin surface", o)
		}
	}
}

func TestAdminGatekeeperOverride(t *testing.T) {
	g := NewAdmin("https://ops.example.com")
	if !g.Allow("https://ops.example.com") {
		t.Fatal("expected configured admin origin allowed")
	}
}
