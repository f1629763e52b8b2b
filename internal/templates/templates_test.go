package templates

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, provider := range []string{"Netflix", "Spotify", "Adobe Creative Cloud"} {
		if !c.Has(provider) {
			t.Errorf("Has(%q) = false, want true", provider)
		}
	}
	if c.Has("Some Unknown Service") {
		t.Error("Has() = true for unknown provider")
	}
}

func TestRender_DedicatedTemplate(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	draft, err := c.Render("Netflix", Fields{UserName: "Jamie Doe", UserEmail: "jamie@example.com"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if draft.Subject != "Cancellation Request - Account Termination" {
		t.Errorf("Subject = %q", draft.Subject)
	}
	if !strings.Contains(draft.Body, "Netflix Customer Support") {
		t.Errorf("body missing provider greeting: %q", draft.Body)
	}
	if !strings.Contains(draft.Body, "Jamie Doe") {
		t.Errorf("body missing user name: %q", draft.Body)
	}
}

func TestRender_CaseInsensitiveLookup(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	draft, err := c.Render("spotify", Fields{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if draft.Subject != "Cancel Premium Subscription" {
		t.Errorf("Subject = %q, want Spotify subject", draft.Subject)
	}
}

func TestRender_FallbackInterpolatesProvider(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	draft, err := c.Render("Planet Fitness", Fields{UserEmail: "sam@example.com"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(draft.Body, "Dear Planet Fitness Support Team") {
		t.Errorf("fallback body missing provider name: %q", draft.Body)
	}
	if !strings.Contains(draft.Body, "sam@example.com") {
		t.Errorf("fallback body missing email: %q", draft.Body)
	}
	// Name was not supplied so the placeholder survives for manual editing.
	if !strings.Contains(draft.Body, "[Your Name]") {
		t.Errorf("fallback body missing name placeholder: %q", draft.Body)
	}
}
