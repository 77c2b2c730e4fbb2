package assist

import (
	"context"
	"strings"
	"testing"
)

func TestNilServiceReportsAbsence(t *testing.T) {
	var s *Service

	if text, ok := s.AutopsySummary(context.Background(), AutopsyFacts{}); ok || text != "" {
		t.Fatalf("nil service returned summary %q, %v", text, ok)
	}
	if photo, ok := s.SpeedCameraPhoto(context.Background(), "Opel Astra", "MS-AB 123"); ok || photo.Data != nil {
		t.Fatalf("nil service returned photo %v, %v", photo, ok)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestAutopsyPromptIncludesFacts(t *testing.T) {
	p := autopsyPrompt(AutopsyFacts{
		DeceasedName: "Max Mustermann",
		CauseOfDeath: "Herzversagen",
		Toxicology:   "Proben im Labor",
	})

	for _, want := range []string{"Max Mustermann", "Herzversagen", "Proben im Labor", "gerichtsmedizinischen"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestCameraPromptIncludesVehicle(t *testing.T) {
	p := cameraPrompt("Opel Corsa", "MS-XY 987")

	if !strings.Contains(p, "Opel Corsa") || !strings.Contains(p, "MS-XY 987") {
		t.Errorf("prompt missing vehicle facts: %q", p)
	}
	if !strings.Contains(p, "Blitzer") {
		t.Errorf("prompt missing camera wording: %q", p)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.defaults()

	if cfg.TextModel == "" || cfg.ImageModel == "" {
		t.Fatal("models not defaulted")
	}
	if cfg.Timeout <= 0 {
		t.Fatal("timeout not defaulted")
	}
}
