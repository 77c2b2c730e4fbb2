// Package assist wraps the generative-AI collaborators of the two
// modules: the forensic summary writer and the speed-camera photo
// generator. Both are best-effort: every call returns a present value or
// absence, never an error — an unreachable or misbehaving model must not
// block document composition, which has its own fallback chain.
package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Config configures the Service.
type Config struct {
	APIKey     string        `yaml:"api_key"`
	TextModel  string        `yaml:"text_model"`  // default gemini-2.5-flash
	ImageModel string        `yaml:"image_model"` // default gemini-2.5-flash-image
	Timeout    time.Duration `yaml:"timeout"`     // per call, default 30s

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.TextModel == "" {
		c.TextModel = "gemini-2.5-flash"
	}
	if c.ImageModel == "" {
		c.ImageModel = "gemini-2.5-flash-image"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Service calls the generative models. A nil *Service is valid and
// reports absence for every request, which is how the application runs
// when no API key is configured.
type Service struct {
	cfg    Config
	client *genai.Client
}

// New creates a Service. Returns an error when the client cannot be
// constructed; callers degrade to a nil Service in that case.
func New(ctx context.Context, cfg Config) (*Service, error) {
	cfg.defaults()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("assist: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("assist: create client: %w", err)
	}
	return &Service{cfg: cfg, client: client}, nil
}

// AutopsyFacts are the structured report fields the summary is written from.
type AutopsyFacts struct {
	DeceasedName     string
	DateOfDeath      string
	CauseOfDeath     string
	ExternalInjuries string
	InternalFindings string
	Toxicology       string
	ExaminerNotes    string
}

// autopsyPrompt renders the summary instruction. Kept separate so the
// wording is testable without a live model.
func autopsyPrompt(f AutopsyFacts) string {
	var b strings.Builder
	b.WriteString("Verfasse einen formalen, gerichtsmedizinischen Zusammenfassungsbericht (auf Deutsch) basierend auf folgenden Daten:\n")
	fmt.Fprintf(&b, "Name des Verstorbenen: %s\n", f.DeceasedName)
	fmt.Fprintf(&b, "Todeszeitpunkt: %s\n", f.DateOfDeath)
	fmt.Fprintf(&b, "Todesursache: %s\n", f.CauseOfDeath)
	fmt.Fprintf(&b, "Äußere Verletzungen: %s\n", f.ExternalInjuries)
	fmt.Fprintf(&b, "Innere Befunde: %s\n", f.InternalFindings)
	fmt.Fprintf(&b, "Toxikologie: %s\n", f.Toxicology)
	fmt.Fprintf(&b, "Notizen des Untersuchers: %s\n", f.ExaminerNotes)
	b.WriteString("Der Bericht sollte sachlich, präzise und professionell formuliert sein, passend für eine Polizeiakte.")
	return b.String()
}

// AutopsySummary produces the court-ready summary text, or absence.
func (s *Service) AutopsySummary(ctx context.Context, f AutopsyFacts) (string, bool) {
	if s == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := s.client.Models.GenerateContent(ctx, s.cfg.TextModel,
		genai.Text(autopsyPrompt(f)), nil)
	if err != nil {
		s.cfg.Logger.Warn("assist: autopsy summary failed", "error", err)
		return "", false
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", false
	}
	return text, true
}

// Photo is a generated evidence image.
type Photo struct {
	MIME string
	Data []byte
}

// cameraPrompt renders the speed-camera instruction.
func cameraPrompt(vehicleModel, licensePlate string) string {
	var b strings.Builder
	b.WriteString("Erstelle ein realistisches Schwarz-Weiß-Foto einer Verkehrsüberwachungskamera (Blitzer).\n")
	fmt.Fprintf(&b, "Das Bild zeigt einen %s von vorne.\n", vehicleModel)
	fmt.Fprintf(&b, "Das Nummernschild %s sollte erkennbar sein.\n", licensePlate)
	b.WriteString("Das Bild sollte authentisch wirken: leichtes Rauschen, typischer Winkel einer Radarkamera, hoher Kontrast.")
	return b.String()
}

// SpeedCameraPhoto produces the evidence photo for a citation, or absence.
func (s *Service) SpeedCameraPhoto(ctx context.Context, vehicleModel, licensePlate string) (Photo, bool) {
	if s == nil {
		return Photo{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := s.client.Models.GenerateContent(ctx, s.cfg.ImageModel,
		genai.Text(cameraPrompt(vehicleModel, licensePlate)), nil)
	if err != nil {
		s.cfg.Logger.Warn("assist: camera photo failed", "error", err)
		return Photo{}, false
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return Photo{MIME: part.InlineData.MIMEType, Data: part.InlineData.Data}, true
			}
		}
	}
	return Photo{}, false
}
