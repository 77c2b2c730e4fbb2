// Package export orchestrates the document export protocol: locate the
// populated render target, invoke the conversion capability, validate the
// produced PDF, and hand the result over as a named file.
//
// Each attempt walks Idle → Validating → Capturing → Saving → Done, or
// ends in Error from Validating or Capturing onward. The result is typed;
// the transport layer decides how to surface failures to the user.
package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/singleflight"

	"github.com/Jan2821/Jan-OS/observability"
	"github.com/Jan2821/Jan-OS/surface"
)

// Descriptor identifies one export request.
type Descriptor struct {
	TargetID string `json:"target_id"`
	Filename string `json:"filename"`
}

// State of an export attempt.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateCapturing  State = "capturing"
	StateSaving     State = "saving"
	StateDone       State = "done"
	StateError      State = "error"
)

// Result is the typed outcome of an export attempt: either a saved file
// or a classified error. Never both.
type Result struct {
	State State  `json:"state"`
	Path  string `json:"path,omitempty"`
	Pages int    `json:"pages,omitempty"`
	Bytes int64  `json:"bytes,omitempty"`
	Err   *Error `json:"-"`
}

// Ok reports whether the attempt produced a file.
func (r Result) Ok() bool { return r.Err == nil }

// Config configures an Exporter.
type Config struct {
	// Surfaces is the render-target registry to capture from. Required.
	Surfaces *surface.Registry

	// Capability is the conversion engine resolved at startup.
	Capability Capability

	// DownloadDir receives the produced files. Default: "downloads".
	DownloadDir string `yaml:"download_dir"`

	// CaptureTimeout bounds a single engine call so a wedged converter
	// cannot hang an attempt forever. Default: 60s.
	CaptureTimeout time.Duration `yaml:"capture_timeout"`

	// OnState, when set, observes state transitions of each attempt. The
	// calling module uses it to show and clear its busy indication; it is
	// called on every exit path, including failure.
	OnState func(Descriptor, State)

	// Events, when set, records export outcomes. Optional.
	Events *observability.EventLogger

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.DownloadDir == "" {
		c.DownloadDir = "downloads"
	}
	if c.CaptureTimeout <= 0 {
		c.CaptureTimeout = 60 * time.Second
	}
	if c.OnState == nil {
		c.OnState = func(Descriptor, State) {}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Exporter runs export attempts. Concurrent attempts for the same target
// id are collapsed into a single capture: the render target is shared
// mutable state, and two unserialized captures of it would race with
// undefined snapshot contents.
type Exporter struct {
	cfg    Config
	flight singleflight.Group
}

type captured struct {
	pdf   []byte
	pages int
}

// New creates an Exporter.
func New(cfg Config) *Exporter {
	cfg.defaults()
	return &Exporter{cfg: cfg}
}

// Export runs one attempt. It never panics and never returns a partial
// file: on any failure the result carries a classified error and nothing
// is written.
func (e *Exporter) Export(ctx context.Context, d Descriptor) Result {
	log := e.cfg.Logger
	e.cfg.OnState(d, StateValidating)

	fail := func(kind ErrorKind, msg string, cause error) Result {
		e.cfg.OnState(d, StateError)
		e.logEvent(ctx, d, "export_failed", false)
		log.Warn("export failed", "target", d.TargetID, "kind", kind, "error", cause)
		return Result{State: StateError, Err: &Error{Kind: kind, Message: msg, Err: cause}}
	}

	// Validating: mount must exist, capability must be resolved. No side
	// effects happen before both checks pass.
	html, ok := e.cfg.Surfaces.HTML(d.TargetID)
	if !ok {
		return fail(KindMissingRenderTarget, msgMissingTarget, nil)
	}
	engine, ok := e.cfg.Capability.Engine()
	if !ok {
		return fail(KindCapabilityUnavailable, msgUnavailable, nil)
	}

	// Capturing: single-flight per target id. A second request issued
	// while a capture for the same target is in flight joins it and
	// shares the winner's snapshot.
	e.cfg.OnState(d, StateCapturing)
	v, err, shared := e.flight.Do(d.TargetID, func() (any, error) {
		cctx, cancel := context.WithTimeout(ctx, e.cfg.CaptureTimeout)
		defer cancel()

		pdf, err := engine.Convert(cctx, html, A4Portrait())
		if err != nil {
			return nil, fmt.Errorf("convert: %w", err)
		}
		pages, err := pageCount(pdf)
		if err != nil {
			return nil, fmt.Errorf("produced pdf invalid: %w", err)
		}
		return captured{pdf: pdf, pages: pages}, nil
	})
	if err != nil {
		return fail(KindConversionFailure, msgConversion, err)
	}
	snap := v.(captured)
	if shared {
		log.Debug("export joined in-flight capture", "target", d.TargetID)
	}

	// Saving: offer the document under the requested filename.
	e.cfg.OnState(d, StateSaving)
	path := filepath.Join(e.cfg.DownloadDir, safeFilename(d.Filename))
	if err := os.MkdirAll(e.cfg.DownloadDir, 0o755); err != nil {
		return fail(KindConversionFailure, msgConversion, err)
	}
	if err := os.WriteFile(path, snap.pdf, 0o644); err != nil {
		return fail(KindConversionFailure, msgConversion, err)
	}

	e.cfg.OnState(d, StateDone)
	e.logEvent(ctx, d, "export_done", true)
	log.Info("export done", "target", d.TargetID, "file", path, "pages", snap.pages, "bytes", len(snap.pdf))
	return Result{State: StateDone, Path: path, Pages: snap.pages, Bytes: int64(len(snap.pdf))}
}

func (e *Exporter) logEvent(ctx context.Context, d Descriptor, eventType string, success bool) {
	if e.cfg.Events == nil {
		return
	}
	e.cfg.Events.LogEvent(ctx, observability.BusinessEvent{
		EventType:   eventType,
		ServiceName: "export",
		EntityType:  "document",
		EntityID:    d.TargetID,
		Action:      d.Filename,
		Success:     success,
	})
}

// pageCount validates the produced bytes as a well-formed PDF and returns
// its page count.
func pageCount(pdf []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), conf)
	if err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}

// safeFilename strips path components and enforces the .pdf suffix the
// descriptor contract requires.
func safeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "Dokument.pdf"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
