// Package autohaus is the dealership module: vehicle inventory, parts
// stock, the workshop invoice desk and the sales office. State is
// session-local and in memory; the invoice and the pending sale can be
// composed into printable documents and exported.
package autohaus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Jan2821/Jan-OS/compose"
	"github.com/Jan2821/Jan-OS/export"
	"github.com/Jan2821/Jan-OS/idgen"
	"github.com/Jan2821/Jan-OS/observability"
	"github.com/Jan2821/Jan-OS/surface"
)

// Exports is the slice of the export pipeline the module needs.
type Exports interface {
	Export(ctx context.Context, d export.Descriptor) export.Result
}

// Config configures the Module.
type Config struct {
	Surfaces *surface.Registry // required
	Exports  Exports           // required

	Events *observability.EventLogger // optional

	Composer *compose.Composer
	IDs      idgen.Generator // inventory record ids
	Now      func() time.Time
	Logger   *slog.Logger
}

func (c *Config) defaults() {
	if c.Composer == nil {
		c.Composer = compose.New(compose.Config{})
	}
	if c.IDs == nil {
		c.IDs = idgen.NanoID(9)
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Module holds the dealership's session state.
type Module struct {
	cfg Config

	mu      sync.Mutex
	cars    []*Car
	parts   []*Part
	invoice invoiceDraft
	sale    saleDraft
}

// New creates the module with the stock Opel inventory and parts shelf.
func New(cfg Config) *Module {
	cfg.defaults()
	return &Module{
		cfg:     cfg,
		cars:    seedCars(),
		parts:   seedParts(),
		invoice: invoiceDraft{LaborRate: defaultLaborRate},
	}
}

func (m *Module) logEvent(ctx context.Context, action, entityType, entityID string, success bool) {
	m.cfg.Events.LogEvent(ctx, observability.BusinessEvent{
		EventType:   "autohaus",
		ServiceName: "autohaus",
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Success:     success,
	})
}

// runExport mirrors the station's mount-then-export step.
func (m *Module) runExport(ctx context.Context, doc *compose.Document, composeErr error, targetID, filename string) export.Result {
	if composeErr != nil {
		m.cfg.Surfaces.Unmount(targetID)
	} else {
		m.cfg.Surfaces.Mount(doc)
	}
	return m.cfg.Exports.Export(ctx, export.Descriptor{TargetID: targetID, Filename: filename})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeResult(w http.ResponseWriter, res export.Result) {
	if res.Ok() {
		writeJSON(w, http.StatusOK, map[string]any{
			"state": string(res.State),
			"path":  res.Path,
			"pages": res.Pages,
			"bytes": res.Bytes,
		})
		return
	}
	status := http.StatusInternalServerError
	switch res.Err.Kind {
	case export.KindMissingRenderTarget:
		status = http.StatusNotFound
	case export.KindCapabilityUnavailable:
		status = http.StatusServiceUnavailable
	case export.KindConversionFailure:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{
		"state": string(res.State),
		"error": res.Err.Message,
	})
}
