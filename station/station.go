// Package station is the police module: case files, traffic citations,
// autopsy reports and the fax terminal. All state is session-local and
// held in memory; each record can be composed into a printable document
// and pushed through the export pipeline.
package station

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Jan2821/Jan-OS/assist"
	"github.com/Jan2821/Jan-OS/compose"
	"github.com/Jan2821/Jan-OS/export"
	"github.com/Jan2821/Jan-OS/idgen"
	"github.com/Jan2821/Jan-OS/observability"
	"github.com/Jan2821/Jan-OS/surface"
)

// Exports is the slice of the export pipeline the module needs.
// *export.Exporter satisfies it.
type Exports interface {
	Export(ctx context.Context, d export.Descriptor) export.Result
}

// Config configures the Module.
type Config struct {
	Surfaces *surface.Registry // required
	Exports  Exports           // required

	Assist *assist.Service            // optional, nil disables AI features
	Events *observability.EventLogger // optional

	Composer     *compose.Composer
	CaseRefs     idgen.Generator // case number suffix
	CitationRefs idgen.Generator // citation number suffix
	FaxIDs       idgen.Generator
	FaxDelay     time.Duration // simulated transmission time
	Now          func() time.Time
	Logger       *slog.Logger
}

func (c *Config) defaults() {
	if c.Composer == nil {
		c.Composer = compose.New(compose.Config{})
	}
	if c.CaseRefs == nil {
		c.CaseRefs = idgen.Numeric(3)
	}
	if c.CitationRefs == nil {
		c.CitationRefs = idgen.Numeric(4)
	}
	if c.FaxIDs == nil {
		c.FaxIDs = idgen.NanoID(9)
	}
	if c.FaxDelay <= 0 {
		c.FaxDelay = 3500 * time.Millisecond
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Module holds the station's session state.
type Module struct {
	cfg Config

	mu        sync.Mutex
	cases     []*Case
	violation *Violation
	report    *AutopsyReport
	faxes     []*Fax
}

// New creates the module with the stock duty roster: two seeded case
// files, a fresh citation draft and a fresh autopsy draft.
func New(cfg Config) *Module {
	cfg.defaults()
	m := &Module{cfg: cfg}
	m.cases = seedCases()
	m.violation = m.newViolationDraft()
	m.report = &AutopsyReport{ID: "OBD-" + cfg.CaseRefs()}
	return m
}

func (m *Module) logEvent(ctx context.Context, action, entityType, entityID string, success bool) {
	m.cfg.Events.LogEvent(ctx, observability.BusinessEvent{
		EventType:   "station",
		ServiceName: "station",
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Success:     success,
	})
}

// runExport mounts the composed document (or clears a stale mount when
// composition came back incomplete) and runs the export. Unmounting on
// incomplete input keeps a previously mounted revision from being
// captured under the current record's filename.
func (m *Module) runExport(ctx context.Context, doc *compose.Document, composeErr error, targetID, filename string) export.Result {
	if composeErr != nil {
		m.cfg.Surfaces.Unmount(targetID)
	} else {
		m.cfg.Surfaces.Mount(doc)
	}
	return m.cfg.Exports.Export(ctx, export.Descriptor{TargetID: targetID, Filename: filename})
}
