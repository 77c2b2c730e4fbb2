// Package surface owns the off-screen render targets of the document
// pipeline. A Registry is the injectable replacement for the host page's
// single global mount point: composers project their output here, the
// export layer reads it back, and tests substitute an in-memory instance
// without any presentation surface.
package surface

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/Jan2821/Jan-OS/compose"
)

// Config configures a Registry.
type Config struct {
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Registry holds the currently mounted documents, keyed by target id. It
// is created at startup and lives for the process. At most one document is
// mounted per id; mounting replaces the previous content completely.
type Registry struct {
	cfg    Config
	mu     sync.RWMutex
	mounts map[string]*compose.Document
}

// NewRegistry creates an empty Registry.
func NewRegistry(cfg Config) *Registry {
	cfg.defaults()
	return &Registry{
		cfg:    cfg,
		mounts: make(map[string]*compose.Document),
	}
}

// Mount projects a document into its target. Replacement is atomic: a
// reader sees either the old document or the new one, never a mix.
func (r *Registry) Mount(doc *compose.Document) {
	if doc == nil || doc.TargetID == "" {
		return
	}
	r.mu.Lock()
	r.mounts[doc.TargetID] = doc
	r.mu.Unlock()
	r.cfg.Logger.Debug("surface: mounted", "target", doc.TargetID, "kind", doc.Kind)
}

// Lookup returns the document mounted at id. Side-effect free; the export
// layer calls this during validation.
func (r *Registry) Lookup(id string) (*compose.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.mounts[id]
	return doc, ok
}

// Unmount removes the document at id, if any.
func (r *Registry) Unmount(id string) {
	r.mu.Lock()
	delete(r.mounts, id)
	r.mu.Unlock()
}

// IDs lists the currently mounted target ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.mounts))
	for id := range r.mounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
