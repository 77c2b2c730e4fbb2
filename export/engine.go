package export

import "context"

// Engine converts a projected HTML page into a paginated PDF. The call is
// the pipeline's only suspending operation; implementations must honor ctx
// cancellation.
type Engine interface {
	Convert(ctx context.Context, html string, opts ConvertOptions) ([]byte, error)
}

// ConvertOptions is the fixed conversion configuration. The pipeline
// always captures with A4Portrait; the struct exists so the engine
// boundary stays explicit and tests can assert what was requested.
type ConvertOptions struct {
	PaperWidthIn  float64 // inches
	PaperHeightIn float64
	Landscape     bool
	MarginIn      float64
	Scale         float64
	JPEGQuality   float64 // embedded raster quality, 0..1
}

// A4Portrait returns the capture configuration used for every document:
// A4, portrait, zero margin, 2× scale, JPEG quality 0.98.
func A4Portrait() ConvertOptions {
	return ConvertOptions{
		PaperWidthIn:  8.27,
		PaperHeightIn: 11.69,
		Landscape:     false,
		MarginIn:      0,
		Scale:         2,
		JPEGQuality:   0.98,
	}
}

// Capability is the resolved conversion engine. It is decided once at
// startup — Available(engine) or Unavailable() — and passed to the
// Exporter, keeping ambient global state out of the control path.
type Capability struct {
	engine Engine
}

// Available wraps a working engine.
func Available(e Engine) Capability {
	return Capability{engine: e}
}

// Unavailable is the absent capability. Every export through it is
// refused during validation.
func Unavailable() Capability {
	return Capability{}
}

// Engine returns the resolved engine, or false when unavailable.
func (c Capability) Engine() (Engine, bool) {
	return c.engine, c.engine != nil
}
