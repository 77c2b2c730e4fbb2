package export

import (
	"context"
	"log/slog"

	"github.com/Jan2821/Jan-OS/export/internal/browser"
)

// chromeEngine adapts the headless-Chrome engine to the Engine interface.
type chromeEngine struct {
	eng *browser.Engine
}

func (c chromeEngine) Convert(ctx context.Context, html string, opts ConvertOptions) ([]byte, error) {
	return c.eng.Convert(ctx, html, printOptions(opts))
}

// printOptions maps the capture configuration onto the browser's print
// options. Chrome's print pipeline is vector-based and has no raster
// quality knob, so JPEGQuality does not carry over.
func printOptions(opts ConvertOptions) browser.PrintOptions {
	return browser.PrintOptions{
		PaperWidthIn:  opts.PaperWidthIn,
		PaperHeightIn: opts.PaperHeightIn,
		Landscape:     opts.Landscape,
		MarginIn:      opts.MarginIn,
		Scale:         opts.Scale,
	}
}

// ResolveChrome starts the headless-Chrome engine and resolves the
// conversion capability once. A failed start degrades to Unavailable:
// the service keeps running and every export refuses with the retry
// notice until a restart. The returned closer stops the browser.
func ResolveChrome(ctx context.Context, remoteURL string, logger *slog.Logger) (Capability, func() error) {
	eng := browser.New(browser.Config{RemoteURL: remoteURL, Logger: logger})
	if err := eng.Start(ctx); err != nil {
		logger.Warn("conversion engine unavailable", "error", err)
		return Unavailable(), func() error { return nil }
	}
	return Available(chromeEngine{eng: eng}), eng.Close
}
