// Package browser implements the conversion engine on headless Chrome:
// launch (or connect to a remote instance) via Rod, project HTML into a
// fresh page, and print it to PDF over CDP.
package browser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// PrintOptions is the paper configuration for a single print job. The
// exporter maps its capture configuration onto this type, keeping this
// package a leaf with no dependency on the pipeline above it.
type PrintOptions struct {
	PaperWidthIn  float64 // inches
	PaperHeightIn float64
	Landscape     bool
	MarginIn      float64
	Scale         float64
}

// Config configures the engine.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string `yaml:"remote_url"`

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Engine holds a connected Chrome.
type Engine struct {
	cfg     Config
	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// New creates an Engine. Call Start to launch Chrome.
func New(cfg Config) *Engine {
	cfg.defaults()
	return &Engine{cfg: cfg}
}

// Start launches Chrome (or connects to a remote instance). Callers
// resolve the conversion capability from its outcome: a failed Start
// means the service runs without one.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return fmt.Errorf("browser: engine is closed")
	}

	wsURL := e.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().Headless(true)
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		e.lnch = l
		e.cfg.Logger.Info("browser: launched local chrome", "url", wsURL)
	} else {
		e.cfg.Logger.Info("browser: connecting to remote", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("browser: connect: %w", err)
	}
	e.browser = b
	return nil
}

// Close shuts down Chrome.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	if e.browser != nil {
		if err := e.browser.Close(); err != nil {
			return fmt.Errorf("browser: close: %w", err)
		}
		e.browser = nil
	}
	if e.lnch != nil {
		e.lnch.Cleanup()
		e.lnch = nil
	}
	return nil
}

// Convert projects the HTML into a fresh page and prints it to PDF with
// the requested paper configuration. The page is discarded afterwards, so
// consecutive captures never observe each other's content.
func (e *Engine) Convert(ctx context.Context, html string, opts PrintOptions) ([]byte, error) {
	e.mu.Lock()
	b := e.browser
	e.mu.Unlock()
	if b == nil {
		return nil, fmt.Errorf("browser: not started")
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, fmt.Errorf("browser: create page: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("browser: set content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("browser: wait load: %w", err)
	}

	req := &proto.PagePrintToPDF{
		Landscape:       opts.Landscape,
		PrintBackground: true,
		Scale:           ptr(opts.Scale),
		PaperWidth:      ptr(opts.PaperWidthIn),
		PaperHeight:     ptr(opts.PaperHeightIn),
		MarginTop:       ptr(opts.MarginIn),
		MarginBottom:    ptr(opts.MarginIn),
		MarginLeft:      ptr(opts.MarginIn),
		MarginRight:     ptr(opts.MarginIn),
	}
	stream, err := page.PDF(req)
	if err != nil {
		return nil, fmt.Errorf("browser: print to pdf: %w", err)
	}
	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("browser: read pdf stream: %w", err)
	}
	e.cfg.Logger.Debug("browser: converted", "bytes", len(pdf))
	return pdf, nil
}

func ptr(v float64) *float64 { return &v }
