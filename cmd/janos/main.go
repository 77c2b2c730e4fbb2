package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/Jan2821/Jan-OS/assist"
	"github.com/Jan2821/Jan-OS/autohaus"
	"github.com/Jan2821/Jan-OS/dbopen"
	"github.com/Jan2821/Jan-OS/export"
	"github.com/Jan2821/Jan-OS/observability"
	"github.com/Jan2821/Jan-OS/shield"
	"github.com/Jan2821/Jan-OS/station"
	"github.com/Jan2821/Jan-OS/surface"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	// Logging.
	var lvl slog.Level
	switch cfg.LogLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Business event log. In-memory by default: session state is
	// transient by design, the journal goes with it.
	eventsDB, err := dbopen.Open(cfg.EventsDB, dbopen.WithMkdirAll())
	if err != nil {
		slog.Error("events db", "error", err)
		os.Exit(1)
	}
	defer eventsDB.Close()
	if err := observability.Init(eventsDB); err != nil {
		slog.Error("events schema", "error", err)
		os.Exit(1)
	}
	events := observability.NewEventLogger(eventsDB)

	// Render surface + conversion capability, resolved once.
	surfaces := surface.NewRegistry(surface.Config{Logger: logger})
	capability, closeEngine := export.ResolveChrome(ctx, cfg.ChromeURL, logger)
	defer closeEngine()

	exporter := export.New(export.Config{
		Surfaces:    surfaces,
		Capability:  capability,
		DownloadDir: cfg.DownloadDir,
		Events:      events,
		Logger:      logger,
	})

	// AI collaborators, best-effort. A nil service reports absence.
	var helper *assist.Service
	if cfg.GeminiKey != "" {
		helper, err = assist.New(ctx, assist.Config{APIKey: cfg.GeminiKey, Logger: logger})
		if err != nil {
			slog.Warn("assist disabled", "error", err)
			helper = nil
		}
	}

	police := station.New(station.Config{
		Surfaces: surfaces,
		Exports:  exporter,
		Assist:   helper,
		Events:   events,
		Logger:   logger,
	})
	dealer := autohaus.New(autohaus.Config{
		Surfaces: surfaces,
		Exports:  exporter,
		Events:   events,
		Logger:   logger,
	})

	r := chi.NewRouter()
	for _, mw := range shield.DefaultStack() {
		r.Use(mw)
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(r chi.Router) {
		r.Use(shield.PasswordGate(cfg.AuthHash))

		police.RegisterHTTP(r)
		dealer.RegisterHTTP(r)

		r.Post("/api/export", handleExport(exporter))
		r.Get("/api/render/{id}", handleRender(surfaces))
		r.Get("/api/events", handleEvents(events))
	})

	// Optional MCP stdio transport next to HTTP.
	if cfg.MCPTransport == "stdio" {
		mcpSrv := mcp.NewServer(&mcp.Implementation{Name: "janos", Version: "1.0.0"}, nil)
		exporter.RegisterMCP(mcpSrv)
		registerFineTool(mcpSrv)
		go func() {
			if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil {
				slog.Error("mcp transport", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

// handleExport is the generic export endpoint for any mounted target.
func handleExport(exporter *export.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var d export.Descriptor
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		res := exporter.Export(r.Context(), d)
		if res.Ok() {
			writeJSON(w, http.StatusOK, res)
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
}

// handleRender serves the print-ready HTML projection of a mounted
// document, mainly for eyeballing layouts without a PDF round trip.
func handleRender(surfaces *surface.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		html, ok := surfaces.HTML(chi.URLParam(r, "id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no document mounted"})
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	}
}

func handleEvents(events *observability.EventLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}
		list, err := events.ListRecent(r.Context(), limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
