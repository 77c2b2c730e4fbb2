package station

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jan2821/Jan-OS/export"
)

// RegisterHTTP mounts the module's endpoints on the router.
func (m *Module) RegisterHTTP(r chi.Router) {
	r.Get("/api/station/cases", m.handleListCases)
	r.Post("/api/station/cases", m.handleCreateCase)
	r.Get("/api/station/cases/{id}", m.handleGetCase)
	r.Put("/api/station/cases/{id}", m.handleUpdateCase)
	r.Post("/api/station/cases/{id}/export", m.handleExportCase)

	r.Get("/api/station/traffic", m.handleGetViolation)
	r.Put("/api/station/traffic", m.handleUpdateViolation)
	r.Post("/api/station/traffic/calculate", m.handleCalculateFine)
	r.Post("/api/station/traffic/photo", m.handleGeneratePhoto)
	r.Post("/api/station/traffic/export", m.handleExportCitation)

	r.Get("/api/station/autopsy", m.handleGetReport)
	r.Put("/api/station/autopsy", m.handleUpdateReport)
	r.Post("/api/station/autopsy/summary", m.handleGenerateSummary)
	r.Post("/api/station/autopsy/export", m.handleExportReport)

	r.Get("/api/station/fax", m.handleListFaxes)
	r.Post("/api/station/fax", m.handleSendFax)
	r.Post("/api/station/fax/export", m.handleExportFaxLog)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeResult translates an export result into the module's HTTP shape.
// Failures carry the user-facing German notice from the error taxonomy.
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
