package station

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Jan2821/Jan-OS/compose"
	"github.com/Jan2821/Jan-OS/finance"
)

// Violation is the citation currently being worked on. The fine amount
// is only recomputed on an explicit calculate call, never on field
// updates: partial speed input must not churn the committed amount.
type Violation struct {
	ID            string                `json:"id"`
	DriverName    string                `json:"driver_name"`
	LicensePlate  string                `json:"license_plate"`
	VehicleModel  string                `json:"vehicle_model"`
	Kind          finance.ViolationKind `json:"violation_type"`
	Location      string                `json:"location"`
	SpeedLimit    int                   `json:"speed_limit"`
	ActualSpeed   int                   `json:"actual_speed"`
	FineAmount    float64               `json:"fine_amount"`
	Date          string                `json:"date"`
	EvidenceImage []byte                `json:"evidence_image,omitempty"`
	EvidenceMIME  string                `json:"evidence_mime,omitempty"`
}

func (m *Module) newViolationDraft() *Violation {
	now := m.cfg.Now()
	return &Violation{
		ID:         fmt.Sprintf("OWI-%d-%s", now.Year(), m.cfg.CitationRefs()),
		Kind:       finance.ViolationSpeeding,
		Location:   "Musterstraße / B1",
		SpeedLimit: 50,
		Date:       now.Format("2006-01-02T15:04"),
	}
}

func (m *Module) handleGetViolation(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	v := *m.violation
	m.mu.Unlock()
	writeJSON(w, http.StatusOK, v)
}

func (m *Module) handleUpdateViolation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DriverName   *string                `json:"driver_name"`
		LicensePlate *string                `json:"license_plate"`
		VehicleModel *string                `json:"vehicle_model"`
		Kind         *finance.ViolationKind `json:"violation_type"`
		Location     *string                `json:"location"`
		SpeedLimit   *int                   `json:"speed_limit"`
		ActualSpeed  *int                   `json:"actual_speed"`
		Date         *string                `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, "invalid request body", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	v := m.violation
	if req.DriverName != nil {
		v.DriverName = strings.TrimSpace(*req.DriverName)
	}
	if req.LicensePlate != nil {
		v.LicensePlate = strings.TrimSpace(*req.LicensePlate)
	}
	if req.VehicleModel != nil {
		v.VehicleModel = strings.TrimSpace(*req.VehicleModel)
	}
	if req.Kind != nil {
		v.Kind = *req.Kind
	}
	if req.Location != nil {
		v.Location = *req.Location
	}
	if req.SpeedLimit != nil {
		v.SpeedLimit = *req.SpeedLimit
	}
	if req.ActualSpeed != nil {
		v.ActualSpeed = *req.ActualSpeed
	}
	if req.Date != nil {
		v.Date = *req.Date
	}
	out := *v
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

// handleCalculateFine is the explicit commit of the speed inputs.
func (m *Module) handleCalculateFine(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	v := m.violation
	v.FineAmount = finance.FineFor(v.Kind, v.SpeedLimit, v.ActualSpeed)
	out := *v
	m.mu.Unlock()

	m.logEvent(r.Context(), "fine_calculated", "violation", out.ID, true)
	writeJSON(w, http.StatusOK, out)
}

func (m *Module) handleGeneratePhoto(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	model, plate := m.violation.VehicleModel, m.violation.LicensePlate
	m.mu.Unlock()

	photo, ok := m.cfg.Assist.SpeedCameraPhoto(r.Context(), model, plate)
	if !ok {
		jsonErr(w, "Bildgenerierung derzeit nicht verfügbar.", http.StatusServiceUnavailable)
		return
	}

	m.mu.Lock()
	m.violation.EvidenceImage = photo.Data
	m.violation.EvidenceMIME = photo.MIME
	out := *m.violation
	m.mu.Unlock()

	m.logEvent(r.Context(), "photo_generated", "violation", out.ID, true)
	writeJSON(w, http.StatusOK, out)
}

func (m *Module) handleExportCitation(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	v := *m.violation
	m.mu.Unlock()

	doc, err := m.cfg.Composer.Citation(compose.CitationInput{
		ID:            v.ID,
		DriverName:    v.DriverName,
		LicensePlate:  v.LicensePlate,
		VehicleModel:  v.VehicleModel,
		Kind:          v.Kind,
		Location:      v.Location,
		SpeedLimit:    v.SpeedLimit,
		ActualSpeed:   v.ActualSpeed,
		FineAmount:    v.FineAmount,
		Date:          m.cfg.Now(),
		EvidenceImage: v.EvidenceImage,
		EvidenceMIME:  v.EvidenceMIME,
	})
	res := m.runExport(r.Context(), doc, err, compose.TargetCitation, "Bussgeld.pdf")
	writeResult(w, res)
}
