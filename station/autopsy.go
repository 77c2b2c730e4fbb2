package station

import (
	"encoding/json"
	"net/http"

	"github.com/Jan2821/Jan-OS/assist"
	"github.com/Jan2821/Jan-OS/compose"
)

// AutopsyReport is the forensic report currently being drafted.
type AutopsyReport struct {
	ID               string `json:"id"`
	DeceasedName     string `json:"deceased_name"`
	DateOfDeath      string `json:"date_of_death"`
	CauseOfDeath     string `json:"cause_of_death"`
	ExaminerNotes    string `json:"examiner_notes"`
	ExternalInjuries string `json:"external_injuries"`
	InternalFindings string `json:"internal_findings"`
	Toxicology       string `json:"toxicology"`
	GeneratedSummary string `json:"generated_summary,omitempty"`
}

func (m *Module) handleGetReport(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	rep := *m.report
	m.mu.Unlock()
	writeJSON(w, http.StatusOK, rep)
}

func (m *Module) handleUpdateReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeceasedName     *string `json:"deceased_name"`
		DateOfDeath      *string `json:"date_of_death"`
		CauseOfDeath     *string `json:"cause_of_death"`
		ExaminerNotes    *string `json:"examiner_notes"`
		ExternalInjuries *string `json:"external_injuries"`
		InternalFindings *string `json:"internal_findings"`
		Toxicology       *string `json:"toxicology"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, "invalid request body", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	rep := m.report
	if req.DeceasedName != nil {
		rep.DeceasedName = *req.DeceasedName
	}
	if req.DateOfDeath != nil {
		rep.DateOfDeath = *req.DateOfDeath
	}
	if req.CauseOfDeath != nil {
		rep.CauseOfDeath = *req.CauseOfDeath
	}
	if req.ExaminerNotes != nil {
		rep.ExaminerNotes = *req.ExaminerNotes
	}
	if req.ExternalInjuries != nil {
		rep.ExternalInjuries = *req.ExternalInjuries
	}
	if req.InternalFindings != nil {
		rep.InternalFindings = *req.InternalFindings
	}
	if req.Toxicology != nil {
		rep.Toxicology = *req.Toxicology
	}
	out := *rep
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

// handleGenerateSummary asks the AI collaborator for the closing summary.
// Absence is reported as a notice, never as a pipeline error.
func (m *Module) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	facts := assist.AutopsyFacts{
		DeceasedName:     m.report.DeceasedName,
		DateOfDeath:      m.report.DateOfDeath,
		CauseOfDeath:     m.report.CauseOfDeath,
		ExternalInjuries: m.report.ExternalInjuries,
		InternalFindings: m.report.InternalFindings,
		Toxicology:       m.report.Toxicology,
		ExaminerNotes:    m.report.ExaminerNotes,
	}
	m.mu.Unlock()

	summary, ok := m.cfg.Assist.AutopsySummary(r.Context(), facts)
	if !ok {
		jsonErr(w, "Zusammenfassung derzeit nicht verfügbar.", http.StatusServiceUnavailable)
		return
	}

	m.mu.Lock()
	m.report.GeneratedSummary = summary
	out := *m.report
	m.mu.Unlock()

	m.logEvent(r.Context(), "summary_generated", "autopsy", out.ID, true)
	writeJSON(w, http.StatusOK, out)
}

func (m *Module) handleExportReport(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	rep := *m.report
	m.mu.Unlock()

	doc, err := m.cfg.Composer.Autopsy(compose.AutopsyInput{
		ID:               rep.ID,
		DeceasedName:     rep.DeceasedName,
		DateOfDeath:      rep.DateOfDeath,
		CauseOfDeath:     rep.CauseOfDeath,
		ExternalInjuries: rep.ExternalInjuries,
		InternalFindings: rep.InternalFindings,
		Toxicology:       rep.Toxicology,
		ExaminerNotes:    rep.ExaminerNotes,
		GeneratedSummary: rep.GeneratedSummary,
	})
	res := m.runExport(r.Context(), doc, err, compose.TargetAutopsy, "Obduktion-"+rep.ID+".pdf")
	writeResult(w, res)
}
