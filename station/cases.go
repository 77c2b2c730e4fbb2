package station

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Jan2821/Jan-OS/compose"
)

// CaseStatus is the lifecycle state of a case file.
type CaseStatus string

const (
	CaseOpen     CaseStatus = "OFFEN"
	CaseClosed   CaseStatus = "GESCHLOSSEN"
	CaseArchived CaseStatus = "ARCHIVIERT"
	CasePending  CaseStatus = "IN BEARBEITUNG"
)

func (s CaseStatus) valid() bool {
	switch s {
	case CaseOpen, CaseClosed, CaseArchived, CasePending:
		return true
	}
	return false
}

// Case is one police case file.
type Case struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Officer     string     `json:"officer_in_charge"`
	DateCreated string     `json:"date_created"`
	Status      CaseStatus `json:"status"`
	Suspects    []string   `json:"suspects"`
	Evidence    []string   `json:"evidence"`
}

// seedCases is the duty roster every fresh session starts with.
func seedCases() []*Case {
	return []*Case{
		{
			ID:          "AK-2023-992",
			Title:       "Diebstahl Bäckerei Müller",
			Description: "Einbruch in der Nacht zum Sonntag. Kasse entwendet.",
			Officer:     "PK Schmidt",
			DateCreated: "2023-10-24",
			Status:      CaseOpen,
			Suspects:    []string{"Unbekannt"},
			Evidence:    []string{"Überwachunsgvideo", "Fußabdruck"},
		},
		{
			ID:          "AK-2023-841",
			Title:       "Verkehrsunfall B404",
			Description: "Auffahrunfall mit Personenschaden.",
			Officer:     "KOK Weber",
			DateCreated: "2023-09-15",
			Status:      CaseClosed,
			Suspects:    []string{},
			Evidence:    []string{"Unfallbericht"},
		},
	}
}

func (m *Module) findCase(id string) *Case {
	for _, c := range m.cases {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (m *Module) handleListCases(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	out := make([]Case, 0, len(m.cases))
	for _, c := range m.cases {
		out = append(out, *c)
	}
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (m *Module) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	c := &Case{
		ID:          fmt.Sprintf("AK-%d-%s", m.cfg.Now().Year(), m.cfg.CaseRefs()),
		Title:       "Neue Akte",
		DateCreated: m.cfg.Now().Format("2006-01-02"),
		Status:      CaseOpen,
		Suspects:    []string{},
		Evidence:    []string{},
	}
	m.cases = append([]*Case{c}, m.cases...)
	m.mu.Unlock()

	m.logEvent(r.Context(), "case_created", "case", c.ID, true)
	writeJSON(w, http.StatusCreated, c)
}

func (m *Module) handleGetCase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m.mu.Lock()
	c := m.findCase(id)
	m.mu.Unlock()

	if c == nil {
		jsonErr(w, "case not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (m *Module) handleUpdateCase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Title       *string     `json:"title"`
		Description *string     `json:"description"`
		Officer     *string     `json:"officer_in_charge"`
		Status      *CaseStatus `json:"status"`
		Suspects    []string    `json:"suspects"`
		Evidence    []string    `json:"evidence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status != nil && !req.Status.valid() {
		jsonErr(w, "invalid status", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	c := m.findCase(id)
	if c != nil {
		if req.Title != nil {
			c.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			c.Description = *req.Description
		}
		if req.Officer != nil {
			c.Officer = strings.TrimSpace(*req.Officer)
		}
		if req.Status != nil {
			c.Status = *req.Status
		}
		if req.Suspects != nil {
			c.Suspects = req.Suspects
		}
		if req.Evidence != nil {
			c.Evidence = req.Evidence
		}
	}
	m.mu.Unlock()

	if c == nil {
		jsonErr(w, "case not found", http.StatusNotFound)
		return
	}
	m.logEvent(r.Context(), "case_updated", "case", c.ID, true)
	writeJSON(w, http.StatusOK, c)
}

func (m *Module) handleExportCase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m.mu.Lock()
	c := m.findCase(id)
	var in compose.CaseFileInput
	if c != nil {
		in = compose.CaseFileInput{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Officer:     c.Officer,
			DateCreated: c.DateCreated,
			Status:      string(c.Status),
			Suspects:    append([]string(nil), c.Suspects...),
			Evidence:    append([]string(nil), c.Evidence...),
		}
	}
	m.mu.Unlock()

	doc, err := m.cfg.Composer.CaseFile(in)
	res := m.runExport(r.Context(), doc, err, compose.TargetCaseFile, "Akte-"+id+".pdf")
	writeResult(w, res)
}
