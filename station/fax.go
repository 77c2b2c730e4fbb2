package station

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Jan2821/Jan-OS/compose"
)

// FaxStatus is the transmission state of a fax.
type FaxStatus string

const (
	FaxPending FaxStatus = "PENDING"
	FaxSent    FaxStatus = "SENT"
	FaxFailed  FaxStatus = "FAILED"
)

const faxTerminal = "WACHE-OS-TERMINAL-01"

// Fax is one outgoing transmission on the journal. Newest first.
type Fax struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp string    `json:"timestamp"`
	Status    FaxStatus `json:"status"`
}

func (m *Module) handleListFaxes(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	out := make([]Fax, 0, len(m.faxes))
	for _, f := range m.faxes {
		out = append(out, *f)
	}
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

// handleSendFax enqueues a transmission. The fax enters the journal as
// PENDING immediately and flips to SENT once the simulated line has
// carried it; the caller polls the journal to see the transition.
func (m *Module) handleSendFax(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Recipient string `json:"recipient"`
		Content   string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.Recipient = strings.TrimSpace(req.Recipient)
	if req.Recipient == "" || strings.TrimSpace(req.Content) == "" {
		jsonErr(w, "FEHLER: Empfänger und Inhalt erforderlich.", http.StatusBadRequest)
		return
	}

	f := &Fax{
		ID:        m.cfg.FaxIDs(),
		Recipient: req.Recipient,
		Sender:    faxTerminal,
		Content:   req.Content,
		Timestamp: m.cfg.Now().Format("02.01.2006, 15:04:05"),
		Status:    FaxPending,
	}

	m.mu.Lock()
	m.faxes = append([]*Fax{f}, m.faxes...)
	snap := *f
	m.mu.Unlock()

	time.AfterFunc(m.cfg.FaxDelay, func() {
		m.mu.Lock()
		f.Status = FaxSent
		m.mu.Unlock()
		m.cfg.Logger.Info("fax transmitted", "fax_id", f.ID, "recipient", f.Recipient)
		m.logEvent(context.Background(), "fax_sent", "fax", f.ID, true)
	})

	writeJSON(w, http.StatusAccepted, snap)
}

func (m *Module) handleExportFaxLog(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	entries := make([]compose.FaxEntry, 0, len(m.faxes))
	for _, f := range m.faxes {
		entries = append(entries, compose.FaxEntry{
			Timestamp: f.Timestamp,
			Recipient: f.Recipient,
			Status:    string(f.Status),
			Content:   f.Content,
		})
	}
	m.mu.Unlock()

	doc, err := m.cfg.Composer.FaxLog(compose.FaxLogInput{Entries: entries})
	res := m.runExport(r.Context(), doc, err, compose.TargetFaxLog, "Fax-Protokoll.pdf")
	writeResult(w, res)
}
