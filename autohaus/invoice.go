package autohaus

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Jan2821/Jan-OS/compose"
	"github.com/Jan2821/Jan-OS/finance"
)

// defaultLaborRate is the workshop's hourly rate in EUR.
const defaultLaborRate = 85.0

// invoiceDraft is the invoice currently being assembled at the desk.
type invoiceDraft struct {
	CustomerName string
	Vehicle      string
	Lines        []finance.InvoiceLine
	LaborRate    float64
	laborSeq     int
}

// invoiceView is the API projection of the draft, totals included.
type invoiceView struct {
	CustomerName string                `json:"customer_name"`
	Vehicle      string                `json:"vehicle"`
	Lines        []finance.InvoiceLine `json:"lines"`
	LaborRate    float64               `json:"labor_rate"`
	Totals       finance.Totals        `json:"totals"`
}

func (m *Module) invoiceViewLocked() invoiceView {
	lines := append([]finance.InvoiceLine(nil), m.invoice.Lines...)
	return invoiceView{
		CustomerName: m.invoice.CustomerName,
		Vehicle:      m.invoice.Vehicle,
		Lines:        lines,
		LaborRate:    m.invoice.LaborRate,
		Totals:       finance.InvoiceTotals(lines),
	}
}

func (m *Module) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	v := m.invoiceViewLocked()
	m.mu.Unlock()
	writeJSON(w, http.StatusOK, v)
}

func (m *Module) handleUpdateInvoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName *string  `json:"customer_name"`
		Vehicle      *string  `json:"vehicle"`
		LaborRate    *float64 `json:"labor_rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.LaborRate != nil && *req.LaborRate <= 0 {
		jsonErr(w, "labor rate must be positive", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	if req.CustomerName != nil {
		m.invoice.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.Vehicle != nil {
		m.invoice.Vehicle = strings.TrimSpace(*req.Vehicle)
	}
	if req.LaborRate != nil {
		m.invoice.LaborRate = *req.LaborRate
	}
	v := m.invoiceViewLocked()
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, v)
}

// handleInvoiceAddPart puts one unit of a stocked part on the invoice.
// Adding the same part again bumps the quantity of the existing line.
func (m *Module) handleInvoiceAddPart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m.mu.Lock()
	p := m.findPart(id)
	if p != nil {
		merged := false
		for i := range m.invoice.Lines {
			l := &m.invoice.Lines[i]
			if l.ID == p.ID && l.Kind == finance.LinePart {
				l.Quantity++
				merged = true
				break
			}
		}
		if !merged {
			m.invoice.Lines = append(m.invoice.Lines, finance.InvoiceLine{
				ID:          p.ID,
				Description: fmt.Sprintf("%s (%s)", p.Name, p.PartNumber),
				Quantity:    1,
				UnitPrice:   p.Price,
				Kind:        finance.LinePart,
			})
		}
	}
	var v invoiceView
	if p != nil {
		v = m.invoiceViewLocked()
	}
	m.mu.Unlock()

	if p == nil {
		jsonErr(w, "part not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (m *Module) handleInvoiceAddLabor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string  `json:"description"`
		Hours       float64 `json:"hours"`
		Rate        float64 `json:"rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		jsonErr(w, "description is required", http.StatusBadRequest)
		return
	}
	if req.Hours <= 0 {
		req.Hours = 1
	}

	m.mu.Lock()
	rate := req.Rate
	if rate <= 0 {
		rate = m.invoice.LaborRate
	}
	m.invoice.laborSeq++
	m.invoice.Lines = append(m.invoice.Lines, finance.InvoiceLine{
		ID:          fmt.Sprintf("L-%d", m.invoice.laborSeq),
		Description: req.Description,
		Quantity:    req.Hours,
		UnitPrice:   rate,
		Kind:        finance.LineLabor,
	})
	v := m.invoiceViewLocked()
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, v)
}

func (m *Module) handleInvoiceRemoveLine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m.mu.Lock()
	found := false
	kept := m.invoice.Lines[:0]
	for _, l := range m.invoice.Lines {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	m.invoice.Lines = kept
	v := m.invoiceViewLocked()
	m.mu.Unlock()

	if !found {
		jsonErr(w, "line not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (m *Module) handleInvoiceReset(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	rate := m.invoice.LaborRate
	m.invoice = invoiceDraft{LaborRate: rate}
	v := m.invoiceViewLocked()
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, v)
}

func (m *Module) handleExportInvoice(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	in := compose.WorkshopInvoiceInput{
		CustomerName: m.invoice.CustomerName,
		Vehicle:      m.invoice.Vehicle,
		Lines:        append([]finance.InvoiceLine(nil), m.invoice.Lines...),
	}
	m.mu.Unlock()

	doc, err := m.cfg.Composer.WorkshopInvoice(in)
	res := m.runExport(r.Context(), doc, err, compose.TargetWorkshopInvoice, "Werkstatt-Rechnung.pdf")
	if res.Ok() {
		m.logEvent(r.Context(), "invoice_exported", "invoice", "", true)
	}
	writeResult(w, res)
}
