package autohaus

import (
	"encoding/json"
	"net/http"
	"strings"
)

// PartCategory groups the parts shelf.
type PartCategory string

const (
	PartMotor    PartCategory = "MOTOR"
	PartBody     PartCategory = "KAROSSERIE"
	PartInterior PartCategory = "INNENRAUM"
	PartWheels   PartCategory = "RÄDER"
)

func (c PartCategory) valid() bool {
	switch c {
	case PartMotor, PartBody, PartInterior, PartWheels:
		return true
	}
	return false
}

// Part is one stocked spare part.
type Part struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	PartNumber string       `json:"part_number"`
	Stock      int          `json:"stock"`
	Price      float64      `json:"price"`
	Category   PartCategory `json:"category"`
}

// seedParts is the stocked shelf every fresh session starts with.
func seedParts() []*Part {
	return []*Part{
		{ID: "1", Name: "Ölfilter OP-2022", PartNumber: "OP-5592", Stock: 45, Price: 12.50, Category: PartMotor},
		{ID: "2", Name: "Bremsbeläge Satz (Vorn)", PartNumber: "OP-1102", Stock: 8, Price: 89.90, Category: PartWheels},
		{ID: "3", Name: "Zündkerze Iridium", PartNumber: "OP-3391", Stock: 120, Price: 18.00, Category: PartMotor},
		{ID: "4", Name: "Stoßfänger Astra K", PartNumber: "OP-9921", Stock: 2, Price: 350.00, Category: PartBody},
		{ID: "5", Name: "Fußmatten Velours", PartNumber: "OP-0012", Stock: 15, Price: 45.00, Category: PartInterior},
		{ID: "6", Name: "Scheinwerfer LED Links", PartNumber: "OP-7721", Stock: 1, Price: 620.00, Category: PartBody},
		{ID: "7", Name: "Luftfilter Sport", PartNumber: "OP-5511", Stock: 22, Price: 42.50, Category: PartMotor},
		{ID: "8", Name: "Radkappe 16 Zoll", PartNumber: "OP-1661", Stock: 40, Price: 19.99, Category: PartWheels},
	}
}

func (m *Module) findPart(id string) *Part {
	for _, p := range m.parts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (m *Module) handleListParts(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	out := make([]Part, 0, len(m.parts))
	for _, p := range m.parts {
		out = append(out, *p)
	}
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (m *Module) handleAddPart(w http.ResponseWriter, r *http.Request) {
	var req Part
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Price <= 0 {
		jsonErr(w, "name and price are required", http.StatusBadRequest)
		return
	}
	if req.Category == "" {
		req.Category = PartMotor
	}
	if !req.Category.valid() {
		jsonErr(w, "invalid category", http.StatusBadRequest)
		return
	}
	req.ID = m.cfg.IDs()

	m.mu.Lock()
	m.parts = append(m.parts, &req)
	m.mu.Unlock()

	m.logEvent(r.Context(), "part_added", "part", req.ID, true)
	writeJSON(w, http.StatusCreated, req)
}
