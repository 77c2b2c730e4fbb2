package autohaus

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// CarStatus is the sales state of an inventory vehicle.
type CarStatus string

const (
	CarAvailable   CarStatus = "AVAILABLE"
	CarSold        CarStatus = "SOLD"
	CarMaintenance CarStatus = "MAINTENANCE"
)

func (s CarStatus) valid() bool {
	switch s {
	case CarAvailable, CarSold, CarMaintenance:
		return true
	}
	return false
}

// Car is one inventory vehicle.
type Car struct {
	ID      string    `json:"id"`
	Model   string    `json:"model"`
	Year    int       `json:"year"`
	Color   string    `json:"color"`
	Price   float64   `json:"price"`
	Mileage int       `json:"mileage"`
	VIN     string    `json:"vin"`
	Status  CarStatus `json:"status"`
}

// seedCars is the stock Opel lot every fresh session starts with.
func seedCars() []*Car {
	return []*Car{
		{ID: "1", Model: "Opel Astra", Year: 2022, Color: "Silber", Price: 24500, Mileage: 15000, VIN: "W0Lxxxx", Status: CarAvailable},
		{ID: "2", Model: "Opel Corsa-e", Year: 2023, Color: "Orange", Price: 29900, Mileage: 500, VIN: "W0Lxxxx", Status: CarAvailable},
		{ID: "3", Model: "Opel Mokka", Year: 2021, Color: "Grün", Price: 21000, Mileage: 32000, VIN: "W0Lxxxx", Status: CarSold},
		{ID: "4", Model: "Opel Insignia", Year: 2020, Color: "Schwarz", Price: 18500, Mileage: 65000, VIN: "W0Lxxxx", Status: CarMaintenance},
		{ID: "5", Model: "Opel Zafira Life", Year: 2022, Color: "Weiß", Price: 45000, Mileage: 12000, VIN: "W0Lxxxx", Status: CarAvailable},
	}
}

func (m *Module) findCar(id string) *Car {
	for _, c := range m.cars {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (m *Module) handleListCars(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	out := make([]Car, 0, len(m.cars))
	for _, c := range m.cars {
		out = append(out, *c)
	}
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (m *Module) handleAddCar(w http.ResponseWriter, r *http.Request) {
	var req Car
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.Model = strings.TrimSpace(req.Model)
	if req.Model == "" || req.Price <= 0 {
		jsonErr(w, "model and price are required", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		req.Status = CarAvailable
	}
	if !req.Status.valid() {
		jsonErr(w, "invalid status", http.StatusBadRequest)
		return
	}
	if req.Year == 0 {
		req.Year = m.cfg.Now().Year()
	}
	req.ID = m.cfg.IDs()

	m.mu.Lock()
	m.cars = append([]*Car{&req}, m.cars...)
	m.mu.Unlock()

	m.logEvent(r.Context(), "car_added", "car", req.ID, true)
	writeJSON(w, http.StatusCreated, req)
}

func (m *Module) handleUpdateCar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Price   *float64   `json:"price"`
		Mileage *int       `json:"mileage"`
		Status  *CarStatus `json:"status"`
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
	c := m.findCar(id)
	if c != nil {
		if req.Price != nil {
			c.Price = *req.Price
		}
		if req.Mileage != nil {
			c.Mileage = *req.Mileage
		}
		if req.Status != nil {
			c.Status = *req.Status
		}
	}
	m.mu.Unlock()

	if c == nil {
		jsonErr(w, "car not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (m *Module) handleDeleteCar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m.mu.Lock()
	found := false
	kept := m.cars[:0]
	for _, c := range m.cars {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	m.cars = kept
	m.mu.Unlock()

	if !found {
		jsonErr(w, "car not found", http.StatusNotFound)
		return
	}
	m.logEvent(r.Context(), "car_deleted", "car", id, true)
	w.WriteHeader(http.StatusNoContent)
}
