package autohaus

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Jan2821/Jan-OS/compose"
)

// saleDraft is the pending sale at the office desk: one customer, one
// selected vehicle from the inventory.
type saleDraft struct {
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	CustomerEmail   string
	CarID           string
}

// saleView is the API projection of the draft with the resolved vehicle.
type saleView struct {
	CustomerName    string `json:"customer_name"`
	CustomerAddress string `json:"customer_address"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerEmail   string `json:"customer_email"`
	CarID           string `json:"car_id"`
	Car             *Car   `json:"car,omitempty"`
}

func (m *Module) saleViewLocked() saleView {
	v := saleView{
		CustomerName:    m.sale.CustomerName,
		CustomerAddress: m.sale.CustomerAddress,
		CustomerPhone:   m.sale.CustomerPhone,
		CustomerEmail:   m.sale.CustomerEmail,
		CarID:           m.sale.CarID,
	}
	if c := m.findCar(m.sale.CarID); c != nil {
		cc := *c
		v.Car = &cc
	}
	return v
}

func (m *Module) handleGetSale(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	v := m.saleViewLocked()
	m.mu.Unlock()
	writeJSON(w, http.StatusOK, v)
}

func (m *Module) handleUpdateSale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName    *string `json:"customer_name"`
		CustomerAddress *string `json:"customer_address"`
		CustomerPhone   *string `json:"customer_phone"`
		CustomerEmail   *string `json:"customer_email"`
		CarID           *string `json:"car_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, "invalid request body", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	if req.CustomerName != nil {
		m.sale.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerAddress != nil {
		m.sale.CustomerAddress = *req.CustomerAddress
	}
	if req.CustomerPhone != nil {
		m.sale.CustomerPhone = strings.TrimSpace(*req.CustomerPhone)
	}
	if req.CustomerEmail != nil {
		m.sale.CustomerEmail = strings.TrimSpace(*req.CustomerEmail)
	}
	if req.CarID != nil {
		m.sale.CarID = *req.CarID
	}
	v := m.saleViewLocked()
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, v)
}

func (m *Module) handleExportContract(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	in := compose.SalesContractInput{
		CustomerName:    m.sale.CustomerName,
		CustomerAddress: m.sale.CustomerAddress,
		CustomerPhone:   m.sale.CustomerPhone,
	}
	if c := m.findCar(m.sale.CarID); c != nil {
		in.Vehicle = &compose.SalesVehicle{
			Model:   c.Model,
			VIN:     c.VIN,
			Color:   c.Color,
			Year:    c.Year,
			Mileage: c.Mileage,
			Price:   c.Price,
		}
	}
	carID := m.sale.CarID
	m.mu.Unlock()

	doc, err := m.cfg.Composer.SalesContract(in)
	res := m.runExport(r.Context(), doc, err, compose.TargetSalesContract, "Verkaufsdokument.pdf")
	if res.Ok() {
		m.logEvent(r.Context(), "sale_contracted", "car", carID, true)
	}
	writeResult(w, res)
}
