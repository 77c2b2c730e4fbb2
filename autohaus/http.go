package autohaus

import "github.com/go-chi/chi/v5"

// RegisterHTTP mounts the module's endpoints on the router.
func (m *Module) RegisterHTTP(r chi.Router) {
	r.Get("/api/autohaus/cars", m.handleListCars)
	r.Post("/api/autohaus/cars", m.handleAddCar)
	r.Put("/api/autohaus/cars/{id}", m.handleUpdateCar)
	r.Delete("/api/autohaus/cars/{id}", m.handleDeleteCar)

	r.Get("/api/autohaus/parts", m.handleListParts)
	r.Post("/api/autohaus/parts", m.handleAddPart)

	r.Get("/api/autohaus/invoice", m.handleGetInvoice)
	r.Put("/api/autohaus/invoice", m.handleUpdateInvoice)
	r.Post("/api/autohaus/invoice/parts/{id}", m.handleInvoiceAddPart)
	r.Post("/api/autohaus/invoice/labor", m.handleInvoiceAddLabor)
	r.Delete("/api/autohaus/invoice/lines/{id}", m.handleInvoiceRemoveLine)
	r.Post("/api/autohaus/invoice/reset", m.handleInvoiceReset)
	r.Post("/api/autohaus/invoice/export", m.handleExportInvoice)

	r.Get("/api/autohaus/sale", m.handleGetSale)
	r.Put("/api/autohaus/sale", m.handleUpdateSale)
	r.Post("/api/autohaus/sale/export", m.handleExportContract)
}
