package autohaus

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Jan2821/Jan-OS/compose"
	"github.com/Jan2821/Jan-OS/export"
	"github.com/Jan2821/Jan-OS/idgen"
	"github.com/Jan2821/Jan-OS/surface"
)

type fakeExports struct {
	mu    sync.Mutex
	calls []export.Descriptor
	res   export.Result
}

func (f *fakeExports) Export(_ context.Context, d export.Descriptor) export.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, d)
	return f.res
}

func (f *fakeExports) last(t *testing.T) export.Descriptor {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		t.Fatal("no export calls recorded")
	}
	return f.calls[len(f.calls)-1]
}

func newTestModule(t *testing.T) (*Module, *fakeExports, *surface.Registry) {
	t.Helper()
	reg := surface.NewRegistry(surface.Config{})
	exp := &fakeExports{res: export.Result{State: export.StateDone, Path: "downloads/x.pdf", Pages: 1}}
	m := New(Config{
		Surfaces: reg,
		Exports:  exp,
		IDs:      idgen.Fixed("neu000001"),
		Now:      func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) },
	})
	return m, exp, reg
}

func newTestRouter(m *Module) *chi.Mux {
	r := chi.NewRouter()
	m.RegisterHTTP(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestSeededInventory(t *testing.T) {
	m, _, _ := newTestModule(t)
	r := newTestRouter(m)

	cars := decode[[]Car](t, doJSON(t, r, http.MethodGet, "/api/autohaus/cars", nil))
	if len(cars) != 5 {
		t.Fatalf("seeded %d cars, want 5", len(cars))
	}
	if cars[0].Model != "Opel Astra" || cars[0].Status != CarAvailable {
		t.Errorf("unexpected first car: %+v", cars[0])
	}

	parts := decode[[]Part](t, doJSON(t, r, http.MethodGet, "/api/autohaus/parts", nil))
	if len(parts) != 8 {
		t.Fatalf("seeded %d parts, want 8", len(parts))
	}
}

func TestAddCarValidation(t *testing.T) {
	m, _, _ := newTestModule(t)
	r := newTestRouter(m)

	w := doJSON(t, r, http.MethodPost, "/api/autohaus/cars", map[string]any{"model": "", "price": 1000})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing model: status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/autohaus/cars", map[string]any{
		"model": "Opel Grandland", "price": 38000.0, "color": "Blau",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	c := decode[Car](t, w)
	if c.ID != "neu000001" || c.Status != CarAvailable || c.Year != 2026 {
		t.Errorf("defaults not applied: %+v", c)
	}
}

func TestDeleteCar(t *testing.T) {
	m, _, _ := newTestModule(t)
	r := newTestRouter(m)

	w := doJSON(t, r, http.MethodDelete, "/api/autohaus/cars/3", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	cars := decode[[]Car](t, doJSON(t, r, http.MethodGet, "/api/autohaus/cars", nil))
	if len(cars) != 4 {
		t.Fatalf("%d cars after delete, want 4", len(cars))
	}

	w = doJSON(t, r, http.MethodDelete, "/api/autohaus/cars/3", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d", w.Code)
	}
}

func TestInvoiceAssembly(t *testing.T) {
	m, _, _ := newTestModule(t)
	r := newTestRouter(m)

	// Two oil filters merge into one line with quantity 2.
	doJSON(t, r, http.MethodPost, "/api/autohaus/invoice/parts/1", nil)
	v := decode[invoiceView](t, doJSON(t, r, http.MethodPost, "/api/autohaus/invoice/parts/1", nil))
	if len(v.Lines) != 1 || v.Lines[0].Quantity != 2 {
		t.Fatalf("lines = %+v", v.Lines)
	}

	v = decode[invoiceView](t, doJSON(t, r, http.MethodPost, "/api/autohaus/invoice/labor", map[string]any{
		"description": "Ölwechsel inkl. Entsorgung",
		"hours":       1.0,
	}))
	if len(v.Lines) != 2 {
		t.Fatalf("lines = %+v", v.Lines)
	}
	labor := v.Lines[1]
	if labor.UnitPrice != defaultLaborRate {
		t.Errorf("labor rate = %v, want default %v", labor.UnitPrice, defaultLaborRate)
	}

	// 2×12.50 + 1×85 → 110 net, 20.90 tax, 130.90 gross.
	if v.Totals.Net != 110 || v.Totals.Tax != 20.90 || v.Totals.Gross != 130.90 {
		t.Errorf("totals = %+v", v.Totals)
	}

	v = decode[invoiceView](t, doJSON(t, r, http.MethodDelete, "/api/autohaus/invoice/lines/"+labor.ID, nil))
	if len(v.Lines) != 1 {
		t.Fatalf("lines after remove = %+v", v.Lines)
	}

	v = decode[invoiceView](t, doJSON(t, r, http.MethodPost, "/api/autohaus/invoice/reset", nil))
	if len(v.Lines) != 0 || v.Totals.Gross != 0 {
		t.Fatalf("reset left state: %+v", v)
	}
}

func TestInvoiceAddUnknownPart(t *testing.T) {
	m, _, _ := newTestModule(t)
	r := newTestRouter(m)

	w := doJSON(t, r, http.MethodPost, "/api/autohaus/invoice/parts/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestInvoiceExport(t *testing.T) {
	m, exp, reg := newTestModule(t)
	r := newTestRouter(m)

	doJSON(t, r, http.MethodPost, "/api/autohaus/invoice/parts/2", nil)
	w := doJSON(t, r, http.MethodPost, "/api/autohaus/invoice/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if d := exp.last(t); d.Filename != "Werkstatt-Rechnung.pdf" || d.TargetID != compose.TargetWorkshopInvoice {
		t.Errorf("descriptor = %+v", d)
	}
	if _, ok := reg.Lookup(compose.TargetWorkshopInvoice); !ok {
		t.Error("invoice not mounted")
	}
}

func TestContractExportRequiresCustomerAndCar(t *testing.T) {
	m, exp, reg := newTestModule(t)
	exp.res = export.Result{State: export.StateError, Err: &export.Error{Kind: export.KindMissingRenderTarget, Message: "x"}}
	r := newTestRouter(m)

	w := doJSON(t, r, http.MethodPost, "/api/autohaus/sale/export", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("blank sale export: status = %d", w.Code)
	}
	if _, ok := reg.Lookup(compose.TargetSalesContract); ok {
		t.Error("incomplete sale mounted a document")
	}
}

func TestContractExport(t *testing.T) {
	m, exp, reg := newTestModule(t)
	r := newTestRouter(m)

	doJSON(t, r, http.MethodPut, "/api/autohaus/sale", map[string]string{
		"customer_name":    "Klaus Müller",
		"customer_address": "Gartenweg 3\n12345 Musterstadt",
		"car_id":           "2",
	})

	w := doJSON(t, r, http.MethodPost, "/api/autohaus/sale/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if d := exp.last(t); d.Filename != "Verkaufsdokument.pdf" {
		t.Errorf("filename = %q", d.Filename)
	}

	doc, ok := reg.Lookup(compose.TargetSalesContract)
	if !ok {
		t.Fatal("contract not mounted")
	}
	if doc.Header.Title != "Autohaus Radtke" {
		t.Errorf("mounted title = %q", doc.Header.Title)
	}
}
