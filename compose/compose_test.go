package compose

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Jan2821/Jan-OS/finance"
	"github.com/Jan2821/Jan-OS/idgen"
)

func pinned() *Composer {
	return New(Config{
		Refs: idgen.Fixed("00042"),
		Now:  func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) },
	})
}

func TestCaseFile_RequiresID(t *testing.T) {
	c := pinned()
	if _, err := c.CaseFile(CaseFileInput{Title: "Einbruch"}); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
}

func TestCaseFile_Fallbacks(t *testing.T) {
	c := pinned()
	doc, err := c.CaseFile(CaseFileInput{ID: "AZ-2026-001"})
	if err != nil {
		t.Fatal(err)
	}
	if doc.TargetID != TargetCaseFile {
		t.Fatalf("target id = %q", doc.TargetID)
	}
	var suspects, evidence string
	for _, s := range doc.Sections {
		switch s.Title {
		case "Beteiligte / Verdächtige":
			suspects = s.Text
		case "Beweismittel":
			evidence = s.Text
		}
	}
	if suspects != "Keine Angaben" {
		t.Errorf("suspects fallback = %q", suspects)
	}
	if evidence != "Keine Beweismittel gelistet" {
		t.Errorf("evidence fallback = %q", evidence)
	}
}

func TestCitation_SpeedingWording(t *testing.T) {
	c := pinned()
	doc, err := c.Citation(CitationInput{
		ID:          "OWI-2026-0007",
		Kind:        finance.ViolationSpeeding,
		SpeedLimit:  50,
		ActualSpeed: 65,
		FineAmount:  50,
		Date:        time.Date(2026, 3, 1, 14, 5, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, s := range doc.Sections {
		for _, f := range s.Fields {
			if f.Label == "Tatbestand" {
				found = true
				if !strings.Contains(f.Value, "15 km/h zu schnell") {
					t.Errorf("speeding wording missing differential: %q", f.Value)
				}
			}
		}
	}
	if !found {
		t.Fatal("no Tatbestand field")
	}
}

func TestCitation_AmountAndPlaceholder(t *testing.T) {
	c := pinned()
	doc, err := c.Citation(CitationInput{
		ID:         "OWI-1",
		Kind:       finance.ViolationRedLight,
		FineAmount: 90,
		Date:       time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
	var amount string
	var img *Image
	for _, s := range doc.Sections {
		if s.Kind == SectionAmount {
			amount = s.Text
		}
		if s.Kind == SectionImage {
			img = s.Image
		}
	}
	if amount != "90,00 €" {
		t.Errorf("amount = %q", amount)
	}
	if img == nil || img.Placeholder == "" || len(img.Data) != 0 {
		t.Errorf("expected placeholder image block, got %+v", img)
	}
}

func TestCitation_EvidencePhoto(t *testing.T) {
	c := pinned()
	doc, _ := c.Citation(CitationInput{
		ID:            "OWI-2",
		Kind:          finance.ViolationSpeeding,
		Date:          time.Now(),
		EvidenceImage: []byte{0xff, 0xd8},
		EvidenceMIME:  "image/jpeg",
	})
	for _, s := range doc.Sections {
		if s.Kind == SectionImage {
			if len(s.Image.Data) == 0 || s.Image.Placeholder != "" {
				t.Errorf("expected embedded photo, got %+v", s.Image)
			}
			return
		}
	}
	t.Fatal("no image section")
}

func TestAutopsy_SummaryFallbackChain(t *testing.T) {
	c := pinned()
	tests := []struct {
		name    string
		in      AutopsyInput
		summary string
	}{
		{"ai wins", AutopsyInput{ID: "OBD-1", GeneratedSummary: "KI-Text", ExaminerNotes: "Notizen"}, "KI-Text"},
		{"notes next", AutopsyInput{ID: "OBD-1", ExaminerNotes: "Notizen"}, "Notizen"},
		{"placeholder last", AutopsyInput{ID: "OBD-1"}, summaryPlaceholder},
	}
	for _, tt := range tests {
		doc, err := c.Autopsy(tt.in)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		got := ""
		for _, s := range doc.Sections {
			if strings.HasPrefix(s.Title, "4.") {
				got = s.Text
			}
		}
		if got != tt.summary {
			t.Errorf("%s: summary = %q, want %q", tt.name, got, tt.summary)
		}
	}
}

func TestAutopsy_SectionDefaults(t *testing.T) {
	c := pinned()
	doc, _ := c.Autopsy(AutopsyInput{ID: "OBD-9"})
	want := map[string]string{
		"1. Äußere Leichenschau": "Keine besonderen Auffälligkeiten.",
		"2. Innere Leichenschau": "Ausstehend.",
		"3. Toxikologie":         "Proben im Labor.",
	}
	for _, s := range doc.Sections {
		if w, ok := want[s.Title]; ok && s.Text != w {
			t.Errorf("%s = %q, want %q", s.Title, s.Text, w)
		}
	}
}

func TestFaxLog_ExcerptAndEmptyState(t *testing.T) {
	c := pinned()

	long := strings.Repeat("ä", 80)
	doc, err := c.FaxLog(FaxLogInput{Entries: []FaxEntry{
		{Timestamp: "01.03.2026, 10:00:00", Recipient: "030-110", Status: "SENT", Content: long},
	}})
	if err != nil {
		t.Fatal(err)
	}
	row := doc.Sections[0].Table.Rows[0]
	if row[3] != strings.Repeat("ä", 50)+"..." {
		t.Errorf("excerpt = %q", row[3])
	}

	empty, err := c.FaxLog(FaxLogInput{})
	if err != nil {
		t.Fatal(err)
	}
	tbl := empty.Sections[0].Table
	if len(tbl.Rows) != 0 || tbl.EmptyText != "Keine Einträge." {
		t.Errorf("empty state: rows=%d empty=%q", len(tbl.Rows), tbl.EmptyText)
	}
}

func TestSalesContract_Requirements(t *testing.T) {
	c := pinned()
	car := &SalesVehicle{Model: "Opel Astra", VIN: "W0L123", Year: 2022, Price: 24500}

	if _, err := c.SalesContract(SalesContractInput{Vehicle: car}); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("missing customer: got %v", err)
	}
	if _, err := c.SalesContract(SalesContractInput{CustomerName: "Erika Muster"}); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("missing vehicle: got %v", err)
	}

	doc, err := c.SalesContract(SalesContractInput{CustomerName: "Erika Muster", Vehicle: car})
	if err != nil {
		t.Fatal(err)
	}
	var tbl *Table
	for _, s := range doc.Sections {
		if s.Kind == SectionTable {
			tbl = s.Table
		}
	}
	if tbl == nil {
		t.Fatal("no financial table")
	}
	// Vehicle line plus the two bundled zero-priced extras.
	if len(tbl.Rows) != 3 {
		t.Fatalf("rows = %d", len(tbl.Rows))
	}
	for _, row := range tbl.Rows[1:] {
		if row[1] != "0,00 €" {
			t.Errorf("extra priced: %v", row)
		}
	}
	if tbl.Footer[0].Value != "24500,00 €" {
		t.Errorf("gross total = %q", tbl.Footer[0].Value)
	}
}

func TestWorkshopInvoice_LinesAndTotals(t *testing.T) {
	c := pinned()
	doc, err := c.WorkshopInvoice(WorkshopInvoiceInput{
		CustomerName: "K. Schmidt",
		Vehicle:      "Opel Corsa",
		Lines: []finance.InvoiceLine{
			{Description: "Ölfilter", Quantity: 2, UnitPrice: 12.50, Kind: finance.LinePart},
			{Description: "Einbau", Quantity: 1, UnitPrice: 85, Kind: finance.LineLabor},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	tbl := doc.Sections[1].Table
	if !strings.HasPrefix(tbl.Rows[1][1], "[AW] ") {
		t.Errorf("labor line not tagged: %q", tbl.Rows[1][1])
	}
	wantFooter := []string{"110,00 €", "20,90 €", "130,90 €"}
	for i, w := range wantFooter {
		if tbl.Footer[i].Value != w {
			t.Errorf("footer[%d] = %q, want %q", i, tbl.Footer[i].Value, w)
		}
	}
	if doc.Header.Ref != "Rechnungs-Nr: 00042" {
		t.Errorf("ref = %q", doc.Header.Ref)
	}
}

func TestWorkshopInvoice_EmptyState(t *testing.T) {
	c := pinned()
	doc, _ := c.WorkshopInvoice(WorkshopInvoiceInput{})
	tbl := doc.Sections[1].Table
	if len(tbl.Rows) != 0 || tbl.EmptyText != "Keine Positionen" {
		t.Errorf("empty invoice: rows=%d empty=%q", len(tbl.Rows), tbl.EmptyText)
	}
	if tbl.Footer[2].Value != "0,00 €" {
		t.Errorf("gross = %q", tbl.Footer[2].Value)
	}
}

func TestCompose_Idempotent(t *testing.T) {
	c := pinned()
	in := AutopsyInput{ID: "OBD-7", DeceasedName: "Unbekannt", ExaminerNotes: "Befund offen"}
	a, err1 := c.Autopsy(in)
	b, err2 := c.Autopsy(in)
	if err1 != nil || err2 != nil {
		t.Fatal(err1, err2)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical input produced structurally different documents")
	}
}
