package compose

import (
	"fmt"

	"github.com/Jan2821/Jan-OS/finance"
)

// WorkshopInvoiceInput is the view of the invoice builder projected into a
// Werkstatt-Rechnung. Customer and vehicle may still be blank (the printed
// form leaves fill-in lines); lines may be empty (empty-state row).
type WorkshopInvoiceInput struct {
	CustomerName string
	Vehicle      string
	Lines        []finance.InvoiceLine
}

// WorkshopInvoice composes the printable workshop invoice. The invoice
// number is cosmetic and drawn from the configured reference generator.
func (c *Composer) WorkshopInvoice(in WorkshopInvoiceInput) (*Document, error) {
	totals := finance.InvoiceTotals(in.Lines)

	rows := make([][]string, 0, len(in.Lines))
	for i, l := range in.Lines {
		desc := l.Description
		if l.Kind == finance.LineLabor {
			desc = "[AW] " + desc
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			desc,
			fmt.Sprintf("%g", l.Quantity),
			euro(l.UnitPrice),
			euro(l.Total()),
		})
	}

	return &Document{
		Kind:     KindWorkshopInvoice,
		TargetID: TargetWorkshopInvoice,
		Header: Header{
			Title:    "Autohaus Radtke",
			Subtitle: "Werkstatt & Service",
			Ref:      "Rechnungs-Nr: " + c.cfg.Refs(),
			Date:     dateDE(c.cfg.Now()),
		},
		Sections: []Section{
			{
				Kind:  SectionIdentity,
				Title: "Rechnungsempfänger",
				Fields: []Field{
					{Label: "Kunde", Value: orElse(in.CustomerName, "____________________")},
					{Label: "Fahrzeug", Value: orElse(in.Vehicle, "____________________")},
				},
			},
			{
				Kind: SectionTable,
				Table: &Table{
					Columns:   []string{"Pos.", "Beschreibung", "Menge/Std", "Einzelpreis", "Gesamt"},
					Rows:      rows,
					EmptyText: "Keine Positionen",
					Footer: []Field{
						{Label: "Netto", Value: euro(totals.Net)},
						{Label: "MwSt (19%)", Value: euro(totals.Tax)},
						{Label: "GESAMT", Value: euro(totals.Gross)},
					},
				},
			},
		},
		Footer: "Vielen Dank für Ihren Auftrag. Gute Fahrt! Zahlbar sofort ohne Abzug. Es gelten unsere AGB.",
	}, nil
}
