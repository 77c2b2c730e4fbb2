package compose

import (
	"fmt"
	"strings"
)

// SalesVehicle is the vehicle block of a sales contract.
type SalesVehicle struct {
	Model   string
	VIN     string
	Color   string
	Year    int
	Mileage int
	Price   float64
}

// SalesContractInput is the view of a pending sale projected into a
// verbindliche Autobestellung.
type SalesContractInput struct {
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	Vehicle         *SalesVehicle
	BundledExtras   []string // zero-priced, included in the sale
}

// defaultExtras are always part of the dealer's bundle.
var defaultExtras = []string{
	"Zulassungsservice (inklusive)",
	"Fußmatten Set (Original Opel)",
}

const salesBoilerplate = "Das Fahrzeug bleibt bis zur vollständigen Bezahlung Eigentum des Autohaus Radtke. " +
	"Gerichtsstand ist Musterstadt. Es gelten unsere Allgemeinen Geschäftsbedingungen. " +
	"Gebrauchtwagengarantie: 12 Monate gemäß Bedingungen."

// SalesContract composes the printable purchase contract. Both a selected
// vehicle and a buyer name are required; a contract over nothing or with
// nobody is not mounted.
func (c *Composer) SalesContract(in SalesContractInput) (*Document, error) {
	if in.Vehicle == nil || strings.TrimSpace(in.CustomerName) == "" {
		return nil, ErrIncomplete
	}

	extras := in.BundledExtras
	if len(extras) == 0 {
		extras = defaultExtras
	}

	rows := [][]string{
		{in.Vehicle.Model + " - Gebrauchtwagen", euro(in.Vehicle.Price)},
	}
	for _, extra := range extras {
		rows = append(rows, []string{extra, euro(0)})
	}

	return &Document{
		Kind:     KindSalesContract,
		TargetID: TargetSalesContract,
		Header: Header{
			Title:    "Autohaus Radtke",
			Subtitle: "Ihr Opel-Partner seit 1985",
			Lines: []string{
				"Hauptstraße 101",
				"12345 Musterstadt",
				"Tel: 01234 / 567890",
				"info@autohaus-radtke.de",
			},
			Date: dateDE(c.cfg.Now()),
		},
		Sections: []Section{
			{
				Kind:  SectionIdentity,
				Title: "Käufer",
				Fields: []Field{
					{Label: "Name", Value: in.CustomerName},
					{Label: "Anschrift", Value: in.CustomerAddress},
					{Label: "Telefon", Value: in.CustomerPhone},
				},
			},
			{
				Kind:  SectionIdentity,
				Title: "Fahrzeugdaten",
				Fields: []Field{
					{Label: "Modell", Value: in.Vehicle.Model},
					{Label: "VIN", Value: in.Vehicle.VIN},
					{Label: "Farbe", Value: in.Vehicle.Color},
					{Label: "EZ/Baujahr", Value: fmt.Sprintf("%d", in.Vehicle.Year)},
					{Label: "Laufleistung", Value: fmt.Sprintf("%d km", in.Vehicle.Mileage)},
				},
			},
			{
				Kind: SectionTable,
				Table: &Table{
					Columns: []string{"Beschreibung", "Betrag"},
					Rows:    rows,
					Footer: []Field{
						{Label: "GESAMTPREIS (Brutto)", Value: euro(in.Vehicle.Price)},
						{Label: "", Value: "Enthält 19% MwSt."},
					},
				},
			},
			{
				Kind: SectionText,
				Text: salesBoilerplate,
			},
			{
				Kind:       SectionSignatures,
				Signatures: []string{"Unterschrift Käufer", "Unterschrift Verkäufer"},
			},
		},
	}, nil
}
