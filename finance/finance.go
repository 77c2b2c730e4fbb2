// Package finance computes fine amounts and invoice totals.
//
// Everything here is pure: no clocks, no randomness, no I/O. Document
// composers call into this package for every computed figure that appears
// on a printed page, so the same inputs must always yield the same money.
package finance

import "math"

// ViolationKind classifies a traffic violation.
type ViolationKind string

const (
	ViolationSpeeding ViolationKind = "SPEEDING"
	ViolationRedLight ViolationKind = "RED_LIGHT"
	ViolationParking  ViolationKind = "PARKING"
	ViolationDUI      ViolationKind = "DUI"
)

// FineTier maps a speed differential upper bound (inclusive) to a fine.
type FineTier struct {
	MaxDiff int     // km/h over the limit, inclusive upper bound
	Amount  float64 // EUR
}

// speedingTiers is the fine schedule for speeding violations. Bounds are
// contiguous and increasing; differentials above the last bound fall into
// the catch-all amount.
var speedingTiers = []FineTier{
	{MaxDiff: 10, Amount: 30},
	{MaxDiff: 15, Amount: 50},
	{MaxDiff: 20, Amount: 70},
	{MaxDiff: 25, Amount: 115},
	{MaxDiff: 30, Amount: 180},
}

// speedingCatchAll applies to differentials above the last tier bound.
const speedingCatchAll = 260

// SpeedingTiers returns a copy of the fine schedule, for display.
func SpeedingTiers() []FineTier {
	out := make([]FineTier, len(speedingTiers))
	copy(out, speedingTiers)
	return out
}

// FineFor returns the fine amount in EUR for a violation. For speeding the
// amount depends on the differential between measured and permitted speed;
// all other kinds carry a flat amount. Unknown kinds fall back to the
// minor-offence flat fine.
func FineFor(kind ViolationKind, speedLimit, actualSpeed int) float64 {
	switch kind {
	case ViolationSpeeding:
		diff := actualSpeed - speedLimit
		for _, tier := range speedingTiers {
			if diff <= tier.MaxDiff {
				return tier.Amount
			}
		}
		return speedingCatchAll
	case ViolationRedLight:
		return 90
	case ViolationDUI:
		return 500
	default:
		return 25
	}
}

// LineKind distinguishes parts from labor on a workshop invoice.
type LineKind string

const (
	LinePart  LineKind = "PART"
	LineLabor LineKind = "LABOR"
)

// InvoiceLine is one position on a workshop invoice.
type InvoiceLine struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   float64  `json:"unit_price"`
	Kind        LineKind `json:"kind"`
}

// Total returns the line total (quantity × unit price).
func (l InvoiceLine) Total() float64 {
	return l.Quantity * l.UnitPrice
}

// VATRate is the fixed German value-added tax rate applied to invoices.
const VATRate = 0.19

// Totals holds the computed footer of an invoice.
type Totals struct {
	Net   float64 `json:"net"`
	Tax   float64 `json:"tax"`
	Gross float64 `json:"gross"`
}

// InvoiceTotals sums the line totals and applies VAT. The sum is
// commutative over line order; zero lines yield all-zero totals. Each
// figure is rounded to cents.
func InvoiceTotals(lines []InvoiceLine) Totals {
	var net float64
	for _, l := range lines {
		net += l.Total()
	}
	net = roundCents(net)
	tax := roundCents(net * VATRate)
	return Totals{
		Net:   net,
		Tax:   tax,
		Gross: roundCents(net + tax),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
