// Package pricing implements the seat-identifier convention and pricing
// zone lookup used by the Hold Arbiter and Checkout Coordinator. It is
// adapted from the section/multiplier pricing model in the venues and
// seats packages, reshaped into the fixed seat-id-based zone the
// subsystem keys all of its pricing logic from.
package pricing

import (
	"strings"

	"seatforge/internal/shared/apperr"
)

// Zone is a pricing zone: a named section of the venue with its own price.
type Zone struct {
	SectionCode string
	Name        string
	Price       float64
	Currency    string
}

const (
	// FeeRate is the service fee applied to the seat subtotal at checkout.
	FeeRate = 0.05
	// TaxRate is the tax applied to the seat subtotal at checkout.
	TaxRate = 0.08
)

// SeatRef is a parsed seat identifier: SECTION-ROW-SEAT or SEC-SECTION-ROW-SEAT.
type SeatRef struct {
	SectionCode string
	Row         string
	SeatNumber  string
}

// ParseSeatID parses a seat identifier per the documented convention. Both
// "A-12-5" (SECTION-ROW-SEAT) and "SEC-A-12-5" (SEC-SECTION-ROW-SEAT) are
// accepted; the leading "SEC" literal is stripped when present.
func ParseSeatID(seatID string) (SeatRef, error) {
	parts := strings.Split(seatID, "-")
	if len(parts) == 4 && strings.EqualFold(parts[0], "SEC") {
		parts = parts[1:]
	}
	if len(parts) != 3 {
		return SeatRef{}, apperr.Newf(apperr.InvalidInput, "malformed seat identifier: %q", seatID)
	}
	for _, p := range parts {
		if p == "" {
			return SeatRef{}, apperr.Newf(apperr.InvalidInput, "malformed seat identifier: %q", seatID)
		}
	}
	return SeatRef{SectionCode: parts[0], Row: parts[1], SeatNumber: parts[2]}, nil
}

// ZoneMap is a pricing zone lookup keyed by section code, built per-event
// from the venue collaborator's section/pricing data (see internal/venues).
type ZoneMap map[string]Zone

// ZoneFor returns the pricing zone for a seat identifier's section code.
func (z ZoneMap) ZoneFor(seatID string) (Zone, error) {
	ref, err := ParseSeatID(seatID)
	if err != nil {
		return Zone{}, err
	}
	zone, ok := z[ref.SectionCode]
	if !ok {
		return Zone{}, apperr.Newf(apperr.NotFound, "no pricing zone for section %q", ref.SectionCode)
	}
	return zone, nil
}

// Totals is the fee/tax breakdown for a checkout intent.
type Totals struct {
	Subtotal float64
	Fee      float64
	Tax      float64
	Total    float64
	Currency string
}

// ComputeTotals applies the standard fee/tax schedule to a seat subtotal.
// Fee and tax are both computed independently off the subtotal, not
// compounded on top of each other.
func ComputeTotals(subtotal float64, currency string) Totals {
	fee := round2(subtotal * FeeRate)
	tax := round2(subtotal * TaxRate)
	return Totals{
		Subtotal: round2(subtotal),
		Fee:      fee,
		Tax:      tax,
		Total:    round2(subtotal + fee + tax),
		Currency: currency,
	}
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
