package pricing

import (
	"testing"

	"seatforge/internal/shared/apperr"
)

func TestParseSeatID(t *testing.T) {
	cases := []struct {
		name    string
		seatID  string
		want    SeatRef
		wantErr bool
	}{
		{"plain form", "A-12-5", SeatRef{SectionCode: "A", Row: "12", SeatNumber: "5"}, false},
		{"SEC-prefixed form", "SEC-A-12-5", SeatRef{SectionCode: "A", Row: "12", SeatNumber: "5"}, false},
		{"case-insensitive SEC prefix", "sec-B-1-1", SeatRef{SectionCode: "B", Row: "1", SeatNumber: "1"}, false},
		{"too few segments", "A-12", SeatRef{}, true},
		{"too many segments without SEC prefix", "A-B-12-5", SeatRef{}, true},
		{"empty segment", "A--5", SeatRef{}, true},
		{"empty string", "", SeatRef{}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseSeatID(c.seatID)
			if c.wantErr {
				if err == nil {
					t.Fatalf("ParseSeatID(%q) = %+v, nil; want an error", c.seatID, got)
				}
				if apperr.KindOf(err) != apperr.InvalidInput {
					t.Errorf("KindOf(err) = %s, want %s", apperr.KindOf(err), apperr.InvalidInput)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSeatID(%q) returned unexpected error: %v", c.seatID, err)
			}
			if got != c.want {
				t.Errorf("ParseSeatID(%q) = %+v, want %+v", c.seatID, got, c.want)
			}
		})
	}
}

func TestZoneMapZoneFor(t *testing.T) {
	zones := ZoneMap{
		"A": {SectionCode: "A", Name: "Premium", Price: 1500, Currency: "INR"},
	}

	zone, err := zones.ZoneFor("A-1-5")
	if err != nil {
		t.Fatalf("ZoneFor returned unexpected error: %v", err)
	}
	if zone.Name != "Premium" || zone.Price != 1500 {
		t.Errorf("ZoneFor(A-1-5) = %+v, want Premium zone at 1500", zone)
	}

	if _, err := zones.ZoneFor("Z-1-5"); err == nil {
		t.Error("ZoneFor(unknown section) = nil error, want NotFound")
	} else if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("KindOf(err) = %s, want %s", apperr.KindOf(err), apperr.NotFound)
	}

	if _, err := zones.ZoneFor("malformed"); apperr.KindOf(err) != apperr.InvalidInput {
		t.Errorf("ZoneFor(malformed seat id) kind = %s, want %s", apperr.KindOf(err), apperr.InvalidInput)
	}
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(1000, "INR")

	if totals.Subtotal != 1000 {
		t.Errorf("Subtotal = %v, want 1000", totals.Subtotal)
	}
	if totals.Fee != 50 {
		t.Errorf("Fee = %v, want 50 (5%% of 1000)", totals.Fee)
	}
	if totals.Tax != 80 {
		t.Errorf("Tax = %v, want 80 (8%% of subtotal 1000)", totals.Tax)
	}
	if totals.Total != 1130 {
		t.Errorf("Total = %v, want 1130", totals.Total)
	}
	if totals.Currency != "INR" {
		t.Errorf("Currency = %q, want INR", totals.Currency)
	}
}

func TestComputeTotalsRoundsToCents(t *testing.T) {
	totals := ComputeTotals(33.33, "USD")

	if totals.Fee != round2(33.33*FeeRate) {
		t.Errorf("Fee = %v, want rounded fee %v", totals.Fee, round2(33.33*FeeRate))
	}
	if totals.Total != round2(totals.Subtotal+totals.Fee+totals.Tax) {
		t.Errorf("Total = %v does not match rounded sum of its parts", totals.Total)
	}
}
