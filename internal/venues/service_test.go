package venues

import (
	"context"
	"testing"

	"seatforge/internal/seats"

	"github.com/google/uuid"
)

// fakeSeatRepo is a minimal in-memory stand-in for seats.Repository, used to
// exercise attachSeatAvailability without a database.
type fakeSeatRepo struct {
	rows []seats.SeatState
}

func (f *fakeSeatRepo) BulkCreateForEvent(ctx context.Context, eventID uuid.UUID, seeds []seats.SeatSeed) error {
	return nil
}

func (f *fakeSeatRepo) GetByEventAndSeatCodes(ctx context.Context, eventID uuid.UUID, seatCodes []string) ([]seats.SeatState, error) {
	return nil, nil
}

func (f *fakeSeatRepo) GetAvailability(ctx context.Context, eventID uuid.UUID) ([]seats.SeatState, error) {
	return f.rows, nil
}

func (f *fakeSeatRepo) TryHold(ctx context.Context, eventID uuid.UUID, seatCodes []string, holdRef uuid.UUID) ([]string, error) {
	return nil, nil
}

func (f *fakeSeatRepo) ReleaseByHoldRef(ctx context.Context, holdRef uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeSeatRepo) TrySell(ctx context.Context, eventID uuid.UUID, seatCodes []string, holdRef, orderRef uuid.UUID) (bool, error) {
	return false, nil
}

func TestAttachSeatAvailability(t *testing.T) {
	eventID := uuid.New()
	seatRepo := &fakeSeatRepo{
		rows: []seats.SeatState{
			{SeatCode: "Premium-A-1", SectionCode: "Premium", Status: seats.StatusAvailable},
			{SeatCode: "Premium-A-2", SectionCode: "Premium", Status: seats.StatusHeld},
			{SeatCode: "Premium-A-3", SectionCode: "Premium", Status: seats.StatusSold},
			{SeatCode: "Standard-B-1", SectionCode: "Standard", Status: seats.StatusAvailable},
		},
	}
	svc := &service{seatRepo: seatRepo}

	layout := &VenueLayoutResponse{
		Sections: []VenueSectionResponse{
			{Name: "Premium", Price: 1500},
			{Name: "Standard", Price: 800},
			{Name: "Empty", Price: 500},
		},
	}

	if err := svc.attachSeatAvailability(context.Background(), eventID, layout); err != nil {
		t.Fatalf("attachSeatAvailability returned unexpected error: %v", err)
	}

	premium := layout.Sections[0]
	if len(premium.Seats) != 3 {
		t.Fatalf("Premium section: got %d seats, want 3", len(premium.Seats))
	}
	if premium.AvailableSeats != 1 {
		t.Errorf("Premium.AvailableSeats = %d, want 1", premium.AvailableSeats)
	}

	standard := layout.Sections[1]
	if standard.AvailableSeats != 1 {
		t.Errorf("Standard.AvailableSeats = %d, want 1", standard.AvailableSeats)
	}

	empty := layout.Sections[2]
	if len(empty.Seats) != 0 {
		t.Errorf("Empty section: got %d seats, want 0", len(empty.Seats))
	}

	if layout.AvailableSeats != 2 {
		t.Errorf("layout.AvailableSeats = %d, want 2 (total across sections)", layout.AvailableSeats)
	}

	for _, seat := range premium.Seats {
		if seat.SeatNumber == "Premium-A-2" && !seat.IsHeld {
			t.Errorf("seat Premium-A-2: IsHeld = false, want true")
		}
		if seat.Price != 1500 {
			t.Errorf("seat %s: Price = %v, want section price 1500", seat.SeatNumber, seat.Price)
		}
	}
}

func TestAttachSeatAvailabilityNoSeedsYet(t *testing.T) {
	svc := &service{seatRepo: &fakeSeatRepo{}}
	layout := &VenueLayoutResponse{
		Sections: []VenueSectionResponse{{Name: "Premium", Price: 1500}},
	}

	if err := svc.attachSeatAvailability(context.Background(), uuid.New(), layout); err != nil {
		t.Fatalf("attachSeatAvailability returned unexpected error: %v", err)
	}
	if layout.AvailableSeats != 0 {
		t.Errorf("AvailableSeats = %d, want 0 for an unpublished event", layout.AvailableSeats)
	}
	if len(layout.Sections[0].Seats) != 0 {
		t.Errorf("Sections[0].Seats = %v, want empty", layout.Sections[0].Seats)
	}
}

func TestGenerateRowLabels(t *testing.T) {
	svc := &service{}

	rows, err := svc.generateRowLabels("A", "D")
	if err != nil {
		t.Fatalf("generateRowLabels(A, D) returned unexpected error: %v", err)
	}
	want := []string{"A", "B", "C", "D"}
	if !equalStrings(rows, want) {
		t.Errorf("generateRowLabels(A, D) = %v, want %v", rows, want)
	}

	rows, err = svc.generateRowLabels("1", "3")
	if err != nil {
		t.Fatalf("generateRowLabels(1, 3) returned unexpected error: %v", err)
	}
	want = []string{"1", "2", "3"}
	if !equalStrings(rows, want) {
		t.Errorf("generateRowLabels(1, 3) = %v, want %v", rows, want)
	}

	if _, err := svc.generateRowLabels("D", "A"); err == nil {
		t.Error("generateRowLabels(D, A) = nil error, want error for inverted range")
	}

	if _, err := svc.generateRowLabels("A", "3"); err == nil {
		t.Error("generateRowLabels(A, 3) = nil error, want error for mixed numeric/alphabetic range")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
