package orders

import (
	"context"
	"sync"
	"testing"

	"seatforge/internal/payments"
	"seatforge/internal/pricing"
	"seatforge/internal/seats"
	"seatforge/internal/shared/apperr"
	"seatforge/pkg/logger"

	"github.com/google/uuid"
)

// fakeSeatRepo mirrors the all-or-nothing TrySell CAS of
// internal/seats/repository.go closely enough to let concurrent finalize
// calls race against real inventory state.
type fakeSeatRepo struct {
	mu   sync.Mutex
	rows map[string]string
	hold map[string]uuid.UUID
}

func newFakeSeatRepo(heldSeats []string, holdRef uuid.UUID) *fakeSeatRepo {
	rows := make(map[string]string, len(heldSeats))
	hold := make(map[string]uuid.UUID, len(heldSeats))
	for _, c := range heldSeats {
		rows[c] = seats.StatusHeld
		hold[c] = holdRef
	}
	return &fakeSeatRepo{rows: rows, hold: hold}
}

func (f *fakeSeatRepo) BulkCreateForEvent(ctx context.Context, eventID uuid.UUID, seeds []seats.SeatSeed) error {
	return nil
}
func (f *fakeSeatRepo) GetByEventAndSeatCodes(ctx context.Context, eventID uuid.UUID, seatCodes []string) ([]seats.SeatState, error) {
	return nil, nil
}
func (f *fakeSeatRepo) GetAvailability(ctx context.Context, eventID uuid.UUID) ([]seats.SeatState, error) {
	return nil, nil
}
func (f *fakeSeatRepo) TryHold(ctx context.Context, eventID uuid.UUID, seatCodes []string, holdRef uuid.UUID) ([]string, error) {
	return nil, nil
}
func (f *fakeSeatRepo) ReleaseByHoldRef(ctx context.Context, holdRef uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeSeatRepo) TrySell(ctx context.Context, eventID uuid.UUID, seatCodes []string, holdRef, orderRef uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, code := range seatCodes {
		if f.rows[code] != seats.StatusHeld || f.hold[code] != holdRef {
			return false, nil
		}
	}
	for _, code := range seatCodes {
		f.rows[code] = seats.StatusSold
		delete(f.hold, code)
	}
	return true, nil
}

func (f *fakeSeatRepo) statusOf(code string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[code]
}

// fakeOrderRepo is a mutex-guarded, in-memory stand-in for Repository.
type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  map[uuid.UUID]*Order
	tickets map[uuid.UUID][]Ticket
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*Order), tickets: make(map[uuid.UUID][]Ticket)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) GetByPaymentRef(ctx context.Context, paymentRef string) (*Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.PaymentRef == paymentRef {
			cp := *o
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "order not found")
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, failureReason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return apperr.New(apperr.NotFound, "order not found")
	}
	o.Status = status
	if failureReason != "" {
		o.FailureReason = failureReason
	}
	return nil
}

func (f *fakeOrderRepo) SetPaymentRef(ctx context.Context, id uuid.UUID, paymentRef string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return apperr.New(apperr.NotFound, "order not found")
	}
	o.PaymentRef = paymentRef
	return nil
}

func (f *fakeOrderRepo) CreateTickets(ctx context.Context, tickets []Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(tickets) == 0 {
		return nil
	}
	f.tickets[tickets[0].OrderID] = append(f.tickets[tickets[0].OrderID], tickets...)
	return nil
}

func (f *fakeOrderRepo) GetTicketsByOrderID(ctx context.Context, orderID uuid.UUID) ([]Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tickets[orderID], nil
}

// fakeHoldValidator treats a single fixed hold as always valid, and counts
// ConsumeHold calls so the test can assert it fires exactly once.
type fakeHoldValidator struct {
	mu       sync.Mutex
	view     HoldView
	consumed int
}

func (f *fakeHoldValidator) ValidateHold(ctx context.Context, holdID string) (HoldView, error) {
	return f.view, nil
}

func (f *fakeHoldValidator) ConsumeHold(ctx context.Context, holdID string, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.consumed++
	return nil
}

type fakePricingSource struct {
	zones []pricing.Zone
}

func (f *fakePricingSource) SectionsForEvent(ctx context.Context, eventID uuid.UUID) ([]pricing.Zone, error) {
	return f.zones, nil
}

// fakeSeatsService is a no-op seats.Service: finalize only needs
// InvalidateAvailabilityCache, and that call is fire-and-forget.
type fakeSeatsService struct{}

func (fakeSeatsService) GetAvailability(ctx context.Context, eventID string) (*seats.AvailabilityResponse, error) {
	return nil, nil
}
func (fakeSeatsService) GetSeatPlan(ctx context.Context, eventID string) (*seats.SeatPlanResponse, error) {
	return nil, nil
}
func (fakeSeatsService) BulkCreateForEvent(ctx context.Context, eventID uuid.UUID, seeds []seats.SeatSeed) error {
	return nil
}
func (fakeSeatsService) InvalidateAvailabilityCache(ctx context.Context, eventID string) {}

// TestFinalizeOrderConcurrentWebhookIdempotence fires the same
// OnPaymentSuccess webhook concurrently for one order, as a duplicate
// delivery might. Depending on scheduling, a late caller can either take
// the already-terminal fast path in FinalizeOrder or race into finalize
// and lose at the seat CAS, so only the invariants the CAS itself
// guarantees are asserted here: exactly one seat sale, one ticket batch,
// and one ConsumeHold, regardless of how the 20 calls interleave
// (invariant I6, webhook idempotence; the seat CAS also backs invariant
// I1, no double-sell).
func TestFinalizeOrderConcurrentWebhookIdempotence(t *testing.T) {
	const attempts = 20
	holdRef := uuid.New()
	eventID := uuid.New()
	seatCodes := []string{"A-1-1", "A-1-2"}

	seatRepo := newFakeSeatRepo(seatCodes, holdRef)
	orderRepo := newFakeOrderRepo()

	order := &Order{
		ID:         uuid.New(),
		EventID:    eventID,
		HoldID:     holdRef,
		SeatCodes:  seatCodes,
		Status:     StatusPending,
		PaymentRef: "pi_test_123",
		Total:      100,
		Currency:   "USD",
	}
	if err := orderRepo.Create(context.Background(), order); err != nil {
		t.Fatalf("seeding order failed: %v", err)
	}

	holds := &fakeHoldValidator{}
	svc := NewService(orderRepo, seatRepo, holds, &fakePricingSource{}, payments.NewMockProvider(), fakeSeatsService{}, nil, logger.New())

	var wg sync.WaitGroup
	start := make(chan struct{})
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = svc.OnPaymentSuccess(context.Background(), order.PaymentRef)
		}(i)
	}
	close(start)
	wg.Wait()

	var succeeded, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case apperr.Is(err, apperr.SeatConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error from concurrent OnPaymentSuccess: %v", err)
		}
	}
	if succeeded == 0 {
		t.Error("succeeded = 0, want at least 1 (the first caller to reach the seat CAS must win)")
	}
	if succeeded+conflicts != attempts {
		t.Errorf("succeeded(%d) + conflicts(%d) = %d, want %d", succeeded, conflicts, succeeded+conflicts, attempts)
	}

	holds.mu.Lock()
	consumedCount := holds.consumed
	holds.mu.Unlock()
	if consumedCount != 1 {
		t.Errorf("ConsumeHold called %d times, want exactly 1 (only the seat-CAS winner finalizes)", consumedCount)
	}

	tickets, err := orderRepo.GetTicketsByOrderID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("GetTicketsByOrderID failed: %v", err)
	}
	if len(tickets) != len(seatCodes) {
		t.Errorf("ticket count = %d, want %d (no duplicate issuance)", len(tickets), len(seatCodes))
	}
	for _, code := range seatCodes {
		if got := seatRepo.statusOf(code); got != seats.StatusSold {
			t.Errorf("seat %s final status = %s, want SOLD (exactly one winner transitions it)", code, got)
		}
	}
}
