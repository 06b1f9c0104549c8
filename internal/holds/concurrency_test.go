package holds

import (
	"context"
	"sync"
	"testing"
	"time"

	"seatforge/internal/realtime"
	"seatforge/internal/seats"
	"seatforge/internal/shared/apperr"
	"seatforge/pkg/logger"

	"github.com/google/uuid"
)

// fakeSeatRepo is a mutex-guarded, in-memory stand-in for seats.Repository
// that mirrors the real CAS semantics of internal/seats/repository.go (all-
// or-nothing TryHold/TrySell, holdRef-scoped release) closely enough to
// exercise genuine races against the production service layer without a
// live Postgres.
type fakeSeatRepo struct {
	mu   sync.Mutex
	rows map[string]string // seatCode -> status
	hold map[string]uuid.UUID
}

func newFakeSeatRepo(seatCodes ...string) *fakeSeatRepo {
	rows := make(map[string]string, len(seatCodes))
	for _, c := range seatCodes {
		rows[c] = seats.StatusAvailable
	}
	return &fakeSeatRepo{rows: rows, hold: make(map[string]uuid.UUID)}
}

func (f *fakeSeatRepo) BulkCreateForEvent(ctx context.Context, eventID uuid.UUID, seeds []seats.SeatSeed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range seeds {
		f.rows[s.SeatCode] = seats.StatusAvailable
	}
	return nil
}

func (f *fakeSeatRepo) TryHold(ctx context.Context, eventID uuid.UUID, seatCodes []string, holdRef uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var rejected []string
	for _, code := range seatCodes {
		if f.rows[code] != seats.StatusAvailable {
			rejected = append(rejected, code)
		}
	}
	if len(rejected) > 0 {
		return rejected, nil
	}
	for _, code := range seatCodes {
		f.rows[code] = seats.StatusHeld
		f.hold[code] = holdRef
	}
	return nil, nil
}

func (f *fakeSeatRepo) ReleaseByHoldRef(ctx context.Context, holdRef uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var released int64
	for code, ref := range f.hold {
		if ref == holdRef && f.rows[code] == seats.StatusHeld {
			f.rows[code] = seats.StatusAvailable
			delete(f.hold, code)
			released++
		}
	}
	return released, nil
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

func (f *fakeSeatRepo) GetByEventAndSeatCodes(ctx context.Context, eventID uuid.UUID, seatCodes []string) ([]seats.SeatState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]seats.SeatState, 0, len(seatCodes))
	for _, code := range seatCodes {
		if status, ok := f.rows[code]; ok {
			out = append(out, seats.SeatState{SeatCode: code, Status: status})
		}
	}
	return out, nil
}

func (f *fakeSeatRepo) GetAvailability(ctx context.Context, eventID uuid.UUID) ([]seats.SeatState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]seats.SeatState, 0, len(f.rows))
	for code, status := range f.rows {
		out = append(out, seats.SeatState{SeatCode: code, Status: status})
	}
	return out, nil
}

// fakeHoldRepo is a mutex-guarded, in-memory stand-in for holds.Repository.
type fakeHoldRepo struct {
	mu    sync.Mutex
	holds map[uuid.UUID]*Hold
}

func newFakeHoldRepo() *fakeHoldRepo {
	return &fakeHoldRepo{holds: make(map[uuid.UUID]*Hold)}
}

func (f *fakeHoldRepo) Create(ctx context.Context, hold *Hold) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *hold
	f.holds[hold.ID] = &cp
	return nil
}

func (f *fakeHoldRepo) GetByID(ctx context.Context, id uuid.UUID) (*Hold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.holds[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "hold not found")
	}
	cp := *h
	return &cp, nil
}

func (f *fakeHoldRepo) FindActiveBySessionAndEvent(ctx context.Context, sessionID string, eventID uuid.UUID) (*Hold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, h := range f.holds {
		if h.SessionID == sessionID && h.EventID == eventID && h.IsActive(now) {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeHoldRepo) UpdateSeatsAndExpiry(ctx context.Context, id uuid.UUID, seatCodes []string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.holds[id]
	if !ok {
		return apperr.New(apperr.NotFound, "hold not found")
	}
	h.SeatCodes = seatCodes
	h.ExpiresAt = expiresAt
	return nil
}

func (f *fakeHoldRepo) MarkReleased(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.holds[id]
	if !ok {
		return apperr.New(apperr.NotFound, "hold not found")
	}
	if h.Status == StatusActive {
		h.Status = StatusReleased
	}
	return nil
}

func (f *fakeHoldRepo) MarkConsumed(ctx context.Context, id uuid.UUID, orderID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.holds[id]
	if !ok {
		return apperr.New(apperr.NotFound, "hold not found")
	}
	h.Status = StatusConsumed
	h.OrderID = &orderID
	return nil
}

func (f *fakeHoldRepo) ListExpiredActive(ctx context.Context, asOf time.Time, limit int) ([]Hold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Hold
	for _, h := range f.holds {
		if h.Status == StatusActive && !asOf.Before(h.ExpiresAt) {
			out = append(out, *h)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeHoldRepo) MarkExpired(ctx context.Context, ids []uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, id := range ids {
		if h, ok := f.holds[id]; ok && h.Status == StatusActive {
			h.Status = StatusExpired
			n++
		}
	}
	return n, nil
}

type fakeEventGate struct{}

func (fakeEventGate) IsPublished(ctx context.Context, eventID uuid.UUID) (bool, error) {
	return true, nil
}

type fakeSink struct{}

func (fakeSink) Broadcast(ctx context.Context, eventID string, msg realtime.Message) {}

// fakeCacheMiss is a no-op cache.Service: every Get misses, every write is
// silently accepted. It exists only to satisfy holds.Service's dependency
// on pkg/cache in tests that exercise seat-CAS races, not the mirror itself.
type fakeCacheMiss struct{}

func (fakeCacheMiss) Get(ctx context.Context, key string, dest interface{}) error {
	return apperr.New(apperr.NotFound, "cache miss")
}
func (fakeCacheMiss) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (fakeCacheMiss) Delete(ctx context.Context, key string) error         { return nil }
func (fakeCacheMiss) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (fakeCacheMiss) Exists(ctx context.Context, key string) bool          { return false }
func (fakeCacheMiss) MGet(ctx context.Context, keys []string, dest interface{}) error {
	return nil
}
func (fakeCacheMiss) MSet(ctx context.Context, items map[string]interface{}, ttl time.Duration) error {
	return nil
}
func (fakeCacheMiss) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	_, err := fetcher()
	return err
}
func (fakeCacheMiss) Ping(ctx context.Context) error { return nil }

// TestHoldSeatsConcurrentExclusivity drives real HoldSeats calls from many
// goroutines at the same seat, all racing through the production service
// against the in-memory fakes above. Exactly one session may win the seat
// (invariant I3, hold exclusivity; the same seat CAS also backs invariant
// I1, no double-sell).
func TestHoldSeatsConcurrentExclusivity(t *testing.T) {
	const seatCode = "A-1-1"
	const contenders = 25

	eventID := uuid.New()
	seatRepo := newFakeSeatRepo(seatCode)
	svc := NewService(newFakeHoldRepo(), seatRepo, fakeEventGate{}, fakeCacheMiss{}, fakeSink{}, logger.New(), time.Minute, 10)

	var wg sync.WaitGroup
	start := make(chan struct{})
	results := make([]error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := svc.HoldSeats(context.Background(), HoldRequest{
				EventID:   eventID.String(),
				SeatIDs:   []string{seatCode},
				SessionID: uuid.New().String(),
			})
			results[i] = err
		}(i)
	}
	close(start)
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case apperr.Is(err, apperr.SeatConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error from concurrent HoldSeats: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("wins = %d, want exactly 1 (hold exclusivity violated)", wins)
	}
	if conflicts != contenders-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, contenders-1)
	}
	if got := seatRepo.statusOf(seatCode); got != seats.StatusHeld {
		t.Errorf("final seat status = %s, want HELD", got)
	}
}
