package holds

import (
	"context"
	"testing"
	"time"

	"seatforge/internal/shared/apperr"
	"seatforge/pkg/logger"

	"github.com/google/uuid"
)

// TestHoldSeatsResubmitIsIdempotentOnAlreadyHeldSeats pins down the §4.1
// fix: a session re-submitting a hold request that repeats a seat it
// already holds must succeed as a no-op on that seat and extend/union the
// rest, rather than being rejected because the seat CAS sees a non-
// AVAILABLE seat among the request.
func TestHoldSeatsResubmitIsIdempotentOnAlreadyHeldSeats(t *testing.T) {
	const heldSeat = "A-1-1"
	const newSeat = "A-1-2"

	eventID := uuid.New()
	sessionID := uuid.New().String()
	seatRepo := newFakeSeatRepo(heldSeat, newSeat)
	svc := NewService(newFakeHoldRepo(), seatRepo, fakeEventGate{}, fakeCacheMiss{}, fakeSink{}, logger.New(), time.Minute, 10)

	first, err := svc.HoldSeats(context.Background(), HoldRequest{
		EventID:   eventID.String(),
		SeatIDs:   []string{heldSeat},
		SessionID: sessionID,
	})
	if err != nil {
		t.Fatalf("initial HoldSeats failed: %v", err)
	}

	second, err := svc.HoldSeats(context.Background(), HoldRequest{
		EventID:   eventID.String(),
		SeatIDs:   []string{heldSeat, newSeat},
		SessionID: sessionID,
	})
	if err != nil {
		t.Fatalf("resubmit including an already-held seat returned unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("resubmit created a new hold %s, want the same hold %s extended", second.ID, first.ID)
	}
	if len(second.SeatCodes) != 2 {
		t.Errorf("extended hold has %d seats, want 2 (union of held + new)", len(second.SeatCodes))
	}
	if got := seatRepo.statusOf(heldSeat); got != "HELD" {
		t.Errorf("already-held seat status = %s, want HELD (untouched)", got)
	}
	if got := seatRepo.statusOf(newSeat); got != "HELD" {
		t.Errorf("new seat status = %s, want HELD", got)
	}
}

// TestValidateHoldUsesCacheMirror exercises the §4.5 side-channel mirror
// end to end: a successful HoldSeats populates the mirror, and a
// subsequent ValidateHold is satisfied from the mirror without touching
// the repository at all.
func TestValidateHoldUsesCacheMirror(t *testing.T) {
	eventID := uuid.New()
	seatRepo := newFakeSeatRepo("A-1-1")
	holdRepo := newFakeHoldRepo()
	cache := newFakeMirrorCache()
	svc := NewService(holdRepo, seatRepo, fakeEventGate{}, cache, fakeSink{}, logger.New(), time.Minute, 10)

	hold, err := svc.HoldSeats(context.Background(), HoldRequest{
		EventID:   eventID.String(),
		SeatIDs:   []string{"A-1-1"},
		SessionID: "session-1",
	})
	if err != nil {
		t.Fatalf("HoldSeats failed: %v", err)
	}
	if !cache.has(hold.ID.String()) {
		t.Fatal("HoldSeats did not write the hold mirror")
	}

	holdRepo.mu.Lock()
	delete(holdRepo.holds, hold.ID) // force ValidateHold to depend on the mirror alone
	holdRepo.mu.Unlock()

	validated, err := svc.ValidateHold(context.Background(), hold.ID.String())
	if err != nil {
		t.Fatalf("ValidateHold returned unexpected error despite the mirror being warm: %v", err)
	}
	if validated.ID != hold.ID {
		t.Errorf("ValidateHold returned hold %s, want %s", validated.ID, hold.ID)
	}
}

// TestReleaseHoldEvictsCacheMirror ensures a released hold's stale mirror
// entry can't be served back out by ValidateHold.
func TestReleaseHoldEvictsCacheMirror(t *testing.T) {
	eventID := uuid.New()
	seatRepo := newFakeSeatRepo("A-1-1")
	holdRepo := newFakeHoldRepo()
	cache := newFakeMirrorCache()
	svc := NewService(holdRepo, seatRepo, fakeEventGate{}, cache, fakeSink{}, logger.New(), time.Minute, 10)

	hold, err := svc.HoldSeats(context.Background(), HoldRequest{
		EventID:   eventID.String(),
		SeatIDs:   []string{"A-1-1"},
		SessionID: "session-1",
	})
	if err != nil {
		t.Fatalf("HoldSeats failed: %v", err)
	}

	if err := svc.ReleaseHold(context.Background(), ReleaseRequest{HoldID: hold.ID.String(), SessionID: "session-1"}); err != nil {
		t.Fatalf("ReleaseHold failed: %v", err)
	}
	if cache.has(hold.ID.String()) {
		t.Error("ReleaseHold left a stale mirror entry behind")
	}

	if _, err := svc.ValidateHold(context.Background(), hold.ID.String()); apperr.KindOf(err) != apperr.InvalidState {
		t.Errorf("ValidateHold(released hold) kind = %s, want %s", apperr.KindOf(err), apperr.InvalidState)
	}
}

// fakeMirrorCache is a minimal, unsynchronized in-memory cache.Service that
// actually stores what's written, unlike fakeCacheMiss — used wherever a
// test needs to observe the §4.5 mirror's real read/write/evict behavior.
type fakeMirrorCache struct {
	entries map[string]Hold
}

func newFakeMirrorCache() *fakeMirrorCache {
	return &fakeMirrorCache{entries: make(map[string]Hold)}
}

func (c *fakeMirrorCache) has(key string) bool {
	for k := range c.entries {
		if len(k) >= len(key) && k[len(k)-len(key):] == key {
			return true
		}
	}
	return false
}

func (c *fakeMirrorCache) Get(ctx context.Context, key string, dest interface{}) error {
	hold, ok := c.entries[key]
	if !ok {
		return apperr.New(apperr.NotFound, "cache miss")
	}
	out, ok := dest.(*Hold)
	if !ok {
		return apperr.New(apperr.Internal, "unsupported destination type")
	}
	*out = hold
	return nil
}

func (c *fakeMirrorCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	hold, ok := value.(*Hold)
	if !ok {
		return apperr.New(apperr.Internal, "unsupported value type")
	}
	c.entries[key] = *hold
	return nil
}

func (c *fakeMirrorCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *fakeMirrorCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (c *fakeMirrorCache) Exists(ctx context.Context, key string) bool {
	_, ok := c.entries[key]
	return ok
}
func (c *fakeMirrorCache) MGet(ctx context.Context, keys []string, dest interface{}) error {
	return nil
}
func (c *fakeMirrorCache) MSet(ctx context.Context, items map[string]interface{}, ttl time.Duration) error {
	return nil
}
func (c *fakeMirrorCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	_, err := fetcher()
	return err
}
func (c *fakeMirrorCache) Ping(ctx context.Context) error { return nil }
