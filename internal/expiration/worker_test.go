package expiration

import (
	"context"
	"sync"
	"testing"
	"time"

	"seatforge/internal/realtime"
	"seatforge/pkg/logger"

	"github.com/google/uuid"
)

// fakeHoldStore is a mutex-guarded, in-memory HoldStore: a handful of
// holds, some already past their expiry.
type fakeHoldStore struct {
	mu      sync.Mutex
	expired []ExpiredHold
	marked  map[uuid.UUID]bool
}

func newFakeHoldStore(expired ...ExpiredHold) *fakeHoldStore {
	return &fakeHoldStore{expired: expired, marked: make(map[uuid.UUID]bool)}
}

func (f *fakeHoldStore) ListExpiredActive(ctx context.Context, asOf time.Time, limit int) ([]ExpiredHold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ExpiredHold
	for _, h := range f.expired {
		if !f.marked[h.ID] {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHoldStore) MarkExpired(ctx context.Context, ids []uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, id := range ids {
		if !f.marked[id] {
			f.marked[id] = true
			n++
		}
	}
	return n, nil
}

func (f *fakeHoldStore) markedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.marked {
		if v {
			n++
		}
	}
	return n
}

// fakeSeatReleaser mirrors the HELD-scoped, holdRef-conditioned release CAS
// of internal/seats/repository.go's ReleaseByHoldRef: a seat only releases
// once, so a duplicate sweep over the same hold is a safe no-op.
type fakeSeatReleaser struct {
	mu      sync.Mutex
	held    map[uuid.UUID]int // holdRef -> seat count still held
	release map[uuid.UUID]int // holdRef -> total releases observed
}

func newFakeSeatReleaser(held map[uuid.UUID]int) *fakeSeatReleaser {
	return &fakeSeatReleaser{held: held, release: make(map[uuid.UUID]int)}
}

func (f *fakeSeatReleaser) ReleaseByHoldRef(ctx context.Context, holdRef uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.held[holdRef]
	f.held[holdRef] = 0
	f.release[holdRef] += int(n)
	return int64(n), nil
}

type fakeCache struct{}

func (fakeCache) Get(ctx context.Context, key string, dest interface{}) error { return nil }
func (fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (fakeCache) Delete(ctx context.Context, key string) error         { return nil }
func (fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (fakeCache) Exists(ctx context.Context, key string) bool          { return false }
func (fakeCache) MGet(ctx context.Context, keys []string, dest interface{}) error {
	return nil
}
func (fakeCache) MSet(ctx context.Context, items map[string]interface{}, ttl time.Duration) error {
	return nil
}
func (fakeCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	_, err := fetcher()
	return err
}
func (fakeCache) Ping(ctx context.Context) error { return nil }

type fakeSink struct{}

func (fakeSink) Broadcast(ctx context.Context, eventID string, msg realtime.Message) {}

// TestWorkerSweepConcurrentRunsReclaimEachHoldExactlyOnce runs two sweeps
// of the same expired-hold batch concurrently, as an overrun tick might if
// a sweep ever took longer than the configured interval. The TTL
// reclamation bound (invariant I4) requires that a hold's seats are
// released exactly once no matter how many overlapping sweeps observe it.
func TestWorkerSweepConcurrentRunsReclaimEachHoldExactlyOnce(t *testing.T) {
	holdID := uuid.New()
	eventID := uuid.New()
	expired := []ExpiredHold{{ID: holdID, EventID: eventID, SeatCodes: []string{"A-1-1", "A-1-2"}}}

	store := newFakeHoldStore(expired...)
	seatRepo := newFakeSeatReleaser(map[uuid.UUID]int{holdID: 2})
	worker := NewWorker(store, seatRepo, fakeCache{}, fakeSink{}, logger.New(), Config{Interval: time.Millisecond, BatchSize: 10})

	var wg sync.WaitGroup
	start := make(chan struct{})
	const sweeps = 10
	for i := 0; i < sweeps; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			worker.sweep(context.Background())
		}()
	}
	close(start)
	wg.Wait()

	seatRepo.mu.Lock()
	totalReleased := seatRepo.release[holdID]
	seatRepo.mu.Unlock()
	if totalReleased != 2 {
		t.Errorf("total seats released for hold = %d, want exactly 2 (reclaimed once)", totalReleased)
	}
	if got := store.markedCount(); got != 1 {
		t.Errorf("holds marked expired = %d, want exactly 1", got)
	}
}
