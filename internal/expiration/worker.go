// Package expiration implements the Expiration Worker (§4.3): a ticker
// loop that reclaims holds whose TTL has lapsed, adapted from the
// waitlist job processor's ticker/done-channel shape.
package expiration

import (
	"context"
	"time"

	"seatforge/internal/realtime"
	"seatforge/internal/shared/constants"
	"seatforge/pkg/cache"
	"seatforge/pkg/logger"

	"github.com/google/uuid"
)

// HoldStore is the narrow holds collaborator the worker needs: it reads
// expired-but-still-ACTIVE holds directly off the Hold repository rather
// than going through Service, since reclaim is a batch sweep, not a
// single-hold operation. Releasing seats still goes through the same
// CAS path holds.Service uses for explicit release.
type HoldStore interface {
	ListExpiredActive(ctx context.Context, asOf time.Time, limit int) ([]ExpiredHold, error)
	MarkExpired(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// SeatReleaser is the narrow seats collaborator: release-by-hold-ref CAS.
type SeatReleaser interface {
	ReleaseByHoldRef(ctx context.Context, holdRef uuid.UUID) (released int64, err error)
}

// ExpiredHold is the minimal view of a lapsed hold the worker acts on.
type ExpiredHold struct {
	ID        uuid.UUID
	EventID   uuid.UUID
	SeatCodes []string
}

// Config controls the worker's sweep cadence and batch size.
type Config struct {
	Interval  time.Duration
	BatchSize int
}

func DefaultConfig() Config {
	return Config{Interval: 60 * time.Second, BatchSize: 100}
}

// Worker sweeps for expired holds and reclaims their seats.
type Worker struct {
	holds     HoldStore
	seatRepo  SeatReleaser
	cache     cache.Service
	broadcast realtime.Sink
	log       *logger.Logger
	config    Config
	done      chan struct{}
}

func NewWorker(holds HoldStore, seatRepo SeatReleaser, cacheSvc cache.Service, broadcast realtime.Sink, log *logger.Logger, config Config) *Worker {
	if config.Interval <= 0 {
		config = DefaultConfig()
	}
	return &Worker{
		holds:     holds,
		seatRepo:  seatRepo,
		cache:     cacheSvc,
		broadcast: broadcast,
		log:       log,
		config:    config,
		done:      make(chan struct{}),
	}
}

// Start runs the sweep loop until ctx is cancelled or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop halts the sweep loop.
func (w *Worker) Stop() {
	close(w.done)
}

func (w *Worker) run(ctx context.Context) {
	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep(ctx)
		case <-w.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// sweep reclaims every ACTIVE hold whose expiry has passed: releases
// its seats back to AVAILABLE via the same CAS path explicit release
// uses, invalidates the event's cached availability snapshot and
// broadcasts the change to subscribers, then marks the holds EXPIRED.
func (w *Worker) sweep(ctx context.Context) {
	expired, err := w.holds.ListExpiredActive(ctx, time.Now(), w.config.BatchSize)
	if err != nil {
		w.log.ErrorWithContext(ctx, "failed to list expired holds", err, nil)
		return
	}
	if len(expired) == 0 {
		return
	}

	var reclaimed []uuid.UUID
	for _, hold := range expired {
		released, err := w.seatRepo.ReleaseByHoldRef(ctx, hold.ID)
		if err != nil {
			w.log.ErrorWithContext(ctx, "failed to release expired hold seats", err, map[string]interface{}{"hold_id": hold.ID.String()})
			continue
		}
		reclaimed = append(reclaimed, hold.ID)

		w.log.LogHoldReclaimed(ctx, hold.ID.String(), hold.EventID.String(), int(released))
		_ = w.cache.DeletePattern(ctx, constants.BuildSeatsEventInvalidationPattern(hold.EventID.String()))
		w.broadcast.Broadcast(ctx, hold.EventID.String(), realtime.Message{
			Type:    realtime.TypeHoldExpired,
			EventID: hold.EventID.String(),
			Payload: realtime.HoldLifecyclePayload{HoldID: hold.ID.String(), SeatCodes: hold.SeatCodes},
		})
	}

	if _, err := w.holds.MarkExpired(ctx, reclaimed); err != nil {
		w.log.ErrorWithContext(ctx, "failed to mark holds expired", err, nil)
	}
}
