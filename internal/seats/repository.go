package seats

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the Seat State Store: durable, per-(event,seat) CAS rows.
// Every write path goes through a conditional UPDATE + RowsAffected check
// (the teacher's transactional-capacity-check idiom in
// bookings/repository.go, generalized from a pessimistic FOR UPDATE lock
// to pure optimistic concurrency per the no-explicit-locks requirement).
type Repository interface {
	BulkCreateForEvent(ctx context.Context, eventID uuid.UUID, seeds []SeatSeed) error
	GetByEventAndSeatCodes(ctx context.Context, eventID uuid.UUID, seatCodes []string) ([]SeatState, error)
	GetAvailability(ctx context.Context, eventID uuid.UUID) ([]SeatState, error)

	// TryHold transitions AVAILABLE -> HELD for every seatCode, all-or-nothing.
	// Returns the seat codes that could not be granted (already HELD/SOLD).
	TryHold(ctx context.Context, eventID uuid.UUID, seatCodes []string, holdRef uuid.UUID) (rejected []string, err error)

	// ReleaseByHoldRef transitions HELD -> AVAILABLE for every row carrying
	// holdRef, clearing the reference. Used by explicit release and by the
	// Expiration Worker's reclaim path — the same CAS path either way.
	ReleaseByHoldRef(ctx context.Context, holdRef uuid.UUID) (released int64, err error)

	// TrySell transitions HELD(by holdRef) -> SOLD for every seatCode,
	// all-or-nothing. Returns false if any seat is not HELD by holdRef
	// (e.g. reclaimed by expiry, or finalized already), the caller maps
	// this to SEAT_CONFLICT.
	TrySell(ctx context.Context, eventID uuid.UUID, seatCodes []string, holdRef, orderRef uuid.UUID) (ok bool, err error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) BulkCreateForEvent(ctx context.Context, eventID uuid.UUID, seeds []SeatSeed) error {
	if len(seeds) == 0 {
		return nil
	}
	rows := make([]SeatState, 0, len(seeds))
	for _, s := range seeds {
		rows = append(rows, SeatState{
			ID:          uuid.New(),
			EventID:     eventID,
			SeatCode:    s.SeatCode,
			SectionCode: s.SectionCode,
			Status:      StatusAvailable,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) GetByEventAndSeatCodes(ctx context.Context, eventID uuid.UUID, seatCodes []string) ([]SeatState, error) {
	var rows []SeatState
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND seat_code IN ?", eventID, seatCodes).
		Find(&rows).Error
	return rows, err
}

func (r *repository) GetAvailability(ctx context.Context, eventID uuid.UUID) ([]SeatState, error) {
	var rows []SeatState
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("section_code ASC, seat_code ASC").
		Find(&rows).Error
	return rows, err
}

// TryHold performs the bulk conditional update, then verifies every seat in
// the request was actually transitioned. If the attempted row count falls
// short of the request (another grant interleaved) the transaction rolls
// back every partial grant — invariant I5's all-or-nothing semantics.
func (r *repository) TryHold(ctx context.Context, eventID uuid.UUID, seatCodes []string, holdRef uuid.UUID) ([]string, error) {
	var rejected []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []SeatState
		if err := tx.Where("event_id = ? AND seat_code IN ?", eventID, seatCodes).
			Find(&existing).Error; err != nil {
			return err
		}

		found := make(map[string]SeatState, len(existing))
		for _, row := range existing {
			found[row.SeatCode] = row
		}
		for _, code := range seatCodes {
			row, ok := found[code]
			if !ok {
				rejected = append(rejected, code)
				continue
			}
			if !row.IsAvailable() {
				rejected = append(rejected, code)
			}
		}
		if len(rejected) > 0 {
			return nil // nothing granted; caller reports rejected codes
		}

		result := tx.Model(&SeatState{}).
			Where("event_id = ? AND seat_code IN ? AND status = ?", eventID, seatCodes, StatusAvailable).
			Updates(map[string]interface{}{
				"status":   StatusHeld,
				"hold_ref": holdRef,
				"version":  gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if int(result.RowsAffected) != len(seatCodes) {
			// Lost a race between the read above and this UPDATE: someone
			// else grabbed a seat in the interim. Undo whatever this
			// transaction just granted and report every requested seat as
			// rejected — the caller retries as a fresh request.
			if err := tx.Model(&SeatState{}).
				Where("event_id = ? AND seat_code IN ? AND hold_ref = ?", eventID, seatCodes, holdRef).
				Updates(map[string]interface{}{
					"status":   StatusAvailable,
					"hold_ref": nil,
					"version":  gorm.Expr("version + 1"),
				}).Error; err != nil {
				return err
			}
			rejected = append(rejected, seatCodes...)
		}
		return nil
	})

	return rejected, err
}

func (r *repository) ReleaseByHoldRef(ctx context.Context, holdRef uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&SeatState{}).
		Where("hold_ref = ? AND status = ?", holdRef, StatusHeld).
		Updates(map[string]interface{}{
			"status":   StatusAvailable,
			"hold_ref": nil,
			"version":  gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}

func (r *repository) TrySell(ctx context.Context, eventID uuid.UUID, seatCodes []string, holdRef, orderRef uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return false, tx.Error
	}
	result := tx.Model(&SeatState{}).
		Where("event_id = ? AND seat_code IN ? AND status = ? AND hold_ref = ?", eventID, seatCodes, StatusHeld, holdRef).
		Updates(map[string]interface{}{
			"status":    StatusSold,
			"order_ref": orderRef,
			"hold_ref":  nil,
			"version":   gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		tx.Rollback()
		return false, result.Error
	}
	if int(result.RowsAffected) != len(seatCodes) {
		tx.Rollback()
		return false, nil
	}
	return true, tx.Commit().Error
}
