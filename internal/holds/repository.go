package holds

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists Hold records. The actual seat-state transitions
// live in internal/seats.Repository — this repository only tracks the
// reservation bookkeeping (who holds what, until when).
type Repository interface {
	Create(ctx context.Context, hold *Hold) error
	GetByID(ctx context.Context, id uuid.UUID) (*Hold, error)
	FindActiveBySessionAndEvent(ctx context.Context, sessionID string, eventID uuid.UUID) (*Hold, error)
	UpdateSeatsAndExpiry(ctx context.Context, id uuid.UUID, seatCodes []string, expiresAt time.Time) error
	MarkReleased(ctx context.Context, id uuid.UUID) error
	MarkConsumed(ctx context.Context, id uuid.UUID, orderID uuid.UUID) error
	ListExpiredActive(ctx context.Context, asOf time.Time, limit int) ([]Hold, error)
	MarkExpired(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, hold *Hold) error {
	return r.db.WithContext(ctx).Create(hold).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Hold, error) {
	var hold Hold
	if err := r.db.WithContext(ctx).First(&hold, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hold, nil
}

func (r *repository) FindActiveBySessionAndEvent(ctx context.Context, sessionID string, eventID uuid.UUID) (*Hold, error) {
	var hold Hold
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND event_id = ? AND status = ? AND expires_at > ?", sessionID, eventID, StatusActive, time.Now()).
		Order("created_at DESC").
		First(&hold).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &hold, nil
}

func (r *repository) UpdateSeatsAndExpiry(ctx context.Context, id uuid.UUID, seatCodes []string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&Hold{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"seat_codes": SeatCodes(seatCodes),
			"expires_at": expiresAt,
		}).Error
}

func (r *repository) MarkReleased(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Hold{}).Where("id = ? AND status = ?", id, StatusActive).
		Updates(map[string]interface{}{"status": StatusReleased}).Error
}

func (r *repository) MarkConsumed(ctx context.Context, id uuid.UUID, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Hold{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": StatusConsumed, "order_id": orderID}).Error
}

func (r *repository) ListExpiredActive(ctx context.Context, asOf time.Time, limit int) ([]Hold, error) {
	var holds []Hold
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at <= ?", StatusActive, asOf).
		Limit(limit).
		Find(&holds).Error
	return holds, err
}

func (r *repository) MarkExpired(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&Hold{}).
		Where("id IN ? AND status = ?", ids, StatusActive).
		Updates(map[string]interface{}{"status": StatusExpired})
	return result.RowsAffected, result.Error
}
