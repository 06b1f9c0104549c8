package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetByPaymentRef(ctx context.Context, paymentRef string) (*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, failureReason string) error
	SetPaymentRef(ctx context.Context, id uuid.UUID, paymentRef string) error
	CreateTickets(ctx context.Context, tickets []Ticket) error
	GetTicketsByOrderID(ctx context.Context, orderID uuid.UUID) ([]Ticket, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) GetByPaymentRef(ctx context.Context, paymentRef string) (*Order, error) {
	var order Order
	if err := r.db.WithContext(ctx).First(&order, "payment_ref = ?", paymentRef).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, failureReason string) error {
	updates := map[string]interface{}{"status": status}
	if failureReason != "" {
		updates["failure_reason"] = failureReason
	}
	return r.db.WithContext(ctx).Model(&Order{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) SetPaymentRef(ctx context.Context, id uuid.UUID, paymentRef string) error {
	return r.db.WithContext(ctx).Model(&Order{}).Where("id = ?", id).
		Update("payment_ref", paymentRef).Error
}

func (r *repository) CreateTickets(ctx context.Context, tickets []Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tickets).Error
}

func (r *repository) GetTicketsByOrderID(ctx context.Context, orderID uuid.UUID) ([]Ticket, error) {
	var tickets []Ticket
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("seat_code ASC").Find(&tickets).Error
	return tickets, err
}
