package notifications

import (
	"context"

	"seatforge/internal/orders"

	"github.com/google/uuid"
)

// OrderNotifierAdapter adapts a NotificationService into orders.Notifier:
// best-effort, fire-and-forget order confirmation/failure fan-out over
// the same Kafka-backed pipeline the teacher's waitlist/booking
// notifications use.
type OrderNotifierAdapter struct {
	service NotificationService
}

func NewOrderNotifierAdapter(service NotificationService) *OrderNotifierAdapter {
	return &OrderNotifierAdapter{service: service}
}

func (a *OrderNotifierAdapter) NotifyOrderConfirmed(ctx context.Context, order *orders.Order) error {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingConfirmed).
		WithRecipient(recipientID(order), order.CustomerInfo.Email, order.CustomerInfo.Name).
		WithChannels(NotificationChannelEmail).
		WithSubject("Your seats are confirmed").
		WithEventContext(order.EventID).
		WithBookingContext(order.ID).
		WithTemplate("order_confirmed", map[string]interface{}{
			"seat_codes": order.SeatCodes,
			"total":      order.Total,
			"currency":   order.Currency,
		}).
		Build()

	return a.service.SendNotification(ctx, notification)
}

func (a *OrderNotifierAdapter) NotifyOrderFailed(ctx context.Context, order *orders.Order, reason string) error {
	notification := NewNotificationBuilder().
		WithType(NotificationTypePaymentFailed).
		WithRecipient(recipientID(order), order.CustomerInfo.Email, order.CustomerInfo.Name).
		WithChannels(NotificationChannelEmail).
		WithSubject("We couldn't complete your order").
		WithEventContext(order.EventID).
		WithBookingContext(order.ID).
		WithTemplate("order_failed", map[string]interface{}{
			"seat_codes": order.SeatCodes,
			"reason":     reason,
		}).
		Build()

	return a.service.SendNotification(ctx, notification)
}

func recipientID(order *orders.Order) uuid.UUID {
	if order.UserID != nil {
		return *order.UserID
	}
	return uuid.Nil
}
