package orders

import (
	"context"
	"time"

	"seatforge/internal/payments"
	"seatforge/internal/pricing"
	"seatforge/internal/seats"
	"seatforge/internal/shared/apperr"
	"seatforge/pkg/logger"

	"github.com/google/uuid"
)

// HoldView is the slice of an internal/holds.Hold the Checkout
// Coordinator needs, decoupling this package from holds' internal
// representation (mirrors the adapter-injection idiom used for
// seats.VenueLayout).
type HoldView struct {
	ID        string
	EventID   string
	SessionID string
	SeatCodes []string
}

// HoldValidator is the narrow Hold Arbiter surface the Checkout
// Coordinator depends on.
type HoldValidator interface {
	ValidateHold(ctx context.Context, holdID string) (HoldView, error)
	ConsumeHold(ctx context.Context, holdID string, orderID string) error
}

// PricingSource resolves a section's Zone (name/price/currency), the
// narrow slice of the Venue collaborator this package needs.
type PricingSource interface {
	SectionsForEvent(ctx context.Context, eventID uuid.UUID) ([]pricing.Zone, error)
}

// Notifier is the narrow Notification collaborator: best-effort order
// confirmation/failure dispatch. Wiring one in is optional - a nil
// Notifier just skips the fan-out, since notification delivery never
// gates the checkout state transition itself.
type Notifier interface {
	NotifyOrderConfirmed(ctx context.Context, order *Order) error
	NotifyOrderFailed(ctx context.Context, order *Order, reason string) error
}

// Service is the Checkout Coordinator (§4.2).
type Service interface {
	CreateCheckoutIntent(ctx context.Context, req CheckoutIntentRequest) (*Order, error)
	GetOrder(ctx context.Context, orderID string) (*OrderWithTickets, error)
	FinalizeOrder(ctx context.Context, orderID string) (*OrderWithTickets, error)
	OnPaymentSuccess(ctx context.Context, paymentRef string) error
	OnPaymentFailure(ctx context.Context, paymentRef string, reason string) error
}

type service struct {
	repo     Repository
	seatRepo seats.Repository
	holds    HoldValidator
	venues   PricingSource
	provider payments.Provider
	seatsSvc seats.Service
	notifier Notifier
	log      *logger.Logger
}

func NewService(repo Repository, seatRepo seats.Repository, holds HoldValidator, venues PricingSource, provider payments.Provider, seatsSvc seats.Service, notifier Notifier, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		seatRepo: seatRepo,
		holds:    holds,
		venues:   venues,
		provider: provider,
		seatsSvc: seatsSvc,
		notifier: notifier,
		log:      log,
	}
}

// CreateCheckoutIntent implements POST /orders/checkout-intent (§6, §4.2
// step 1): validates the hold, prices every seat, creates a PENDING
// order, and opens a payment intent with the provider — synchronously
// resolved by MockProvider, asynchronously by a signed-webhook provider.
func (s *service) CreateCheckoutIntent(ctx context.Context, req CheckoutIntentRequest) (*Order, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, apperr.New(apperr.InvalidInput, "invalid event id")
	}

	hold, err := s.holds.ValidateHold(ctx, req.HoldID)
	if err != nil {
		return nil, err
	}
	if hold.EventID != req.EventID {
		return nil, apperr.New(apperr.InvalidState, "hold does not belong to this event")
	}
	if hold.SessionID != req.SessionID {
		return nil, apperr.New(apperr.Unauthorized, "hold does not belong to this session")
	}
	if !sameSeatSet(hold.SeatCodes, req.SeatIDs) {
		return nil, apperr.New(apperr.InvalidState, "requested seats do not match the held seats")
	}

	zones, err := s.venues.SectionsForEvent(ctx, eventID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ExternalUnavailable, "venue layout unavailable", err)
	}
	zoneByCode := make(map[string]pricing.Zone, len(zones))
	for _, z := range zones {
		zoneByCode[z.SectionCode] = z
	}

	var subtotal float64
	currency := "USD"
	for _, seatID := range req.SeatIDs {
		ref, err := pricing.ParseSeatID(seatID)
		if err != nil {
			return nil, err
		}
		zone, ok := zoneByCode[ref.SectionCode]
		if !ok {
			return nil, apperr.Newf(apperr.InvalidInput, "unknown section for seat %s", seatID)
		}
		subtotal += zone.Price
		currency = zone.Currency
	}
	totals := pricing.ComputeTotals(subtotal, currency)

	var userID *uuid.UUID
	if req.UserID != "" {
		if uid, err := uuid.Parse(req.UserID); err == nil {
			userID = &uid
		}
	}
	holdID, _ := uuid.Parse(req.HoldID)

	order := &Order{
		ID:           uuid.New(),
		EventID:      eventID,
		HoldID:       holdID,
		SessionID:    req.SessionID,
		UserID:       userID,
		SeatCodes:    req.SeatIDs,
		CustomerInfo: req.CustomerInfo,
		Subtotal:     totals.Subtotal,
		Fee:          totals.Fee,
		Tax:          totals.Tax,
		Total:        totals.Total,
		Currency:     totals.Currency,
		Status:       StatusPending,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "persisting order", err)
	}

	intent, err := s.provider.CreateIntent(ctx, payments.IntentRequest{
		OrderID:  order.ID.String(),
		Amount:   order.Total,
		Currency: order.Currency,
	})
	if err != nil {
		_ = s.repo.UpdateStatus(ctx, order.ID, StatusFailed, "payment intent creation failed")
		return nil, apperr.Wrap(apperr.ExternalUnavailable, "creating payment intent", err)
	}
	if err := s.repo.SetPaymentRef(ctx, order.ID, intent.ID); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "storing payment reference", err)
	}
	order.PaymentRef = intent.ID

	if intent.Status == payments.IntentStatusSucceeded {
		if _, err := s.finalize(ctx, order); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// GetOrder implements GET /orders/{id} (§6).
func (s *service) GetOrder(ctx context.Context, orderIDStr string) (*OrderWithTickets, error) {
	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		return nil, apperr.New(apperr.InvalidInput, "invalid order id")
	}
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.NotFound, "order not found", err)
	}
	tickets, err := s.repo.GetTicketsByOrderID(ctx, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "loading tickets", err)
	}
	return &OrderWithTickets{Order: *order, Tickets: tickets}, nil
}

// FinalizeOrder implements POST /orders/{id}/finalize (§6, §4.2 step 2).
// Idempotent: re-finalizing an already-terminal order returns its
// current state without re-running the seat transition.
func (s *service) FinalizeOrder(ctx context.Context, orderIDStr string) (*OrderWithTickets, error) {
	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		return nil, apperr.New(apperr.InvalidInput, "invalid order id")
	}
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.NotFound, "order not found", err)
	}
	if order.IsTerminal() {
		tickets, err := s.repo.GetTicketsByOrderID(ctx, orderID)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "loading tickets", err)
		}
		return &OrderWithTickets{Order: *order, Tickets: tickets}, nil
	}
	return s.finalize(ctx, order)
}

// finalize performs the all-or-nothing HELD->SOLD transition and issues
// tickets. Called either synchronously from CreateCheckoutIntent (mock
// provider) or from the webhook handler (signed provider).
func (s *service) finalize(ctx context.Context, order *Order) (*OrderWithTickets, error) {
	ok, err := s.seatRepo.TrySell(ctx, order.EventID, order.SeatCodes, order.HoldID, order.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "selling seats", err)
	}
	if !ok {
		_ = s.repo.UpdateStatus(ctx, order.ID, StatusFailed, "seats no longer held")
		s.log.LogOrderFailed(ctx, order.ID.String(), "seats no longer held")
		return nil, apperr.New(apperr.SeatConflict, "one or more held seats are no longer available")
	}

	tickets := make([]Ticket, 0, len(order.SeatCodes))
	for _, seatCode := range order.SeatCodes {
		tickets = append(tickets, Ticket{
			ID:          uuid.New(),
			OrderID:     order.ID,
			EventID:     order.EventID,
			SeatCode:    seatCode,
			SectionCode: sectionOf(seatCode),
			IssuedAt:    time.Now(),
		})
	}
	if err := s.repo.CreateTickets(ctx, tickets); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "issuing tickets", err)
	}
	if err := s.repo.UpdateStatus(ctx, order.ID, StatusSucceeded, ""); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "marking order succeeded", err)
	}
	if err := s.holds.ConsumeHold(ctx, order.HoldID.String(), order.ID.String()); err != nil {
		s.log.ErrorWithContext(ctx, "failed to mark hold consumed after finalize", err, map[string]interface{}{"order_id": order.ID.String()})
	}

	userID := ""
	if order.UserID != nil {
		userID = order.UserID.String()
	}
	s.log.LogOrderFinalized(ctx, order.ID.String(), order.EventID.String(), userID)
	s.seatsSvc.InvalidateAvailabilityCache(ctx, order.EventID.String())

	order.Status = StatusSucceeded
	if s.notifier != nil {
		if err := s.notifier.NotifyOrderConfirmed(ctx, order); err != nil {
			s.log.ErrorWithContext(ctx, "order confirmation notification failed", err, map[string]interface{}{"order_id": order.ID.String()})
		}
	}
	return &OrderWithTickets{Order: *order, Tickets: tickets}, nil
}

// OnPaymentSuccess implements the webhook succeeded path (§4.2, §6).
func (s *service) OnPaymentSuccess(ctx context.Context, paymentRef string) error {
	order, err := s.repo.GetByPaymentRef(ctx, paymentRef)
	if err != nil {
		return apperr.Wrap(apperr.NotFound, "order not found for payment reference", err)
	}
	_, err = s.FinalizeOrder(ctx, order.ID.String())
	return err
}

// OnPaymentFailure implements the webhook failed path (§4.2, §6): marks
// the order FAILED. It deliberately does not release the hold or seats —
// the Expiration Worker reclaims them on TTL instead, so a late-arriving
// success webhook for the same payment intent can't race a premature
// release and find its seats already resold out from under it.
func (s *service) OnPaymentFailure(ctx context.Context, paymentRef string, reason string) error {
	order, err := s.repo.GetByPaymentRef(ctx, paymentRef)
	if err != nil {
		return apperr.Wrap(apperr.NotFound, "order not found for payment reference", err)
	}
	if order.IsTerminal() {
		return nil
	}
	if err := s.repo.UpdateStatus(ctx, order.ID, StatusFailed, reason); err != nil {
		return apperr.Wrap(apperr.Internal, "marking order failed", err)
	}
	s.log.LogOrderFailed(ctx, order.ID.String(), reason)

	if s.notifier != nil {
		if err := s.notifier.NotifyOrderFailed(ctx, order, reason); err != nil {
			s.log.ErrorWithContext(ctx, "order failure notification failed", err, map[string]interface{}{"order_id": order.ID.String()})
		}
	}

	return nil
}

func sameSeatSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if !set[v] {
			return false
		}
	}
	return true
}

func sectionOf(seatID string) string {
	ref, err := pricing.ParseSeatID(seatID)
	if err != nil {
		return ""
	}
	return ref.SectionCode
}
