package routes

import (
	"context"
	"time"

	"seatforge/internal/auth"
	"seatforge/internal/expiration"
	"seatforge/internal/holds"
	"seatforge/internal/orders"
)

// Most of the narrow collaborator interfaces the core packages define
// (seats.VenueLayout, events.SeatSeeder, events.VenueLayoutSource,
// holds.EventGate, orders.PricingSource) are already satisfied directly
// by the concrete venues/seats/events services' own method sets - Go's
// structural typing means no adapter type is needed there, so this file
// only holds the handful of collaborators that need an actual shape
// conversion: a hold's system-of-record view into orders.HoldView, a
// JWT claim into a bare user id, and a hold row into the expiration
// worker's minimal sweep view.

type holdValidatorAdapter struct{ holds.Service }

func (a *holdValidatorAdapter) ValidateHold(ctx context.Context, holdID string) (orders.HoldView, error) {
	hold, err := a.Service.ValidateHold(ctx, holdID)
	if err != nil {
		return orders.HoldView{}, err
	}
	return orders.HoldView{
		ID:        hold.ID.String(),
		EventID:   hold.EventID.String(),
		SessionID: hold.SessionID,
		SeatCodes: []string(hold.SeatCodes),
	}, nil
}

func (a *holdValidatorAdapter) ConsumeHold(ctx context.Context, holdID string, orderID string) error {
	return a.Service.ConsumeHold(ctx, holdID, orderID)
}

func (a *holdValidatorAdapter) ReleaseHold(ctx context.Context, holdID string, sessionID string) error {
	return a.Service.ReleaseHold(ctx, holds.ReleaseRequest{HoldID: holdID, SessionID: sessionID})
}

type tokenValidatorAdapter struct{ auth.Service }

func (a *tokenValidatorAdapter) ValidateToken(tokenString string) (string, error) {
	claims, err := a.Service.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// holdStoreAdapter satisfies internal/expiration.HoldStore off
// internal/holds.Repository, converting holds.Hold rows into the
// worker's minimal ExpiredHold view. MarkExpired is promoted as-is -
// its signature already matches HoldStore exactly.
type holdStoreAdapter struct{ holds.Repository }

func (a *holdStoreAdapter) ListExpiredActive(ctx context.Context, asOf time.Time, limit int) ([]expiration.ExpiredHold, error) {
	rows, err := a.Repository.ListExpiredActive(ctx, asOf, limit)
	if err != nil {
		return nil, err
	}
	out := make([]expiration.ExpiredHold, 0, len(rows))
	for _, h := range rows {
		out = append(out, expiration.ExpiredHold{ID: h.ID, EventID: h.EventID, SeatCodes: []string(h.SeatCodes)})
	}
	return out, nil
}
