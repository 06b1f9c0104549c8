package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{InvalidInput, 400},
		{Unauthenticated, 401},
		{Unauthorized, 403},
		{NotFound, 404},
		{InvalidState, 400},
		{SeatConflict, 409},
		{ExternalUnavailable, 503},
		{Internal, 500},
		{Kind("SOMETHING_UNKNOWN"), 500},
	}
	for _, c := range cases {
		if got := c.kind.HTTPStatus(); got != c.want {
			t.Errorf("Kind(%s).HTTPStatus() = %d, want %d", c.kind, got, c.want)
		}
	}
}

func TestNewAndError(t *testing.T) {
	err := New(NotFound, "event not found")
	want := "NOT_FOUND: event not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil for a bare New error", err.Unwrap())
	}
}

func TestNewf(t *testing.T) {
	err := Newf(InvalidInput, "malformed seat identifier: %q", "A--5")
	want := `INVALID_INPUT: malformed seat identifier: "A--5"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ExternalUnavailable, "redis unreachable", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
	want := "EXTERNAL_UNAVAILABLE: redis unreachable: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	if got := KindOf(errors.New("raw driver error")); got != Internal {
		t.Errorf("KindOf(raw error) = %s, want %s", got, Internal)
	}
	if got := KindOf(nil); got != Internal {
		t.Errorf("KindOf(nil) = %s, want %s", got, Internal)
	}
}

func TestKindOfUnwrapsWrappedError(t *testing.T) {
	base := New(SeatConflict, "seat A-1-5 already held")
	wrapped := fmt.Errorf("hold seat: %w", base)

	if got := KindOf(wrapped); got != SeatConflict {
		t.Errorf("KindOf(wrapped) = %s, want %s", got, SeatConflict)
	}
	if !Is(wrapped, SeatConflict) {
		t.Errorf("Is(wrapped, SeatConflict) = false, want true")
	}
}

func TestWithDetailsChains(t *testing.T) {
	err := New(SeatConflict, "seat already held").WithDetails(map[string]interface{}{
		"seatId": "A-1-5",
	})
	if err.Details["seatId"] != "A-1-5" {
		t.Errorf("Details[seatId] = %v, want A-1-5", err.Details["seatId"])
	}
}
