package holds

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSeatCodesValueAndScan(t *testing.T) {
	original := SeatCodes{"A-1-5", "A-1-6"}

	raw, err := original.Value()
	if err != nil {
		t.Fatalf("Value() returned unexpected error: %v", err)
	}

	var restored SeatCodes
	if err := restored.Scan(raw); err != nil {
		t.Fatalf("Scan() returned unexpected error: %v", err)
	}

	if len(restored) != len(original) {
		t.Fatalf("Scan() = %v, want %v", restored, original)
	}
	for i := range original {
		if restored[i] != original[i] {
			t.Errorf("Scan()[%d] = %q, want %q", i, restored[i], original[i])
		}
	}
}

func TestSeatCodesScanFromString(t *testing.T) {
	var codes SeatCodes
	if err := codes.Scan(`["B-2-1"]`); err != nil {
		t.Fatalf("Scan(string) returned unexpected error: %v", err)
	}
	if len(codes) != 1 || codes[0] != "B-2-1" {
		t.Errorf("Scan(string) = %v, want [B-2-1]", codes)
	}
}

func TestSeatCodesScanNil(t *testing.T) {
	codes := SeatCodes{"stale"}
	if err := codes.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) returned unexpected error: %v", err)
	}
	if codes != nil {
		t.Errorf("Scan(nil) = %v, want nil", codes)
	}
}

func TestSeatCodesScanRejectsUnsupportedType(t *testing.T) {
	var codes SeatCodes
	if err := codes.Scan(42); err == nil {
		t.Error("Scan(int) = nil error, want error for unsupported type")
	}
}

func TestHoldIsExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	hold := Hold{ExpiresAt: now}

	if hold.IsExpired(now) {
		t.Error("IsExpired(at exact expiry) = true, want false (expiry is exclusive)")
	}
	if !hold.IsExpired(now.Add(time.Second)) {
		t.Error("IsExpired(after expiry) = false, want true")
	}
	if hold.IsExpired(now.Add(-time.Second)) {
		t.Error("IsExpired(before expiry) = true, want false")
	}
}

func TestHoldIsActive(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(5 * time.Minute)

	active := Hold{Status: StatusActive, ExpiresAt: future}
	if !active.IsActive(now) {
		t.Error("IsActive() = false for an active, unexpired hold, want true")
	}

	expired := Hold{Status: StatusActive, ExpiresAt: now.Add(-time.Minute)}
	if expired.IsActive(now) {
		t.Error("IsActive() = true for an expired hold, want false")
	}

	released := Hold{Status: StatusReleased, ExpiresAt: future}
	if released.IsActive(now) {
		t.Error("IsActive() = true for a released hold, want false")
	}

	consumed := Hold{Status: StatusConsumed, ExpiresAt: future, OrderID: func() *uuid.UUID { id := uuid.New(); return &id }()}
	if consumed.IsActive(now) {
		t.Error("IsActive() = true for a consumed hold, want false")
	}
}
