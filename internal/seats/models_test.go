package seats

import "testing"

func TestSeatStateIsAvailable(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{StatusAvailable, true},
		{StatusHeld, false},
		{StatusSold, false},
		{"", false},
	}
	for _, c := range cases {
		seat := SeatState{Status: c.status}
		if got := seat.IsAvailable(); got != c.want {
			t.Errorf("SeatState{Status: %q}.IsAvailable() = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestSeatStateTableName(t *testing.T) {
	if got := (SeatState{}).TableName(); got != "event_seat_states" {
		t.Errorf("TableName() = %q, want event_seat_states", got)
	}
}
