package orders

import "testing"

func TestOrderIsTerminal(t *testing.T) {
	cases := map[string]bool{
		StatusPending:   false,
		StatusSucceeded: true,
		StatusFailed:    true,
		StatusRefunded:  true,
		"UNKNOWN":       false,
	}
	for status, want := range cases {
		o := Order{Status: status}
		if got := o.IsTerminal(); got != want {
			t.Errorf("Order{Status: %s}.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}
