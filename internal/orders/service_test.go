package orders

import "testing"

func TestSameSeatSet(t *testing.T) {
	cases := []struct {
		name string
		a, b []string
		want bool
	}{
		{"identical order", []string{"A-1-1", "A-1-2"}, []string{"A-1-1", "A-1-2"}, true},
		{"different order, same set", []string{"A-1-1", "A-1-2"}, []string{"A-1-2", "A-1-1"}, true},
		{"different lengths", []string{"A-1-1"}, []string{"A-1-1", "A-1-2"}, false},
		{"disjoint sets", []string{"A-1-1"}, []string{"A-1-2"}, false},
		{"both empty", nil, nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := sameSeatSet(c.a, c.b); got != c.want {
				t.Errorf("sameSeatSet(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestSectionOf(t *testing.T) {
	if got := sectionOf("A-12-5"); got != "A" {
		t.Errorf("sectionOf(A-12-5) = %q, want A", got)
	}
	if got := sectionOf("SEC-Premium-A-5"); got != "Premium" {
		t.Errorf("sectionOf(SEC-Premium-A-5) = %q, want Premium", got)
	}
	if got := sectionOf("malformed"); got != "" {
		t.Errorf("sectionOf(malformed) = %q, want empty string", got)
	}
}
