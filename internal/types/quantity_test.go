package types

import "testing"

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in       string
		fallback int
		want     int
	}{
		{"3", 0, 3},
		{"0", 1, 0},
		{"-2", 0, -2},
		{"abc", 0, 0},
		{"abc", 1, 1},
		{"", 1, 1},
		{"2.5", 0, 0},
		{" 2", 1, 1},
	}
	for _, c := range cases {
		if got := ParseQuantity(c.in, c.fallback); got != c.want {
			t.Fatalf("ParseQuantity(%q, %d) = %d, want %d", c.in, c.fallback, got, c.want)
		}
	}
}
