package chart

import (
	"fmt"
	"math"
	"math/rand"
)

// RandomColor picks an hsl() color in the dashboard's hue/saturation/
// lightness ranges. The caller supplies the rand source so palettes can be
// reproduced in tests.
func RandomColor(rng *rand.Rand) string {
	h := rng.Intn(361)
	s := 42 + rng.Intn(98-42+1)
	l := 40 + rng.Intn(90-40+1)
	return fmt.Sprintf("hsl(%d,%d%%,%d%%)", h, s, l)
}

// ParseHSL decodes an hsl(h,s%,l%) string.
func ParseHSL(color string) (h, s, l int, err error) {
	if _, err = fmt.Sscanf(color, "hsl(%d,%d%%,%d%%)", &h, &s, &l); err != nil {
		return 0, 0, 0, fmt.Errorf("parse hsl %q: %w", color, err)
	}
	return h, s, l, nil
}

// HSLToHex converts an hsl() string to #RRGGBB. Invalid input falls back to
// white rather than failing a render.
func HSLToHex(color string) string {
	h, s, l, err := ParseHSL(color)
	if err != nil {
		return "#ffffff"
	}

	lf := float64(l) / 100
	a := float64(s) * math.Min(lf, 1-lf) / 100
	channel := func(n float64) int {
		k := math.Mod(n+float64(h)/30, 12)
		c := lf - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return int(math.Round(255 * c))
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(0), channel(8), channel(4))
}

// Blend linearly interpolates two #RRGGBB colors. Malformed hex reads as
// white.
func Blend(a, b string, t float64) string {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	ar, ag, ab := parseHex(a)
	br, bg, bb := parseHex(b)
	lerp := func(x, y int) int {
		return int(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return fmt.Sprintf("#%02x%02x%02x", lerp(ar, br), lerp(ag, bg), lerp(ab, bb))
}

// Darken pushes a hex color most of the way to black, the treatment pie
// borders get relative to their fill.
func Darken(hex string) string {
	return Blend(hex, "#000000", 0.8)
}

// WithAlpha renders a hex color as rgba() with the given opacity.
func WithAlpha(hex string, alpha float64) string {
	r, g, b := parseHex(hex)
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", r, g, b, alpha)
}

func parseHex(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 255, 255, 255
	}
	return r, g, b
}
