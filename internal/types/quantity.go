package types

import "strconv"

// ParseQuantity decodes a string-encoded order quantity. Non-numeric values
// never fail; each call site substitutes its own fallback (revenue math uses
// 1, quantity totals use 0 — the two policies are intentionally different and
// must not be unified without product sign-off).
func ParseQuantity(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
