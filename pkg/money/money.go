// Package money implements fixed-point arithmetic for costs and billable
// hours. Values are held as int64 hundredths (cents for money, centi-hours
// for durations) so that cost computations never drift the way binary
// floating point does. Rounding is half-up at two decimal places.
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Total computes durationCentiHours × costPerHourCents, rounded half-up to
// whole cents. Both operands are hundredths, so the raw product carries a
// factor of 100 that is divided back out.
func Total(durationCentiHours, costPerHourCents int64) int64 {
	product := durationCentiHours * costPerHourCents
	neg := product < 0
	if neg {
		product = -product
	}
	cents := (product + 50) / 100
	if neg {
		return -cents
	}
	return cents
}

// ParseFixed2 parses a decimal string like "2.5" or "120.75" into int64
// hundredths. At most two fractional digits are accepted.
func ParseFixed2(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty decimal value")
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac := s, ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole, frac = s[:idx], s[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("at most two decimal places allowed, got %q", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal value %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal value %q", s)
	}

	v := w*100 + f
	if neg {
		v = -v
	}
	return v, nil
}

// FormatFixed2 renders int64 hundredths back to a two-decimal string.
func FormatFixed2(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
