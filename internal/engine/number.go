package engine

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseNumber reads the numeric prefix of s the way a browser parseFloat
// does: trailing characters that break the literal are dropped, and input
// with no numeric prefix at all (".", "-", "") reads as 0. Non-finite
// values are reported as 0.
func ParseNumber(s string) float64 {
	for end := len(s); end > 0; end-- {
		v, err := strconv.ParseFloat(s[:end], 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			continue
		}
		return finite(v)
	}
	return 0
}

// FormatNumber renders v in its shortest round-trip decimal form. Values at
// or above 1e21, or below 1e-6, use exponent notation ("1e+21", "1e-7").
// Negative zero and non-finite values render as "0".
func FormatNumber(v float64) string {
	v = finite(v)
	if v == 0 {
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
