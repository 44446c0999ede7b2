package engine

import (
	"fmt"
	"math"
	"strconv"
)

// Epsilon below which a float is displayed as the nearest integer.
const formatEpsilon = 1e-10

// FormatFloat renders a float, snapping near-integers ("2.0000000000001"
// displays as "2").
func FormatFloat(val float64) string {
	if frac := val - math.Trunc(val); math.Abs(frac) < formatEpsilon &&
		!math.IsInf(val, 0) && math.Abs(val) < math.MaxInt64 {
		return strconv.FormatInt(int64(math.Round(val)), 10)
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}

// FormatComplex renders a complex value as "a + bi", dropping negligible
// parts.
func FormatComplex(c complex128) string {
	re, im := real(c), imag(c)

	if math.Abs(im) < formatEpsilon {
		return FormatFloat(re)
	}

	imStr := FormatFloat(math.Abs(im))
	if math.Abs(re) < formatEpsilon {
		if im < 0 {
			return "-" + imStr + "i"
		}
		return imStr + "i"
	}

	sign := "+"
	if im < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s %s %si", FormatFloat(re), sign, imStr)
}

// FormatNumber renders a number exactly: rationals as "numer/denom" unless
// they reduce to an integer.
func FormatNumber(n Number) string {
	switch n.Kind() {
	case KindInteger:
		return n.Int().String()
	case KindRational:
		r := n.Rat()
		if r.IsInt() {
			return r.Num().String()
		}
		return fmt.Sprintf("%s/%s", r.Num(), r.Denom())
	case KindFloat:
		return FormatFloat(n.f)
	default:
		return FormatComplex(n.c)
	}
}

// FormatNumberDecimal is FormatNumber with rationals rendered as decimals.
func FormatNumberDecimal(n Number) string {
	if n.Kind() == KindRational {
		r := n.Rat()
		if r.IsInt() {
			return r.Num().String()
		}
		f, _ := r.Float64()
		return FormatFloat(f)
	}
	return FormatNumber(n)
}

// MapInputToken rewrites display glyphs from calculator keypads into engine
// syntax.
func MapInputToken(text string) string {
	switch text {
	case "÷":
		return "/"
	case "×":
		return "*"
	case "−":
		return "-"
	case "π":
		return "pi"
	case "√":
		return "sqrt("
	}
	return text
}

// ShouldAutoParen reports whether a keypad token expects an opening
// parenthesis to be inserted after it.
func ShouldAutoParen(token string) bool {
	switch token {
	case "sin", "cos", "tan", "asin", "acos", "atan",
		"sinh", "cosh", "tanh", "log", "ln", "sqrt", "abs":
		return true
	}
	return false
}
