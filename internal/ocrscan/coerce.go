package ocrscan

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reNumericNoise  = regexp.MustCompile(`[\s,]+`)
	reCurrencyNoise = regexp.MustCompile(`[¥,]`)
	reLeadingInt    = regexp.MustCompile(`^-?\d+`)
)

// CleanNumeric strips whitespace and thousands separators from a raw OCR
// number string ("1,000 " -> "1000").
func CleanNumeric(s string) string {
	return reNumericNoise.ReplaceAllString(s, "")
}

// ParseAmount coerces a currency-formatted string to a float. Unparsable
// input coerces to 0 — never NaN, never an error. OCR output is unreliable
// by nature and one bad cell must not sink the whole scan.
func ParseAmount(s string) float64 {
	f, err := strconv.ParseFloat(CleanNumeric(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseUnitAmount is ParseAmount with currency-symbol stripping, for the
// nested vendor shape where prices arrive like "¥1,200".
func ParseUnitAmount(s string) float64 {
	return ParseAmount(reCurrencyNoise.ReplaceAllString(s, ""))
}

// ParseQuantity coerces a quantity string to an integer. A leading integer
// prefix is accepted ("3個" -> 3); anything else coerces to 0.
func ParseQuantity(s string) int {
	digits := reLeadingInt.FindString(strings.TrimSpace(CleanNumeric(s)))
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// acceptText trims a candidate string and reports whether it is usable.
// Pure-whitespace values are treated as absent.
func acceptText(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// appendUnique appends s unless an equal string is already present,
// preserving first-occurrence order.
func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}

// FormatAmount renders an aggregated total the way the form layer expects:
// no exponent, no trailing zeros ("4000", "4000.5").
func FormatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
