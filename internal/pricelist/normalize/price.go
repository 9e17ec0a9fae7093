package normalize

import (
	"errors"
	"strconv"
	"strings"
)

var errNoDigits = errors.New("no digits")

// ParsePrice parses distributor price cells. Both separator conventions are
// accepted: Indonesian "1.500.000,50" and international "1,500,000.50".
// The rule, taken from how PBF lists actually format prices: the trailing
// group after the last separator is a decimal part only when it has one or
// two digits, otherwise every separator is a thousands separator.
func ParsePrice(s string) (float64, error) {
	s = stripCurrency(s)
	if s == "" {
		return 0, errNoDigits
	}
	if !strings.ContainsAny(s, ",.") {
		return strconv.ParseFloat(s, 64)
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '.' })
	if len(parts) == 0 {
		return 0, errNoDigits
	}
	last := parts[len(parts)-1]
	if len(parts) > 1 && len(last) <= 2 {
		return strconv.ParseFloat(strings.Join(parts[:len(parts)-1], "")+"."+last, 64)
	}
	return strconv.ParseFloat(strings.Join(parts, ""), 64)
}

// ParsePercent parses a discount cell as a percentage in [0,100).
func ParsePercent(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= 100 {
		return 0, errors.New("discount out of range")
	}
	return v, nil
}

// stripCurrency drops Rp/IDR/rupiah markers, spaces and any other character
// that is not a digit or separator.
func stripCurrency(s string) string {
	s = strings.ToLower(s)
	for _, cur := range []string{"rupiah", "idr", "rp."} {
		s = strings.ReplaceAll(s, cur, "")
	}
	s = strings.ReplaceAll(s, "rp", "")
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
