package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	firstIntRe    = regexp.MustCompile(`\d+`)
	priceStripper = strings.NewReplacer("$", "", ",", "", " ", "", "\u00a0", "")
)

// parsePrice reads a currency-formatted cell such as "$1,100,000".
// ok is false for empty, non-numeric or negative values.
func parsePrice(s string) (float64, bool) {
	s = priceStripper.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// firstInt returns the first run of digits in s, e.g. 963 for "963 hp"
// or 2 for "2+2".
func firstInt(s string) (int, bool) {
	m := firstIntRe.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
