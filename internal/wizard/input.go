package wizard

import (
	"math"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
)

// ParseRange turns two free-text bounds into an ordered range. An empty
// minimum is 0 and an empty maximum is +Inf. Reversed bounds are swapped
// and a negative minimum is raised to 0. Any non-numeric entry yields the
// unconstrained range (0, +Inf) with ok=false.
func ParseRange(minText, maxText string) (min, max float64, ok bool) {
	min, okMin := parseBound(minText, 0)
	max, okMax := parseBound(maxText, math.Inf(1))
	if !okMin || !okMax {
		return 0, math.Inf(1), false
	}
	if min > max {
		min, max = max, min
	}
	if min < 0 {
		min = 0
	}
	return min, max, true
}

func parseBound(s string, empty float64) (float64, bool) {
	s = strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	if s == "" {
		return empty, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParseSeats reads a seat count. Non-numeric or negative input is 0, which
// means no seat constraint.
func ParseSeats(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseYesNo accepts y/yes/n/no in any case.
func ParseYesNo(s string) (yes, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

// MatchOption resolves a typed answer against the offered options: a
// 1-based list number or a name equivalent after normalization. ok is
// false when nothing matches.
func MatchOption(options []string, answer string) (string, bool) {
	answer = strings.TrimSpace(answer)
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], true
	}
	for _, o := range options {
		if catalog.Equivalent(o, answer) {
			return o, true
		}
	}
	return "", false
}
