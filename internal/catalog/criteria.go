package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Criteria is the set of hard constraints chosen by the user. Zero, empty
// and +Inf mean "no constraint" for their dimension; start from NewCriteria.
type Criteria struct {
	PriceMin float64
	PriceMax float64
	HPMin    float64
	HPMax    float64
	MinSeats int
	FuelType string
	Brand    string
}

// NewCriteria returns criteria that constrain nothing.
func NewCriteria() Criteria {
	return Criteria{
		PriceMax: math.Inf(1),
		HPMax:    math.Inf(1),
	}
}

// Reset restores the unconstrained defaults.
func (c *Criteria) Reset() {
	*c = NewCriteria()
}

// SetPriceRange stores a budget, swapping the bounds if reversed and
// raising a negative minimum to 0.
func (c *Criteria) SetPriceRange(min, max float64) {
	c.PriceMin, c.PriceMax = orderedRange(min, max)
}

// SetHorsepowerRange stores a horsepower range with the same rules as SetPriceRange.
func (c *Criteria) SetHorsepowerRange(min, max float64) {
	c.HPMin, c.HPMax = orderedRange(min, max)
}

// ClearPrice removes the budget constraint.
func (c *Criteria) ClearPrice() {
	c.PriceMin, c.PriceMax = 0, math.Inf(1)
}

// ClearHorsepower removes the horsepower constraint.
func (c *Criteria) ClearHorsepower() {
	c.HPMin, c.HPMax = 0, math.Inf(1)
}

func orderedRange(min, max float64) (float64, float64) {
	if math.IsNaN(min) {
		min = 0
	}
	if math.IsNaN(max) {
		max = math.Inf(1)
	}
	if min > max {
		min, max = max, min
	}
	return math.Max(min, 0), max
}

func (c Criteria) PriceActive() bool { return c.PriceMin > 0 || !math.IsInf(c.PriceMax, 1) }
func (c Criteria) HPActive() bool    { return c.HPMin > 0 || !math.IsInf(c.HPMax, 1) }
func (c Criteria) SeatsActive() bool { return c.MinSeats > 0 }
func (c Criteria) FuelActive() bool  { return Normalize(c.FuelType) != "" }
func (c Criteria) BrandActive() bool { return Normalize(c.Brand) != "" }

// IsEmpty reports whether no dimension is constrained.
func (c Criteria) IsEmpty() bool {
	return !c.PriceActive() && !c.HPActive() && !c.SeatsActive() && !c.FuelActive() && !c.BrandActive()
}

// Summary lists the applied filters for display.
func (c Criteria) Summary() []string {
	var out []string
	if c.PriceActive() {
		lo, hi := "no minimum", "no maximum"
		if c.PriceMin > 0 {
			lo = "$" + formatThousands(c.PriceMin)
		}
		if !math.IsInf(c.PriceMax, 1) {
			hi = "$" + formatThousands(c.PriceMax)
		}
		out = append(out, fmt.Sprintf("Budget: %s - %s", lo, hi))
	}
	if c.FuelActive() {
		out = append(out, "Fuel: "+titleCase(c.FuelType))
	}
	if c.SeatsActive() {
		out = append(out, fmt.Sprintf("Seats: ≥ %d", c.MinSeats))
	}
	if c.BrandActive() {
		out = append(out, "Brand: "+titleCase(c.Brand))
	}
	if c.HPActive() {
		lo, hi := "no minimum", "no maximum"
		if c.HPMin > 0 {
			lo = strconv.FormatFloat(c.HPMin, 'f', -1, 64)
		}
		if !math.IsInf(c.HPMax, 1) {
			hi = strconv.FormatFloat(c.HPMax, 'f', -1, 64)
		}
		out = append(out, fmt.Sprintf("Horsepower: %s - %s hp", lo, hi))
	}
	return out
}

// FormatPrice renders a price as "$12,500".
func FormatPrice(v float64) string {
	return "$" + formatThousands(v)
}

func formatThousands(v float64) string {
	s := strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
