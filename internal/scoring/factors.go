package scoring

import (
	"math"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
)

// Factor names, in scoring order.
const (
	FactorPrice      = "price"
	FactorHorsepower = "horsepower"
	FactorSeats      = "seats"
	FactorFuel       = "fuel"
	FactorBrand      = "brand"
)

// FactorResult captures one factor's contribution to the total score.
type FactorResult struct {
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Weight    float64 `json:"weight"`
	Weighted  float64 `json:"weighted"`
	Available bool    `json:"available"`
	Reason    string  `json:"reason"`
}

// Bounds are the normalization limits derived from the candidate set and
// the user's own bounds.
type Bounds struct {
	PriceCeiling float64 `json:"price_ceiling"`
	HPCeiling    float64 `json:"hp_ceiling"`
	SeatsFloor   float64 `json:"seats_floor"`
	SeatsCeiling float64 `json:"seats_ceiling"`

	fuel  string
	brand string
}

// ComputeBounds derives the ceilings and floors used to normalize each
// attribute. User-supplied bounds win; otherwise the candidates' observed
// extremes are used, so scores are relative to whatever survived filtering.
func ComputeBounds(candidates []catalog.Vehicle, c catalog.Criteria) Bounds {
	var maxPrice, maxHP float64
	var minSeats, maxSeats float64
	seenSeats := false
	for _, v := range candidates {
		maxPrice = math.Max(maxPrice, v.Price)
		if v.Horsepower != nil {
			maxHP = math.Max(maxHP, *v.Horsepower)
		}
		if v.Seats != nil {
			s := float64(*v.Seats)
			if !seenSeats {
				minSeats, maxSeats, seenSeats = s, s, true
			} else {
				minSeats = math.Min(minSeats, s)
				maxSeats = math.Max(maxSeats, s)
			}
		}
	}

	b := Bounds{
		PriceCeiling: maxPrice * 1.1,
		HPCeiling:    maxHP,
		SeatsFloor:   minSeats,
		SeatsCeiling: maxSeats,
		fuel:         catalog.Normalize(c.FuelType),
		brand:        catalog.Normalize(c.Brand),
	}
	if !math.IsInf(c.PriceMax, 1) {
		b.PriceCeiling = c.PriceMax
	}
	if !math.IsInf(c.HPMax, 1) {
		b.HPCeiling = c.HPMax
	}
	if c.MinSeats > 0 {
		b.SeatsFloor = float64(c.MinSeats)
	}
	return b
}

// --- Individual factor calculators ---

// PriceFactor favours vehicles priced well under the ceiling: 1 - price/ceiling.
func PriceFactor(v catalog.Vehicle, b Bounds) FactorResult {
	if b.PriceCeiling <= 0 {
		return FactorResult{Name: FactorPrice, Score: 0, Available: false, Reason: "no price ceiling"}
	}
	score := clamp(1.0-v.Price/b.PriceCeiling, 0, 1)
	return FactorResult{Name: FactorPrice, Score: score, Available: true, Reason: "relative to ceiling " + catalog.FormatPrice(b.PriceCeiling)}
}

// HorsepowerFactor is horsepower as a fraction of the ceiling.
func HorsepowerFactor(v catalog.Vehicle, b Bounds) FactorResult {
	if v.Horsepower == nil {
		return FactorResult{Name: FactorHorsepower, Score: 0, Available: false, Reason: "horsepower unknown"}
	}
	if b.HPCeiling <= 0 {
		return FactorResult{Name: FactorHorsepower, Score: 0, Available: false, Reason: "no horsepower ceiling"}
	}
	score := clamp(*v.Horsepower/b.HPCeiling, 0, 1)
	return FactorResult{Name: FactorHorsepower, Score: score, Available: true, Reason: "relative to ceiling"}
}

// SeatsFactor places the seat count linearly between floor and ceiling.
// A degenerate range scores 0.
func SeatsFactor(v catalog.Vehicle, b Bounds) FactorResult {
	if v.Seats == nil {
		return FactorResult{Name: FactorSeats, Score: 0, Available: false, Reason: "seat count unknown"}
	}
	span := b.SeatsCeiling - b.SeatsFloor
	if span <= 0 {
		return FactorResult{Name: FactorSeats, Score: 0, Available: true, Reason: "no seat range"}
	}
	score := clamp((float64(*v.Seats)-b.SeatsFloor)/span, 0, 1)
	return FactorResult{Name: FactorSeats, Score: score, Available: true, Reason: "within seat range"}
}

// FuelFactor is 1 when the fuel type matches the requested one.
func FuelFactor(v catalog.Vehicle, b Bounds) FactorResult {
	return matchFactor(FactorFuel, v.FuelType, b.fuel)
}

// BrandFactor is 1 when the brand matches the requested one.
func BrandFactor(v catalog.Vehicle, b Bounds) FactorResult {
	return matchFactor(FactorBrand, v.Brand, b.brand)
}

func matchFactor(name, value, want string) FactorResult {
	if want == "" {
		return FactorResult{Name: name, Score: 0, Available: false, Reason: "no preference"}
	}
	if catalog.Normalize(value) == want {
		return FactorResult{Name: name, Score: 1, Available: true, Reason: "matches preference"}
	}
	return FactorResult{Name: name, Score: 0, Available: true, Reason: "differs from preference"}
}

func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
