package scoring

import (
	"fmt"
	"math"
)

// WeightSet defines the relative importance of each scoring factor.
// All weights must sum to 1.0 (±0.001 tolerance).
type WeightSet struct {
	Price      float64
	Horsepower float64
	Seats      float64
	Fuel       float64
	Brand      float64
}

// DefaultWeights returns the standard weight distribution.
func DefaultWeights() WeightSet {
	return WeightSet{
		Price:      0.35,
		Horsepower: 0.25,
		Seats:      0.15,
		Fuel:       0.15,
		Brand:      0.10,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Price + w.Horsepower + w.Seats + w.Fuel + w.Brand
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range w.asList() {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

// asList is in factor order: price, horsepower, seats, fuel, brand.
func (w WeightSet) asList() []float64 {
	return []float64{w.Price, w.Horsepower, w.Seats, w.Fuel, w.Brand}
}
