package scoring

import (
	"log/slog"
	"math"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
)

// SubScores are the per-dimension normalized values, each in [0, 1].
type SubScores struct {
	Price      float64 `json:"price"`
	Horsepower float64 `json:"horsepower"`
	Seats      float64 `json:"seats"`
	Fuel       float64 `json:"fuel"`
	Brand      float64 `json:"brand"`
}

// ScoredVehicle is a catalog vehicle with its scoring breakdown.
type ScoredVehicle struct {
	Vehicle    catalog.Vehicle `json:"vehicle"`
	Scores     SubScores       `json:"scores"`
	Factors    []FactorResult  `json:"factors"`
	TotalScore float64         `json:"total_score"`
	Frontier   bool            `json:"frontier,omitempty"`
}

// Scorer applies the 5-factor weighted additive scoring.
type Scorer struct {
	weights WeightSet
	logger  *slog.Logger
}

// NewScorer creates a Scorer with the given weights.
func NewScorer(weights WeightSet, logger *slog.Logger) *Scorer {
	return &Scorer{weights: weights, logger: logger}
}

// Weights returns the scorer's weight table.
func (s *Scorer) Weights() WeightSet { return s.weights }

// Score computes the breakdown for every candidate, keeping input order.
func (s *Scorer) Score(candidates []catalog.Vehicle, c catalog.Criteria) []ScoredVehicle {
	out := make([]ScoredVehicle, 0, len(candidates))
	if len(candidates) == 0 {
		return out
	}

	b := ComputeBounds(candidates, c)
	s.logger.Debug("scoring candidates",
		"count", len(candidates),
		"price_ceiling", b.PriceCeiling,
		"hp_ceiling", b.HPCeiling,
		"seats_floor", b.SeatsFloor,
		"seats_ceiling", b.SeatsCeiling,
	)

	for _, v := range candidates {
		out = append(out, s.ScoreVehicle(v, b))
	}
	return out
}

// ScoreVehicle scores one vehicle against precomputed bounds.
func (s *Scorer) ScoreVehicle(v catalog.Vehicle, b Bounds) ScoredVehicle {
	factors := []FactorResult{
		PriceFactor(v, b),
		HorsepowerFactor(v, b),
		SeatsFactor(v, b),
		FuelFactor(v, b),
		BrandFactor(v, b),
	}

	weights := s.weights.asList()

	var total float64
	for i := range factors {
		factors[i].Weight = weights[i]
		factors[i].Weighted = factors[i].Score * weights[i]
		total += factors[i].Weighted
	}

	return ScoredVehicle{
		Vehicle: v,
		Scores: SubScores{
			Price:      factors[0].Score,
			Horsepower: factors[1].Score,
			Seats:      factors[2].Score,
			Fuel:       factors[3].Score,
			Brand:      factors[4].Score,
		},
		Factors:    factors,
		TotalScore: clamp(round2(total*100), 0, 100),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
