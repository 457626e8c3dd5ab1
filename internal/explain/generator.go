// Package explain turns a scored vehicle into short human-readable
// highlights and a tier label.
package explain

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/MikeSquared-Agency/Advisor/internal/scoring"
)

// Tier is a coarse bucket derived from a vehicle's total score.
type Tier string

const (
	TierTop        Tier = "top"
	TierGood       Tier = "good"
	TierReconsider Tier = "reconsider"
)

// TierFor maps a total score in [0, 100] to its tier.
func TierFor(total float64) Tier {
	switch {
	case total >= 80:
		return TierTop
	case total >= 50:
		return TierGood
	default:
		return TierReconsider
	}
}

// Label is the display form of the tier.
func (t Tier) Label() string {
	switch t {
	case TierTop:
		return "TOP RECOMMENDATION"
	case TierGood:
		return "GOOD CHOICE"
	default:
		return "CONSIDER OTHER OPTIONS"
	}
}

// Explanation is the generated text attached to one recommendation.
type Explanation struct {
	Tier       Tier     `json:"tier"`
	Highlights []string `json:"highlights"`
}

// Text renders the tier label on the first line and the highlights on the second.
func (e Explanation) Text() string {
	return e.Tier.Label() + "\n" + strings.Join(e.Highlights, " | ")
}

// Generator builds explanations. Not safe for concurrent use: callers that
// share one across goroutines must serialize access.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded deterministically.
func NewGenerator(seed uint64) *Generator {
	return NewGeneratorWithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewGeneratorWithRand uses the supplied random source.
func NewGeneratorWithRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Explain builds the explanation for one scored vehicle.
func (g *Generator) Explain(s scoring.ScoredVehicle) Explanation {
	var highlights []string

	if msg, ok := pick(priceMessages, s.Scores.Price); ok {
		highlights = append(highlights, msg)
	}
	if msg, ok := pick(horsepowerMessages, s.Scores.Horsepower); ok {
		highlights = append(highlights, msg)
	}
	if s.Vehicle.Seats != nil {
		if msg, ok := pick(seatMessages, float64(*s.Vehicle.Seats)); ok {
			highlights = append(highlights, msg)
		}
	}
	if s.Scores.Fuel == 1 {
		highlights = append(highlights, fmt.Sprintf(g.choose(fuelTemplates), s.Vehicle.FuelType))
	}
	if s.Scores.Brand == 1 {
		highlights = append(highlights, fmt.Sprintf(g.choose(brandTemplates), s.Vehicle.Brand))
	}
	highlights = append(highlights, g.sample(genericRemarks, 2+g.rng.IntN(2))...)

	return Explanation{Tier: TierFor(s.TotalScore), Highlights: highlights}
}

func (g *Generator) choose(options []string) string {
	return options[g.rng.IntN(len(options))]
}

// sample returns k distinct entries in random order.
func (g *Generator) sample(options []string, k int) []string {
	idx := g.rng.Perm(len(options))[:k]
	out := make([]string, k)
	for i, j := range idx {
		out[i] = options[j]
	}
	return out
}
