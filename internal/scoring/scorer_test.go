package scoring

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }

func threeCars() []catalog.Vehicle {
	return []catalog.Vehicle{
		{Brand: "X", Name: "A", Price: 10000, Horsepower: float64Ptr(100), Seats: intPtr(4), FuelType: "gas"},
		{Brand: "Y", Name: "B", Price: 20000, Horsepower: float64Ptr(200), Seats: intPtr(2), FuelType: "gas"},
		{Brand: "X", Name: "C", Price: 15000, Horsepower: float64Ptr(150), Seats: intPtr(5), FuelType: "electric"},
	}
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 0.001 {
		t.Errorf("%s: expected %.4f, got %.4f", name, want, got)
	}
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		t.Errorf("default weights sum to %f, expected 1.0", w.Sum())
	}
}

func TestWeightsValidateNegative(t *testing.T) {
	w := WeightSet{Price: -0.1, Horsepower: 0.5, Seats: 0.3, Fuel: 0.2, Brand: 0.1}
	if err := w.Validate(); err == nil {
		t.Fatal("expected validation error for negative weight")
	}
}

func TestWeightsValidateBadSum(t *testing.T) {
	w := WeightSet{Price: 0.5, Horsepower: 0.5, Seats: 0.5}
	if err := w.Validate(); err == nil {
		t.Fatal("expected validation error for bad sum")
	}
}

func TestScoreBudgetExample(t *testing.T) {
	c := catalog.NewCriteria()
	c.SetPriceRange(0, 12000)
	candidates := catalog.Filter(threeCars(), c)
	if len(candidates) != 1 || candidates[0].Name != "A" {
		t.Fatalf("expected only A to survive, got %v", candidates)
	}

	scored := NewScorer(DefaultWeights(), discardLogger()).Score(candidates, c)
	a := scored[0]
	approx(t, "price", a.Scores.Price, 1-10000.0/12000.0)
	approx(t, "horsepower", a.Scores.Horsepower, 1.0)
	approx(t, "seats", a.Scores.Seats, 0)
	approx(t, "fuel", a.Scores.Fuel, 0)
	approx(t, "brand", a.Scores.Brand, 0)
	if a.TotalScore != 30.83 {
		t.Errorf("expected total 30.83, got %v", a.TotalScore)
	}
}

func TestScoreFuelExample(t *testing.T) {
	c := catalog.NewCriteria()
	c.FuelType = "gas"
	candidates := catalog.Filter(threeCars(), c)
	scored := NewScorer(DefaultWeights(), discardLogger()).Score(candidates, c)
	if len(scored) != 2 {
		t.Fatalf("expected 2 scored, got %d", len(scored))
	}

	a, b := scored[0], scored[1]
	approx(t, "A price", a.Scores.Price, 1-10000.0/22000.0)
	approx(t, "B price", b.Scores.Price, 1-20000.0/22000.0)
	approx(t, "A hp", a.Scores.Horsepower, 0.5)
	approx(t, "B hp", b.Scores.Horsepower, 1.0)
	approx(t, "A seats", a.Scores.Seats, 1.0)
	approx(t, "B seats", b.Scores.Seats, 0)
	approx(t, "A fuel", a.Scores.Fuel, 1)
	approx(t, "B fuel", b.Scores.Fuel, 1)

	if a.TotalScore != 61.09 {
		t.Errorf("expected A total 61.09, got %v", a.TotalScore)
	}
	if b.TotalScore != 43.18 {
		t.Errorf("expected B total 43.18, got %v", b.TotalScore)
	}
}

func TestScoreBrandPreference(t *testing.T) {
	c := catalog.NewCriteria()
	c.Brand = " x "
	scored := NewScorer(DefaultWeights(), discardLogger()).Score(threeCars(), c)
	for _, s := range scored {
		want := 0.0
		if s.Vehicle.Brand == "X" {
			want = 1.0
		}
		if s.Scores.Brand != want {
			t.Errorf("%s: expected brand score %v, got %v", s.Vehicle.Name, want, s.Scores.Brand)
		}
	}
}

func TestScoreMinSeatsFloor(t *testing.T) {
	c := catalog.NewCriteria()
	c.MinSeats = 3
	candidates := catalog.Filter(threeCars(), c) // A(4), C(5)
	scored := NewScorer(DefaultWeights(), discardLogger()).Score(candidates, c)
	approx(t, "A seats", scored[0].Scores.Seats, 0.5)
	approx(t, "C seats", scored[1].Scores.Seats, 1.0)
}

func TestScoreSingleRecordNoDivideByZero(t *testing.T) {
	c := catalog.NewCriteria()
	scored := NewScorer(DefaultWeights(), discardLogger()).Score(threeCars()[:1], c)
	a := scored[0]
	approx(t, "price", a.Scores.Price, 1-1/1.1)
	approx(t, "seats", a.Scores.Seats, 0)
	if math.IsNaN(a.TotalScore) || a.TotalScore != 28.18 {
		t.Errorf("expected total 28.18, got %v", a.TotalScore)
	}
}

func TestScoreDegenerateInputs(t *testing.T) {
	free := catalog.Vehicle{Brand: "Z", Price: 0}
	scored := NewScorer(DefaultWeights(), discardLogger()).Score([]catalog.Vehicle{free}, catalog.NewCriteria())
	s := scored[0]
	if s.Scores.Price != 0 || s.Scores.Horsepower != 0 || s.Scores.Seats != 0 {
		t.Errorf("expected zero sub-scores for degenerate record, got %+v", s.Scores)
	}
	if s.TotalScore != 0 {
		t.Errorf("expected total 0, got %v", s.TotalScore)
	}
	for _, f := range s.Factors {
		if f.Name == FactorHorsepower && f.Available {
			t.Error("expected horsepower factor unavailable")
		}
	}
}

func TestScoreEmptyCandidates(t *testing.T) {
	scored := NewScorer(DefaultWeights(), discardLogger()).Score(nil, catalog.NewCriteria())
	if scored == nil || len(scored) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", scored)
	}
}

func TestScoreAlternateWeights(t *testing.T) {
	priceOnly := WeightSet{Price: 1}
	c := catalog.NewCriteria()
	scored := NewScorer(priceOnly, discardLogger()).Score(threeCars(), c)
	for _, s := range scored {
		approx(t, s.Vehicle.Name, s.TotalScore, round2(s.Scores.Price*100))
	}
}

func TestScoreFactorBreakdown(t *testing.T) {
	w := DefaultWeights()
	scored := NewScorer(w, discardLogger()).Score(threeCars(), catalog.NewCriteria())
	s := scored[0]
	if len(s.Factors) != 5 {
		t.Fatalf("expected 5 factors, got %d", len(s.Factors))
	}
	var sum float64
	for i, f := range s.Factors {
		if f.Weight != w.asList()[i] {
			t.Errorf("factor %s: expected weight %v, got %v", f.Name, w.asList()[i], f.Weight)
		}
		sum += f.Weighted
	}
	approx(t, "total", s.TotalScore, round2(sum*100))
}

func TestScoresWithinRange(t *testing.T) {
	vs := append(threeCars(),
		catalog.Vehicle{Brand: "Q", Name: "D", Price: 500000, Horsepower: float64Ptr(900), Seats: intPtr(2), FuelType: "petrol"},
		catalog.Vehicle{Brand: "Q", Name: "E", Price: 1},
	)
	maxes := []float64{math.Inf(1), 15000, 1}
	for _, max := range maxes {
		for _, seats := range []int{0, 2, 9} {
			c := catalog.NewCriteria()
			c.SetPriceRange(0, max)
			c.SetHorsepowerRange(0, max)
			c.MinSeats = seats
			c.FuelType = "gas"
			for _, s := range NewScorer(DefaultWeights(), discardLogger()).Score(vs, c) {
				for _, f := range s.Factors {
					if f.Score < 0 || f.Score > 1 {
						t.Errorf("%s %s out of range: %v", s.Vehicle.Name, f.Name, f.Score)
					}
				}
				if s.TotalScore < 0 || s.TotalScore > 100 {
					t.Errorf("%s total out of range: %v", s.Vehicle.Name, s.TotalScore)
				}
			}
		}
	}
}

func TestComputeBoundsUsesUserBounds(t *testing.T) {
	c := catalog.NewCriteria()
	c.SetPriceRange(0, 50000)
	c.SetHorsepowerRange(0, 400)
	c.MinSeats = 3
	b := ComputeBounds(threeCars(), c)
	if b.PriceCeiling != 50000 || b.HPCeiling != 400 || b.SeatsFloor != 3 || b.SeatsCeiling != 5 {
		t.Errorf("unexpected bounds: %+v", b)
	}

	b = ComputeBounds(threeCars(), catalog.NewCriteria())
	approx(t, "price ceiling", b.PriceCeiling, 22000)
	if b.HPCeiling != 200 || b.SeatsFloor != 2 || b.SeatsCeiling != 5 {
		t.Errorf("unexpected observed bounds: %+v", b)
	}
}
