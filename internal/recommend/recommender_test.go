package recommend

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
	"github.com/MikeSquared-Agency/Advisor/internal/explain"
	"github.com/MikeSquared-Agency/Advisor/internal/scoring"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func newRecommender(vs []catalog.Vehicle, opts Options) *Recommender {
	return New(catalog.New(vs),
		scoring.NewScorer(scoring.DefaultWeights(), discardLogger()),
		explain.NewGenerator(1), opts, discardLogger())
}

func threeCars() []catalog.Vehicle {
	return []catalog.Vehicle{
		{Brand: "X", Name: "A", Price: 10000, Horsepower: f64(100), Seats: intp(4), FuelType: "gas"},
		{Brand: "Y", Name: "B", Price: 20000, Horsepower: f64(200), Seats: intp(2), FuelType: "gas"},
		{Brand: "X", Name: "C", Price: 15000, Horsepower: f64(150), Seats: intp(5), FuelType: "electric"},
	}
}

func TestRecommendFuelExample(t *testing.T) {
	r := newRecommender(threeCars(), Options{})
	c := catalog.NewCriteria()
	c.FuelType = "GAS"

	res := r.Recommend(c)
	require.Len(t, res.Recommendations, 2)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "A", res.Recommendations[0].Vehicle.Name)
	assert.Equal(t, 1, res.Recommendations[0].Rank)
	assert.Equal(t, "B", res.Recommendations[1].Vehicle.Name)
	assert.Equal(t, 2, res.Recommendations[1].Rank)
	assert.Equal(t, []string{"Fuel: Gas"}, res.Applied)
	assert.Empty(t, res.Suggestions)
	assert.False(t, res.Empty())

	for _, rec := range res.Recommendations {
		assert.Equal(t, explain.TierFor(rec.TotalScore), rec.Explanation.Tier)
		assert.NotEmpty(t, rec.Explanation.Highlights)
	}
}

func TestRecommendNoResults(t *testing.T) {
	r := newRecommender(threeCars(), Options{})
	c := catalog.NewCriteria()
	c.SetPriceRange(0, 5000)

	res := r.Recommend(c)
	assert.True(t, res.Empty())
	assert.NotNil(t, res.Recommendations)
	assert.Empty(t, res.Recommendations)
	assert.Equal(t, Suggestions, res.Suggestions)
}

func TestRecommendTruncates(t *testing.T) {
	var vs []catalog.Vehicle
	for i := 0; i < 25; i++ {
		vs = append(vs, catalog.Vehicle{
			Brand: "B", Name: fmt.Sprintf("car-%02d", i),
			Price: float64(10000 + i*1000), Horsepower: f64(float64(100 + i)), Seats: intp(5),
		})
	}
	r := newRecommender(vs, Options{})
	assert.Equal(t, DefaultLimit, r.Limit())

	res := r.Recommend(catalog.NewCriteria())
	assert.Len(t, res.Recommendations, DefaultLimit)
	assert.Equal(t, 25, res.Total)
	for i := 1; i < len(res.Recommendations); i++ {
		assert.GreaterOrEqual(t, res.Recommendations[i-1].TotalScore, res.Recommendations[i].TotalScore)
	}

	res = r.RecommendN(catalog.NewCriteria(), 3)
	assert.Len(t, res.Recommendations, 3)

	r = newRecommender(vs, Options{Limit: 5})
	assert.Len(t, r.Recommend(catalog.NewCriteria()).Recommendations, 5)
}

func TestRecommendFrontier(t *testing.T) {
	vs := append(threeCars(), catalog.Vehicle{Brand: "Z", Name: "D", Price: 30000, Horsepower: f64(90), Seats: intp(2)})

	res := newRecommender(vs, Options{Frontier: true}).Recommend(catalog.NewCriteria())
	frontier := map[string]bool{}
	for _, rec := range res.Recommendations {
		frontier[rec.Vehicle.Name] = rec.Frontier
	}
	assert.True(t, frontier["A"])
	assert.True(t, frontier["B"])
	assert.True(t, frontier["C"])
	assert.False(t, frontier["D"])

	res = newRecommender(vs, Options{}).Recommend(catalog.NewCriteria())
	for _, rec := range res.Recommendations {
		assert.False(t, rec.Frontier)
	}
}

func TestRecommendConcurrent(t *testing.T) {
	r := newRecommender(threeCars(), Options{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := r.Recommend(catalog.NewCriteria())
			assert.Len(t, res.Recommendations, 3)
		}()
	}
	wg.Wait()
}

func TestSetCatalog(t *testing.T) {
	r := newRecommender(threeCars(), Options{})
	assert.Equal(t, 3, r.Catalog().Len())

	r.SetCatalog(catalog.New(threeCars()[:1]))
	res := r.Recommend(catalog.NewCriteria())
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "A", res.Recommendations[0].Vehicle.Name)
}
