// Package recommend runs the filter, score, rank and explain pipeline over a catalog.
package recommend

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
	"github.com/MikeSquared-Agency/Advisor/internal/explain"
	"github.com/MikeSquared-Agency/Advisor/internal/metrics"
	"github.com/MikeSquared-Agency/Advisor/internal/scoring"
)

// DefaultLimit is how many recommendations are shown when no limit is configured.
const DefaultLimit = 10

// Suggestions are offered when no vehicle survives the filters.
var Suggestions = []string{
	"Raise your maximum budget",
	"Consider other fuel types",
	"Lower the required horsepower",
	"Be flexible about the preferred brand",
}

// Recommendation is one ranked vehicle with its explanation.
type Recommendation struct {
	Rank int `json:"rank"`
	scoring.ScoredVehicle
	Explanation explain.Explanation `json:"explanation"`
}

// Result is the outcome of one recommendation request.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	Total           int              `json:"total"`
	Applied         []string         `json:"applied"`
	Suggestions     []string         `json:"suggestions,omitempty"`
}

// Empty reports whether no candidate survived filtering.
func (r Result) Empty() bool { return r.Total == 0 }

// Options tune a Recommender.
type Options struct {
	Limit    int
	Frontier bool
}

// Recommender is safe for concurrent use.
type Recommender struct {
	catalog   atomic.Pointer[catalog.Catalog]
	scorer    *scoring.Scorer
	limit     int
	frontier  bool
	logger    *slog.Logger
	mu        sync.Mutex
	generator *explain.Generator
}

func New(cat *catalog.Catalog, scorer *scoring.Scorer, gen *explain.Generator, opts Options, logger *slog.Logger) *Recommender {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	r := &Recommender{
		scorer:    scorer,
		generator: gen,
		limit:     limit,
		frontier:  opts.Frontier,
		logger:    logger,
	}
	r.catalog.Store(cat)
	return r
}

// Catalog returns the catalog recommendations are drawn from.
func (r *Recommender) Catalog() *catalog.Catalog { return r.catalog.Load() }

// SetCatalog swaps in a freshly loaded catalog. Requests already running
// finish against the previous one.
func (r *Recommender) SetCatalog(cat *catalog.Catalog) {
	r.catalog.Store(cat)
	r.logger.Info("catalog replaced", "vehicles", cat.Len())
}

// Limit is the configured truncation size.
func (r *Recommender) Limit() int { return r.limit }

// Weights is the scorer's weight table.
func (r *Recommender) Weights() scoring.WeightSet { return r.scorer.Weights() }

// Recommend uses the configured limit.
func (r *Recommender) Recommend(c catalog.Criteria) Result {
	return r.RecommendN(c, r.limit)
}

// RecommendN filters, scores and ranks the catalog, then keeps the first n.
// An empty candidate set is not an error: the result carries suggestions instead.
func (r *Recommender) RecommendN(c catalog.Criteria, n int) Result {
	start := time.Now()
	defer func() { metrics.RecommendDuration.Observe(time.Since(start).Seconds()) }()

	if n <= 0 {
		n = r.limit
	}

	candidates := catalog.Filter(r.Catalog().Vehicles(), c)
	metrics.CandidatesPerRequest.Observe(float64(len(candidates)))

	res := Result{
		Recommendations: []Recommendation{},
		Total:           len(candidates),
		Applied:         c.Summary(),
	}
	if len(candidates) == 0 {
		res.Suggestions = append([]string(nil), Suggestions...)
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeNoResults).Inc()
		r.logger.Info("no vehicles match criteria", "applied", res.Applied)
		return res
	}

	scored := r.scorer.Score(candidates, c)
	if r.frontier {
		scoring.MarkFrontier(scored)
	}
	ranked := scoring.Rank(scored)
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	r.mu.Lock()
	for i, s := range ranked {
		res.Recommendations = append(res.Recommendations, Recommendation{
			Rank:          i + 1,
			ScoredVehicle: s,
			Explanation:   r.generator.Explain(s),
		})
	}
	r.mu.Unlock()

	metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeResults).Inc()
	r.logger.Info("recommendations computed",
		"candidates", len(candidates),
		"returned", len(res.Recommendations),
		"top_score", ranked[0].TotalScore,
	)
	return res
}
