package api

import (
	"math"
	"net/http"

	"github.com/MikeSquared-Agency/Advisor/internal/broker"
	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
	"github.com/MikeSquared-Agency/Advisor/internal/scoring"
)

type RecommendationsHandler struct {
	broker *broker.Broker
}

func NewRecommendationsHandler(b *broker.Broker) *RecommendationsHandler {
	return &RecommendationsHandler{broker: b}
}

// RecommendRequest is a one-shot criteria set. Omitted bounds are open.
type RecommendRequest struct {
	PriceMin *float64 `json:"price_min" validate:"omitempty,gte=0"`
	PriceMax *float64 `json:"price_max" validate:"omitempty,gte=0"`
	HPMin    *float64 `json:"hp_min" validate:"omitempty,gte=0"`
	HPMax    *float64 `json:"hp_max" validate:"omitempty,gte=0"`
	MinSeats int      `json:"min_seats" validate:"gte=0,lte=20"`
	FuelType string   `json:"fuel_type" validate:"max=64"`
	Brand    string   `json:"brand" validate:"max=64"`
	Limit    int      `json:"limit" validate:"gte=0,lte=100"`
}

// Criteria converts the request into filter criteria.
func (req RecommendRequest) Criteria() catalog.Criteria {
	c := catalog.NewCriteria()
	if req.PriceMin != nil || req.PriceMax != nil {
		c.SetPriceRange(valueOr(req.PriceMin, 0), valueOr(req.PriceMax, math.Inf(1)))
	}
	if req.HPMin != nil || req.HPMax != nil {
		c.SetHorsepowerRange(valueOr(req.HPMin, 0), valueOr(req.HPMax, math.Inf(1)))
	}
	c.MinSeats = req.MinSeats
	c.FuelType = req.FuelType
	c.Brand = req.Brand
	return c
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Recommend runs the pipeline once.
// POST /api/v1/recommendations
func (h *RecommendationsHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	limit := req.Limit
	if limit == 0 {
		limit = h.broker.Recommender().Limit()
	}
	writeJSON(w, http.StatusOK, h.broker.Recommend(req.Criteria(), limit))
}

// Options lists what the choice screens offer.
// GET /api/v1/catalog/options
func (h *RecommendationsHandler) Options(w http.ResponseWriter, r *http.Request) {
	cat := h.broker.Recommender().Catalog()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"fuel_types": cat.FuelTypes(),
		"brands":     cat.Brands(),
		"ranges":     cat.Ranges(),
		"vehicles":   cat.Len(),
		"dropped":    cat.Dropped(),
	})
}

// Weights returns the active factor weights.
// GET /api/v1/scoring/weights
func (h *RecommendationsHandler) Weights(w http.ResponseWriter, r *http.Request) {
	ws := h.broker.Recommender().Weights()
	writeJSON(w, http.StatusOK, map[string]float64{
		scoring.FactorPrice:      ws.Price,
		scoring.FactorHorsepower: ws.Horsepower,
		scoring.FactorSeats:      ws.Seats,
		scoring.FactorFuel:       ws.Fuel,
		scoring.FactorBrand:      ws.Brand,
	})
}
