package hermes

import "time"

type SessionStartedEvent struct {
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

type SessionRestartedEvent struct {
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

type SessionExpiredEvent struct {
	SessionID string    `json:"session_id"`
	State     string    `json:"state"`
	IdleFor   string    `json:"idle_for"`
	Timestamp time.Time `json:"timestamp"`
}

// RecommendationServedEvent is published for every recommendation result,
// from a wizard session or the stateless endpoint. SessionID is empty for the latter.
type RecommendationServedEvent struct {
	RequestID  string    `json:"request_id"`
	SessionID  string    `json:"session_id,omitempty"`
	Source     string    `json:"source"`
	Applied    []string  `json:"applied"`
	Total      int       `json:"total"`
	Returned   int       `json:"returned"`
	TopVehicle string    `json:"top_vehicle,omitempty"`
	TopScore   float64   `json:"top_score,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// CatalogReloadRequest asks running advisors to reload their catalog source.
type CatalogReloadRequest struct {
	Reason string `json:"reason,omitempty"`
}

type CatalogLoadedEvent struct {
	Vehicles  int       `json:"vehicles"`
	Dropped   int       `json:"dropped"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}
