package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/Advisor/internal/broker"
	"github.com/MikeSquared-Agency/Advisor/internal/wizard"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps broker and wizard errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, broker.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, wizard.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, broker.ErrTooManySessions):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
