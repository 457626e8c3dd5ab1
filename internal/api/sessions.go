package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Advisor/internal/broker"
	"github.com/MikeSquared-Agency/Advisor/internal/wizard"
)

type SessionsHandler struct {
	broker *broker.Broker
}

func NewSessionsHandler(b *broker.Broker) *SessionsHandler {
	return &SessionsHandler{broker: b}
}

// AnswerRequest is one wizard answer. Range screens read Min and Max,
// choice and seat screens read Value.
type AnswerRequest struct {
	Skip  bool   `json:"skip"`
	Min   string `json:"min" validate:"max=32"`
	Max   string `json:"max" validate:"max=32"`
	Value string `json:"value" validate:"max=64"`
}

// Create opens a session on the intro screen.
// POST /api/v1/sessions
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	snap, err := h.broker.Create()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// GET /api/v1/sessions/{id}
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.broker.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Start leaves the intro screen.
// POST /api/v1/sessions/{id}/start
func (h *SessionsHandler) Start(w http.ResponseWriter, r *http.Request) {
	snap, err := h.broker.Begin(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Answer answers the current question and advances.
// POST /api/v1/sessions/{id}/answer
func (h *SessionsHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	snap, err := h.broker.Answer(chi.URLParam(r, "id"), wizard.Answer{
		Skip:  req.Skip,
		Min:   req.Min,
		Max:   req.Max,
		Value: req.Value,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Restart returns from results to the intro.
// POST /api/v1/sessions/{id}/restart
func (h *SessionsHandler) Restart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.broker.Restart(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DELETE /api/v1/sessions/{id}
func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.broker.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
