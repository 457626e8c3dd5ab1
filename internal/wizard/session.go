package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
	"github.com/MikeSquared-Agency/Advisor/internal/metrics"
)

// ErrInvalidTransition is returned when an action does not fit the current state.
var ErrInvalidTransition = errors.New("invalid wizard transition")

// Answer is the user's response to one filter screen. Skip means "no"
// to the yes/no question; Min and Max feed the range screens and Value the
// seats, fuel and brand screens.
type Answer struct {
	Skip  bool   `json:"skip"`
	Min   string `json:"min,omitempty"`
	Max   string `json:"max,omitempty"`
	Value string `json:"value,omitempty"`
}

// Session owns one run through the wizard.
type Session struct {
	state    State
	criteria catalog.Criteria
}

// NewSession returns a session on the intro screen with unconstrained criteria.
func NewSession() *Session {
	return &Session{state: StateIntro, criteria: catalog.NewCriteria()}
}

// State is the current screen.
func (s *Session) State() State { return s.state }

// Criteria returns a copy of the criteria collected so far.
func (s *Session) Criteria() catalog.Criteria { return s.criteria }

// Start leaves the intro screen.
func (s *Session) Start() error {
	if s.state != StateIntro {
		return fmt.Errorf("start from %s: %w", s.state, ErrInvalidTransition)
	}
	return s.advance()
}

// Apply records the answer for the current filter screen and moves on.
// It reports whether the answer was used as given; malformed range input
// clears that dimension and returns accepted=false.
func (s *Session) Apply(a Answer) (accepted bool, err error) {
	if !s.state.IsQuestion() {
		return false, fmt.Errorf("answer on %s: %w", s.state, ErrInvalidTransition)
	}

	accepted = true
	c := &s.criteria
	switch s.state {
	case StateBudget:
		if a.Skip {
			c.ClearPrice()
			break
		}
		min, max, ok := ParseRange(a.Min, a.Max)
		c.SetPriceRange(min, max)
		accepted = ok
	case StateFuel:
		c.FuelType = ""
		if !a.Skip {
			c.FuelType = strings.TrimSpace(a.Value)
		}
	case StateSeats:
		c.MinSeats = 0
		if !a.Skip {
			c.MinSeats = ParseSeats(a.Value)
		}
	case StateBrand:
		c.Brand = ""
		if !a.Skip {
			c.Brand = strings.TrimSpace(a.Value)
		}
	case StateHorsepower:
		if a.Skip {
			c.ClearHorsepower()
			break
		}
		min, max, ok := ParseRange(a.Min, a.Max)
		c.SetHorsepowerRange(min, max)
		accepted = ok
	}
	return accepted, s.advance()
}

// Restart returns from the results screen to the intro with fresh criteria.
func (s *Session) Restart() error {
	if s.state != StateResults {
		return fmt.Errorf("restart from %s: %w", s.state, ErrInvalidTransition)
	}
	s.criteria.Reset()
	return s.advance()
}

func (s *Session) advance() error {
	next, ok := s.state.Next()
	if !ok {
		return fmt.Errorf("no successor for %s: %w", s.state, ErrInvalidTransition)
	}
	s.state = next
	metrics.WizardTransitions.WithLabelValues(string(next)).Inc()
	return nil
}
