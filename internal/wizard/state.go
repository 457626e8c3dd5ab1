// Package wizard implements the question flow that collects a user's
// filter criteria one screen at a time.
package wizard

// State is one screen of the wizard.
type State string

const (
	StateIntro      State = "intro"
	StateBudget     State = "budget"
	StateFuel       State = "fuel"
	StateSeats      State = "seats"
	StateBrand      State = "brand"
	StateHorsepower State = "horsepower"
	StateResults    State = "results"
)

// transitions is the only legal successor of each state.
var transitions = map[State]State{
	StateIntro:      StateBudget,
	StateBudget:     StateFuel,
	StateFuel:       StateSeats,
	StateSeats:      StateBrand,
	StateBrand:      StateHorsepower,
	StateHorsepower: StateResults,
	StateResults:    StateIntro,
}

// Questions lists the filter screens in order.
var Questions = []State{StateBudget, StateFuel, StateSeats, StateBrand, StateHorsepower}

// Next returns the state that follows s.
func (s State) Next() (State, bool) {
	n, ok := transitions[s]
	return n, ok
}

// IsValid reports whether s is a known state.
func (s State) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsQuestion reports whether s asks the user for a filter.
func (s State) IsQuestion() bool {
	switch s {
	case StateBudget, StateFuel, StateSeats, StateBrand, StateHorsepower:
		return true
	}
	return false
}

// Question is the yes/no prompt shown on a filter screen.
func (s State) Question() string {
	switch s {
	case StateBudget:
		return "Do you have a budget in mind?"
	case StateFuel:
		return "Do you prefer a specific fuel type?"
	case StateSeats:
		return "Do you need a minimum number of seats?"
	case StateBrand:
		return "Do you have a preferred brand?"
	case StateHorsepower:
		return "Do you need a specific horsepower range?"
	}
	return ""
}

func (s State) String() string { return string(s) }
