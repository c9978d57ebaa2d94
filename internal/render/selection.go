package render

import (
	"errors"
	"time"

	"github.com/bobby-s-dev/airport-delays/internal/models"
)

var (
	// ErrUnknownAirport is returned for a selection of an unknown or
	// untracked code. The state is left unchanged.
	ErrUnknownAirport = errors.New("unknown or untracked airport")

	// ErrStaleResult is returned for a refresh result older than the one shown.
	ErrStaleResult = errors.New("refresh result is older than the displayed cycle")
)

// State is everything the controller renders from.
type State struct {
	Selected    string
	Initialized bool
	Result      *models.RefreshResult
	Manual      bool
	UpdatedAt   time.Time
}

// Event is an input to the selection state machine.
type Event interface {
	isEvent()
}

// SelectAirport is an explicit user selection from a marker or list entry.
type SelectAirport struct {
	Code  string
	FlyTo bool
}

// StatusRefreshed delivers a completed refresh cycle.
type StatusRefreshed struct {
	Result        *models.RefreshResult
	ForceSelect   bool
	UserInitiated bool
}

// ClearSelection drops the current selection; the next refresh auto-selects.
type ClearSelection struct{}

func (SelectAirport) isEvent()   {}
func (StatusRefreshed) isEvent() {}
func (ClearSelection) isEvent()  {}

// Effects are side requests produced by a transition.
type Effects struct {
	FlyTo bool
}

// Transition is the pure selection state machine.
func Transition(s State, ev Event, airports *models.AirportTable, tracked []string) (State, Effects, error) {
	switch e := ev.(type) {
	case SelectAirport:
		if !airports.IsTracked(e.Code) {
			return s, Effects{}, ErrUnknownAirport
		}
		s.Selected = e.Code
		return s, Effects{FlyTo: e.FlyTo}, nil

	case StatusRefreshed:
		if e.Result == nil {
			return s, Effects{}, nil
		}
		if s.Result != nil && e.Result.CycleID < s.Result.CycleID {
			return s, Effects{}, ErrStaleResult
		}
		s.Result = e.Result
		s.Manual = e.UserInitiated
		s.UpdatedAt = e.Result.FinishedAt
		if !s.Initialized || e.ForceSelect || s.Selected == "" {
			s.Selected = WorstDelay(tracked, e.Result.Statuses)
			s.Initialized = true
		}
		return s, Effects{}, nil

	case ClearSelection:
		s.Selected = ""
		return s, Effects{}, nil
	}

	return s, Effects{}, nil
}

// WorstDelay picks the tracked code with the highest average delay. Ties go
// to the first code in tracked order; codes without a status count as zero.
func WorstDelay(tracked []string, statuses map[string]models.AirportStatus) string {
	best := ""
	highest := -1
	for _, code := range tracked {
		delay := 0
		if st, ok := statuses[code]; ok {
			delay = st.AvgDelayMinutes
		}
		if delay > highest {
			highest = delay
			best = code
		}
	}
	return best
}
