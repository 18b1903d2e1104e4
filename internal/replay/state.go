package replay

import "fmt"

// State is a step of the replay session.
type State int

const (
	LoggedOut State = iota
	LoggingIn
	Authenticated
	ReportSectionOpen
	DateRangeSet
	RecordLoopReady
	FillingRecord
	SubmittingRecord
	ConfirmingRecord
	Done
	Failed
)

var stateNames = [...]string{
	LoggedOut:         "logged_out",
	LoggingIn:         "logging_in",
	Authenticated:     "authenticated",
	ReportSectionOpen: "report_section_open",
	DateRangeSet:      "date_range_set",
	RecordLoopReady:   "record_loop_ready",
	FillingRecord:     "filling_record",
	SubmittingRecord:  "submitting_record",
	ConfirmingRecord:  "confirming_record",
	Done:              "done",
	Failed:            "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

var transitions = map[State][]State{
	LoggedOut:         {LoggingIn},
	LoggingIn:         {Authenticated, Failed},
	Authenticated:     {ReportSectionOpen, Failed},
	ReportSectionOpen: {DateRangeSet, Failed},
	DateRangeSet:      {RecordLoopReady, Failed},
	RecordLoopReady:   {FillingRecord, Done, Failed},
	FillingRecord:     {SubmittingRecord, RecordLoopReady, Failed},
	SubmittingRecord:  {ConfirmingRecord, Failed},
	ConfirmingRecord:  {RecordLoopReady, Failed},
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type machine struct {
	state State
}

func (m *machine) to(next State) error {
	if !CanTransition(m.state, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.state, next)
	}
	m.state = next
	return nil
}
