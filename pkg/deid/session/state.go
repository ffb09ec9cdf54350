package session

// State is a step of the two-pass workflow.
type State int

const (
	// StateEmpty has no table loaded.
	StateEmpty State = iota
	// StateLoaded has a table and no pass one result.
	StateLoaded
	// StatePass1Matched has pass one name matches awaiting confirmation.
	StatePass1Matched
	// StatePass1Removed has removed the pass one columns and captured their values.
	StatePass1Removed
	// StatePass2Matched has pass two value matches awaiting confirmation.
	StatePass2Matched
	// StateDone has removed the pass two columns.
	StateDone
)

var stateNames = [...]string{
	StateEmpty:        "empty",
	StateLoaded:       "loaded",
	StatePass1Matched: "pass1_matched",
	StatePass1Removed: "pass1_removed",
	StatePass2Matched: "pass2_matched",
	StateDone:         "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

func (s State) in(states ...State) bool {
	for _, o := range states {
		if s == o {
			return true
		}
	}
	return false
}
