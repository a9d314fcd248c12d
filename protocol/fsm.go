package protocol

import "fmt"

// State is a point in the session's lifecycle (§4.6). The same state
// machine definition drives both roles; only the actions taken at
// each transition differ.
type State int

const (
	Idle State = iota
	Handshake
	InputsExchanged
	Evaluating
	OutputsExchanged
	Done
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Handshake:
		return "handshake"
	case InputsExchanged:
		return "inputs-exchanged"
	case Evaluating:
		return "evaluating"
	case OutputsExchanged:
		return "outputs-exchanged"
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// fsm tracks a single session's progress through the states of §4.6.
// It is single-shot: once Aborted or Done, it refuses further
// transitions.
type fsm struct {
	state State
}

var transitions = map[State]State{
	Idle:             Handshake,
	Handshake:        InputsExchanged,
	InputsExchanged:  Evaluating,
	Evaluating:       OutputsExchanged,
	OutputsExchanged: Done,
}

// advance moves the fsm to the state that follows its current one. It
// fails if the fsm is already terminal or the transition table has no
// successor for the current state.
func (f *fsm) advance() error {
	if f.state == Aborted || f.state == Done {
		return fmt.Errorf("protocol: session already %s, cannot advance", f.state)
	}
	next, ok := transitions[f.state]
	if !ok {
		return fmt.Errorf("protocol: no transition defined from state %s", f.state)
	}
	f.state = next
	return nil
}

// abort moves the fsm directly to Aborted from any non-terminal state.
func (f *fsm) abort() {
	if f.state != Done {
		f.state = Aborted
	}
}
