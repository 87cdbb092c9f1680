package endpoint

import (
	"fmt"
)

type Decision uint8

const (
	// DecisionWait: keep reading frames, no speech burst is in progress.
	DecisionWait = Decision(iota)
	// DecisionListen: keep reading frames, a speech burst is in progress.
	DecisionListen
	// DecisionFinish: the session is over, stop reading frames.
	DecisionFinish
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionListen:
		return "listen"
	case DecisionFinish:
		return "finish"
	default:
		return fmt.Sprintf("unknown_decision_%d", uint8(d))
	}
}

func decisionForPhase(p Phase) Decision {
	if p == PhaseAwaitingSpeech {
		return DecisionWait
	}
	return DecisionListen
}
