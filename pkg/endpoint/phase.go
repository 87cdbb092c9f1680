package endpoint

import (
	"fmt"
)

type Phase uint8

const (
	// PhaseAwaitingSpeech: no speech burst is in progress.
	PhaseAwaitingSpeech = Phase(iota)
	// PhaseListening: speech is being detected.
	PhaseListening
	// PhasePossiblyEnding: speech was detected, but silence has lasted long
	// enough to suspect the burst is over.
	PhasePossiblyEnding
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingSpeech:
		return "awaiting_speech"
	case PhaseListening:
		return "listening"
	case PhasePossiblyEnding:
		return "possibly_ending"
	default:
		return fmt.Sprintf("unknown_phase_%d", uint8(p))
	}
}
