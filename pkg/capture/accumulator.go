// Package capture runs a capture session: it reads frames, keeps all of
// them and drives the endpointing state machine until the utterance is over.
package capture

import (
	"math"
)

// Accumulator is the append-only buffer of the whole session, normalized to
// float32. It is not safe for concurrent use.
type Accumulator struct {
	samples []float32
}

func NewAccumulator(capacity uint) *Accumulator {
	return &Accumulator{
		samples: make([]float32, 0, capacity),
	}
}

// Ingest appends the frame regardless of how it is classified. Samples are
// divided by math.MaxInt16, so -32768 lands slightly below -1.
func (a *Accumulator) Ingest(frame []int16) {
	for _, s := range frame {
		a.samples = append(a.samples, float32(s)/math.MaxInt16)
	}
}

// Samples returns the accumulated buffer. The caller must not modify it.
func (a *Accumulator) Samples() []float32 {
	return a.samples
}

func (a *Accumulator) Len() int {
	return len(a.samples)
}

func (a *Accumulator) Reset() {
	a.samples = a.samples[:0]
}
