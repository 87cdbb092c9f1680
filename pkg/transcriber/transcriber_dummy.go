package transcriber

import (
	"context"
	"fmt"
	"time"
)

// Dummy does not recognize anything: it returns a single segment describing
// how much audio it received. Useful to tune the endpointing thresholds
// without a model.
type Dummy struct {
	SampleRateValue uint32
	Err             error

	Calls        int
	LastSamples  []float32
	LastLanguage string
}

var _ Transcriber = (*Dummy)(nil)

func NewDummy(sampleRate uint32) *Dummy {
	return &Dummy{SampleRateValue: sampleRate}
}

func (*Dummy) Close() error {
	return nil
}

func (t *Dummy) SampleRate() uint32 {
	return t.SampleRateValue
}

func (t *Dummy) Transcribe(ctx context.Context, samples []float32, language string) ([]Segment, error) {
	t.Calls++
	t.LastSamples = samples
	t.LastLanguage = language
	if t.Err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscriptionFailure, t.Err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscriptionFailure, err)
	}
	duration := time.Duration(len(samples)) * time.Second / time.Duration(t.SampleRateValue)
	return []Segment{{
		Text: fmt.Sprintf("<%d samples, %s, language %s>", len(samples), duration, language),
		End:  duration,
	}}, nil
}
