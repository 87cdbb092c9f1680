package classifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/xaionaro-go/asreadln/pkg/audio"
)

// Result is a single scripted answer of Script.
type Result struct {
	Voice bool
	Err   error
}

var (
	ResultVoice   = Result{Voice: true}
	ResultSilence = Result{}
	ResultInvalid = Result{Err: fmt.Errorf("%w: scripted", ErrInvalidFrame)}
)

// Script answers with the given results in order, ignoring frame contents
// (the frame size is still checked). After the results are exhausted it
// answers with Tail.
type Script struct {
	SampleRateValue audio.SampleRate
	FrameSizeValue  uint
	Results         []Result
	Tail            Result

	locker sync.Mutex
	calls  int
}

var _ Classifier = (*Script)(nil)

func NewScript(
	sampleRate audio.SampleRate,
	frameSize uint,
	results ...Result,
) *Script {
	return &Script{
		SampleRateValue: sampleRate,
		FrameSizeValue:  frameSize,
		Results:         results,
		Tail:            ResultSilence,
	}
}

func (*Script) Close() error {
	return nil
}

func (c *Script) SampleRate() audio.SampleRate {
	return c.SampleRateValue
}

func (c *Script) FrameSize() uint {
	return c.FrameSizeValue
}

func (c *Script) IsVoice(_ context.Context, frame []int16) (bool, error) {
	c.locker.Lock()
	defer c.locker.Unlock()
	if err := CheckFrameSize(c, frame); err != nil {
		return false, err
	}
	r := c.Tail
	if c.calls < len(c.Results) {
		r = c.Results[c.calls]
	}
	c.calls++
	return r.Voice, r.Err
}

// Calls returns how many frames were classified so far.
func (c *Script) Calls() int {
	c.locker.Lock()
	defer c.locker.Unlock()
	return c.calls
}

// Repeat returns n copies of r, for building scripts.
func Repeat(r Result, n int) []Result {
	results := make([]Result, n)
	for i := range results {
		results[i] = r
	}
	return results
}
