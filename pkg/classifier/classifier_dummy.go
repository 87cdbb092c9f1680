package classifier

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/asreadln/pkg/audio"
)

// Dummy returns the same answer for every frame of the right size.
type Dummy struct {
	SampleRateValue audio.SampleRate
	FrameSizeValue  uint
	Voice           bool
}

var _ Classifier = (*Dummy)(nil)

func NewDummy(sampleRate audio.SampleRate, frameSize uint, voice bool) *Dummy {
	return &Dummy{
		SampleRateValue: sampleRate,
		FrameSizeValue:  frameSize,
		Voice:           voice,
	}
}

func (*Dummy) Close() error {
	return nil
}

func (c *Dummy) SampleRate() audio.SampleRate {
	return c.SampleRateValue
}

func (c *Dummy) FrameSize() uint {
	return c.FrameSizeValue
}

func (c *Dummy) IsVoice(_ context.Context, frame []int16) (bool, error) {
	if err := CheckFrameSize(c, frame); err != nil {
		return false, err
	}
	return c.Voice, nil
}

// CheckFrameSize returns a wrapped ErrInvalidFrame if len(frame) does not
// match c.FrameSize().
func CheckFrameSize(c Classifier, frame []int16) error {
	if uint(len(frame)) != c.FrameSize() {
		return fmt.Errorf("%w: expected %d samples, got %d", ErrInvalidFrame, c.FrameSize(), len(frame))
	}
	return nil
}
