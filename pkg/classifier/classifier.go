package classifier

import (
	"context"
	"errors"
	"io"

	"github.com/xaionaro-go/asreadln/pkg/audio"
)

// ErrInvalidFrame is returned (wrapped) when a frame cannot be classified,
// either because its length does not match FrameSize or because the backend
// failed on it.
var ErrInvalidFrame = errors.New("invalid frame")

// Classifier tells voice from silence in fixed-size frames of mono signed
// 16-bit samples.
type Classifier interface {
	io.Closer

	SampleRate() audio.SampleRate
	FrameSize() uint

	IsVoice(ctx context.Context, frame []int16) (bool, error)
}
