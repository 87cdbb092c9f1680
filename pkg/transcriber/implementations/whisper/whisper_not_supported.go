//go:build !whisper
// +build !whisper

package whisper

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/asreadln/pkg/transcriber"
)

const Supported = false

type Whisper struct {
	transcriber.Transcriber
}

func New(
	ctx context.Context,
	modelPath string,
	threads uint,
) (*Whisper, error) {
	return nil, fmt.Errorf("built without whisper support (rebuild with '-tags whisper' and libwhisper available)")
}
