// Package framesource cuts an incoming audio stream into fixed-size frames of
// mono signed 16-bit samples.
package framesource

import (
	"errors"
	"io"
)

// ErrSourceExhausted is returned by ReadFrame when the stream ended (or was
// closed) before a whole frame could be read. The partial frame is dropped.
var ErrSourceExhausted = errors.New("frame source exhausted")

type Source interface {
	io.Closer

	// ReadFrame fills the whole frame or fails.
	ReadFrame(frame []int16) error

	// BytesRead is the amount of raw input consumed so far, before any
	// conversion.
	BytesRead() uint64
}
