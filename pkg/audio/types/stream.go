package types

import (
	"io"
)

type Stream interface {
	io.Closer
	Drain() error
}

type PlayStream interface {
	Stream
}

// RecordStream is a running capture; Drain blocks until the capture loops
// have stopped (which happens on Close or on a backend failure).
type RecordStream interface {
	Stream
}
