package pulseaudio

import (
	"fmt"

	"github.com/jfreymuth/pulse"
)

type RecordStream struct {
	*pulse.RecordStream
}

func newRecordStream(
	pulseStream *pulse.RecordStream,
) *RecordStream {
	return &RecordStream{
		RecordStream: pulseStream,
	}
}

// Drain only reports the stream error: a Pulse recording never ends on its own.
func (stream *RecordStream) Drain() error {
	if stream.Error() != nil {
		return fmt.Errorf("an error occurred during recording: %w", stream.Error())
	}
	return nil
}

// Close stops the recording. The client is owned by RecorderPCM and is
// closed there.
func (stream *RecordStream) Close() (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("got a panic: %v", r)
		}
	}()
	stream.RecordStream.Stop()
	stream.RecordStream.Close()
	return
}
