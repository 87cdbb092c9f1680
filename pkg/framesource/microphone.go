package framesource

import (
	"context"
	"fmt"
	"io"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/asreadln/pkg/audio"
)

type microphoneCloser struct {
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	stream     audio.RecordStream
	recorder   *audio.Recorder
}

func (c *microphoneCloser) Close() error {
	var mErr *multierror.Error
	// unblocks the backend if it is stuck writing into the pipe
	_ = c.pipeReader.Close()
	if err := c.stream.Close(); err != nil {
		mErr = multierror.Append(mErr, fmt.Errorf("unable to close the record stream: %w", err))
	}
	_ = c.pipeWriter.Close()
	if err := c.recorder.Close(); err != nil {
		mErr = multierror.Append(mErr, fmt.Errorf("unable to close the recorder: %w", err))
	}
	return mErr.ErrorOrNil()
}

// NewMicrophone records mono PCMFormatS16LE at sampleRate from the default
// input device of the first working recorder backend.
func NewMicrophone(
	ctx context.Context,
	sampleRate audio.SampleRate,
) (*PCM, error) {
	recorder, err := audio.NewRecorderAuto(ctx)
	if err != nil {
		return nil, err
	}

	pipeReader, pipeWriter := io.Pipe()
	logger.Tracef(ctx, "recorder.RecordPCM")
	stream, err := recorder.RecordPCM(ctx, sampleRate, 1, audio.PCMFormatS16LE, pipeWriter)
	logger.Tracef(ctx, "/recorder.RecordPCM: %v", err)
	if err != nil {
		_ = pipeReader.Close()
		_ = recorder.Close()
		return nil, fmt.Errorf("unable to start recording: %w", err)
	}
	logger.Debugf(ctx, "recording from %T at %dHz", recorder.RecorderPCM, sampleRate)

	return NewPCM(pipeReader, &microphoneCloser{
		pipeReader: pipeReader,
		pipeWriter: pipeWriter,
		stream:     stream,
		recorder:   recorder,
	}), nil
}
