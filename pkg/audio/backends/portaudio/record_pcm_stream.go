package portaudio

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
	"unsafe"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/gordonklaus/portaudio"
	"github.com/xaionaro-go/asreadln/pkg/audio/types"
	"github.com/xaionaro-go/observability"
)

const (
	RecordBufferSize = time.Millisecond * 20
)

type RecordPCMStream struct {
	PortAudioStream *portaudio.Stream
	InputBuffer     []byte
	Writer          io.Writer
	CancelFunc      context.CancelFunc
	WaitGroup       sync.WaitGroup
	CloseOnce       sync.Once
	ResultError     error
}

var _ types.RecordStream = (*RecordPCMStream)(nil)

func newRecordPCMStream[T any](
	ctx context.Context,
	sampleRate types.SampleRate,
	channels types.Channel,
) (*RecordPCMStream, error) {
	framesPerBuffer := int(types.EncodingPCM{SampleRate: sampleRate}.SamplesForDuration(RecordBufferSize))

	var sample T
	buf := make([]T, framesPerBuffer*int(channels))
	logger.Debugf(ctx, "newRecordPCMStream: %T, %d, %d %s(%d)", sample, sampleRate, channels, RecordBufferSize, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(int(channels), 0, float64(sampleRate), framesPerBuffer, buf)
	if err != nil {
		return nil, err
	}

	ptr := unsafe.SliceData(buf)
	bytesBuf := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(buf)*int(unsafe.Sizeof(sample)))

	return &RecordPCMStream{
		PortAudioStream: stream,
		InputBuffer:     bytesBuf,
		CancelFunc:      func() {},
	}, nil
}

func (s *RecordPCMStream) init(
	ctx context.Context,
	writer io.Writer,
) error {
	s.Writer = writer
	ctx, s.CancelFunc = context.WithCancel(ctx)

	err := s.PortAudioStream.Start()
	if err != nil {
		return fmt.Errorf("unable to start the stream: %w", err)
	}

	s.WaitGroup.Add(1)
	observability.Go(ctx, func(ctx context.Context) {
		defer s.WaitGroup.Done()
		defer s.CancelFunc()
		s.ResultError = s.loop(ctx)
	})
	return nil
}

func (s *RecordPCMStream) loop(
	ctx context.Context,
) (_ret error) {
	logger.Debugf(ctx, "loop")
	defer func() { logger.Debugf(ctx, "/loop: %v", _ret) }()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		logger.Tracef(ctx, "Read")
		err := s.PortAudioStream.Read()
		logger.Tracef(ctx, "/Read: %v", err)
		if err != nil && err != portaudio.InputOverflowed {
			return fmt.Errorf("unable to read: %w", err)
		}

		n, err := s.Writer.Write(s.InputBuffer)
		if err != nil {
			return fmt.Errorf("unable to write: %w", err)
		}
		if n != len(s.InputBuffer) {
			return fmt.Errorf("invalid write length: %d != %d", n, len(s.InputBuffer))
		}
	}
}

func (s *RecordPCMStream) Close() error {
	var err error
	s.CloseOnce.Do(func() {
		s.CancelFunc()
		if abortErr := s.PortAudioStream.Abort(); abortErr != nil {
			err = abortErr
		}
		if closeErr := s.PortAudioStream.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	})
	return err
}

func (s *RecordPCMStream) Drain() error {
	s.WaitGroup.Wait()
	return s.ResultError
}
