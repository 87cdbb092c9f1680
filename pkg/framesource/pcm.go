package framesource

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/xaionaro-go/asreadln/pkg/audio"
	"github.com/xaionaro-go/asreadln/pkg/audio/resampler"
	"github.com/xaionaro-go/datacounter"
)

// PCM reads frames from a stream of mono PCMFormatS16LE samples.
type PCM struct {
	Reader  io.Reader
	Counter *datacounter.ReaderCounter
	Closer  io.Closer

	buffer    []byte
	closeOnce sync.Once
	closeErr  error
}

var _ Source = (*PCM)(nil)

// NewPCM reads mono PCMFormatS16LE from r. The closer (may be nil) is
// closed on Close.
func NewPCM(r io.Reader, closer io.Closer) *PCM {
	counter := datacounter.NewReaderCounter(r)
	return &PCM{
		Reader:  counter,
		Counter: counter,
		Closer:  closer,
	}
}

// NewConverted reads inFormat from r and converts it to mono
// PCMFormatS16LE at sampleRate.
func NewConverted(
	r io.Reader,
	closer io.Closer,
	inFormat resampler.Format,
	sampleRate audio.SampleRate,
) (*PCM, error) {
	outFormat := resampler.Format{
		Channels:   1,
		SampleRate: sampleRate,
		PCMFormat:  audio.PCMFormatS16LE,
	}
	if inFormat == outFormat {
		return NewPCM(r, closer), nil
	}

	counter := datacounter.NewReaderCounter(r)
	converted, err := resampler.NewResampler(inFormat, counter, outFormat)
	if err != nil {
		return nil, fmt.Errorf("unable to convert the input: %w", err)
	}
	return &PCM{
		Reader:  converted,
		Counter: counter,
		Closer:  closer,
	}, nil
}

func (s *PCM) ReadFrame(frame []int16) error {
	size := len(frame) * 2
	if cap(s.buffer) < size {
		s.buffer = make([]byte, size)
	}
	buf := s.buffer[:size]

	_, err := io.ReadFull(s.Reader, buf)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.ErrClosedPipe), errors.Is(err, os.ErrClosed):
		return ErrSourceExhausted
	default:
		return fmt.Errorf("unable to read a frame of %d samples: %w", len(frame), err)
	}

	for i := range frame {
		frame[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}
	return nil
}

func (s *PCM) BytesRead() uint64 {
	return s.Counter.Count()
}

func (s *PCM) Close() error {
	s.closeOnce.Do(func() {
		if s.Closer != nil {
			s.closeErr = s.Closer.Close()
		}
	})
	return s.closeErr
}
