package resampler

import (
	"fmt"
	"io"
	"sync"

	"github.com/xaionaro-go/asreadln/pkg/audio"
)

const (
	distanceStep = 10000
)

type Format struct {
	Channels   audio.Channel
	SampleRate audio.SampleRate
	PCMFormat  audio.PCMFormat
}

func (f Format) frameSize() uint {
	return uint(f.PCMFormat.Size()) * uint(f.Channels)
}

type precalculated struct {
	inSampleSize    uint
	outSampleSize   uint
	inNumAvg        uint
	outNumRepeat    uint
	outDistanceStep uint64
}

// Resampler converts a PCM stream between sample formats, sample rates and
// (mono<->N) channel layouts on the fly. Rate conversion is nearest-sample,
// which is adequate for feeding classifiers and speech recognizers.
type Resampler struct {
	inReader    io.Reader
	inFormat    Format
	outFormat   Format
	inDistance  uint64
	outDistance uint64
	locker      sync.Mutex
	buffer      []byte
	pending     []byte
	precalculated
}

var _ io.Reader = (*Resampler)(nil)

func NewResampler(
	inFormat Format,
	inReader io.Reader,
	outFormat Format,
) (*Resampler, error) {
	r := &Resampler{
		inReader:  inReader,
		inFormat:  inFormat,
		outFormat: outFormat,
	}
	err := r.init()
	if err != nil {
		return nil, fmt.Errorf("unable to initialize a resampler from %#+v to %#+v: %w", inFormat, outFormat, err)
	}
	return r, nil
}

func (r *Resampler) init() error {
	if r.inFormat.PCMFormat.Size() == 0 {
		return fmt.Errorf("unsupported input PCM format %v", r.inFormat.PCMFormat)
	}
	if r.outFormat.PCMFormat.Size() == 0 {
		return fmt.Errorf("unsupported output PCM format %v", r.outFormat.PCMFormat)
	}
	if r.inFormat.SampleRate == 0 || r.outFormat.SampleRate == 0 {
		return fmt.Errorf("sample rate is mandatory")
	}
	if r.inFormat.Channels == 0 || r.outFormat.Channels == 0 {
		return fmt.Errorf("channel count is mandatory")
	}

	r.inSampleSize = uint(r.inFormat.PCMFormat.Size())
	r.outSampleSize = uint(r.outFormat.PCMFormat.Size())

	r.inNumAvg = 1
	r.outNumRepeat = 1
	if r.inFormat.Channels != r.outFormat.Channels {
		switch {
		case r.inFormat.Channels == 1:
			r.outNumRepeat = uint(r.outFormat.Channels)
		case r.outFormat.Channels == 1:
			r.inNumAvg = uint(r.inFormat.Channels)
		default:
			return fmt.Errorf("do not know how to convert %d channels to %d", r.inFormat.Channels, r.outFormat.Channels)
		}
	}

	sampleRateAdjust := float64(r.outFormat.SampleRate) / float64(r.inFormat.SampleRate)
	r.outDistanceStep = uint64(float64(distanceStep) / sampleRateAdjust)

	r.inDistance = 0
	r.outDistance = 0

	return nil
}

// Read fills p with converted whole frames. A partial input frame left at
// the end of an upstream read is kept until the next Read.
func (r *Resampler) Read(p []byte) (int, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	maxOutChunks := uint64(len(p)) / uint64(r.outSampleSize) / uint64(r.outNumRepeat)
	if maxOutChunks == 0 {
		return 0, nil
	}

	inFrameSize := uint64(r.inFormat.frameSize())
	chunksToRead := uint64(float64(maxOutChunks) * float64(r.inFormat.SampleRate) / float64(r.outFormat.SampleRate))
	if chunksToRead == 0 {
		chunksToRead = 1
	}
	bytesToRead := chunksToRead * inFrameSize
	if cap(r.buffer) < int(bytesToRead) {
		r.buffer = make([]byte, bytesToRead)
	} else {
		r.buffer = r.buffer[:bytesToRead]
	}
	copied := copy(r.buffer, r.pending)
	r.pending = r.pending[:0]
	n, err := r.inReader.Read(r.buffer[copied:])
	n += copied

	tail := uint64(n) % inFrameSize
	if tail != 0 {
		r.pending = append(r.pending, r.buffer[uint64(n)-tail:n]...)
	}
	chunksRead := uint64(n) / inFrameSize

	dstChunkIdx := uint64(0)
	srcChunkIdx := uint64(0)
	for srcChunkIdx < chunksRead && dstChunkIdx < maxOutChunks {
		// skip input samples while the input is behind the output
		for r.inDistance < r.outDistance && srcChunkIdx < chunksRead {
			srcChunkIdx++
			r.inDistance += distanceStep
		}
		if srcChunkIdx >= chunksRead {
			break
		}

		idxSrc := srcChunkIdx * inFrameSize
		var sum float64
		for channelIdx := uint64(0); channelIdx < uint64(r.inNumAvg); channelIdx++ {
			sum += r.inFormat.PCMFormat.Float64(r.buffer[idxSrc+channelIdx*uint64(r.inSampleSize):])
		}
		val := sum / float64(r.inNumAvg)

		for dstChunkIdx < maxOutChunks && r.outDistance <= r.inDistance {
			for repeatIdx := uint64(0); repeatIdx < uint64(r.outNumRepeat); repeatIdx++ {
				idxDst := (dstChunkIdx*uint64(r.outNumRepeat) + repeatIdx) * uint64(r.outSampleSize)
				r.outFormat.PCMFormat.PutFloat64(p[idxDst:], val)
			}
			dstChunkIdx++
			r.outDistance += r.outDistanceStep
		}

		srcChunkIdx++
		r.inDistance += distanceStep
	}

	if err != nil && len(r.pending) > 0 {
		err = fmt.Errorf("%w: %d trailing bytes do not form a whole frame", io.ErrUnexpectedEOF, len(r.pending))
	}
	return int(dstChunkIdx * uint64(r.outSampleSize) * uint64(r.outNumRepeat)), err
}
