package framesource

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
	"github.com/xaionaro-go/asreadln/pkg/audio"
	"github.com/xaionaro-go/asreadln/pkg/audio/resampler"
	"github.com/xaionaro-go/datacounter"
)

// NewVorbis decodes an Ogg/Vorbis stream and converts it to mono
// PCMFormatS16LE at sampleRate.
func NewVorbis(
	r io.Reader,
	closer io.Closer,
	sampleRate audio.SampleRate,
) (*PCM, error) {
	counter := datacounter.NewReaderCounter(r)
	oggReader, err := oggvorbis.NewReader(counter)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize a vorbis reader: %w", err)
	}

	converted, err := resampler.NewResampler(
		resampler.Format{
			Channels:   audio.Channel(oggReader.Channels()),
			SampleRate: audio.SampleRate(oggReader.SampleRate()),
			PCMFormat:  audio.PCMFormatFloat32LE,
		},
		audio.NewReaderFromFloat32Reader(oggReader),
		resampler.Format{
			Channels:   1,
			SampleRate: sampleRate,
			PCMFormat:  audio.PCMFormatS16LE,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("unable to convert the decoded audio: %w", err)
	}
	return &PCM{
		Reader:  converted,
		Counter: counter,
		Closer:  closer,
	}, nil
}
