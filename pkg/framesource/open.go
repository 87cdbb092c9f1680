package framesource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/asreadln/pkg/audio"
	"github.com/xaionaro-go/asreadln/pkg/audio/resampler"
)

const (
	InputStdin      = "-"
	InputMicrophone = "mic"
)

// Input describes where the audio comes from. Format, SampleRate and
// Channels describe raw input (stdin or a raw file); zero values mean
// mono PCMFormatS16LE at the output sample rate.
type Input struct {
	Path       string           `yaml:"path"`
	Format     audio.PCMFormat  `yaml:"format"`
	SampleRate audio.SampleRate `yaml:"sample_rate"`
	Channels   audio.Channel    `yaml:"channels"`
}

func (in Input) rawFormat(sampleRate audio.SampleRate) resampler.Format {
	f := resampler.Format{
		Channels:   in.Channels,
		SampleRate: in.SampleRate,
		PCMFormat:  in.Format,
	}
	if f.Channels == 0 {
		f.Channels = 1
	}
	if f.SampleRate == 0 {
		f.SampleRate = sampleRate
	}
	if f.PCMFormat == audio.PCMFormatUndefined {
		f.PCMFormat = audio.PCMFormatS16LE
	}
	return f
}

// IsVorbis reports whether the path looks like an Ogg/Vorbis file.
func IsVorbis(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg", ".oga":
		return true
	}
	return false
}

// Open returns a source of mono PCMFormatS16LE frames at sampleRate.
func Open(
	ctx context.Context,
	in Input,
	sampleRate audio.SampleRate,
) (Source, error) {
	logger.Debugf(ctx, "opening input %#+v at %dHz", in, sampleRate)
	switch {
	case in.Path == "" || in.Path == InputStdin:
		return NewConverted(os.Stdin, nil, in.rawFormat(sampleRate), sampleRate)
	case in.Path == InputMicrophone:
		return NewMicrophone(ctx, sampleRate)
	}

	f, err := os.Open(in.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open '%s': %w", in.Path, err)
	}
	var src *PCM
	if IsVorbis(in.Path) {
		src, err = NewVorbis(f, f, sampleRate)
	} else {
		src, err = NewConverted(f, f, in.rawFormat(sampleRate), sampleRate)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("unable to read '%s': %w", in.Path, err)
	}
	return src, nil
}
