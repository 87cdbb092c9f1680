// Package spectral implements a classifier that considers a frame voiced
// when it is loud enough and most of its energy lies in the speech band.
package spectral

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/xaionaro-go/asreadln/pkg/audio"
	"github.com/xaionaro-go/asreadln/pkg/classifier"
)

const (
	SpeechBandLowHz  = 300
	SpeechBandHighHz = 3400
)

type Thresholds struct {
	// MinLevelDBFS is the minimal RMS level of a voiced frame.
	MinLevelDBFS float64
	// MinSpeechBandRatio is the minimal share of the spectral energy that
	// has to fall into the speech band.
	MinSpeechBandRatio float64
}

var modeThresholds = map[classifier.Mode]Thresholds{
	classifier.ModeQuality:        {MinLevelDBFS: -55, MinSpeechBandRatio: 0.45},
	classifier.ModeLowBitrate:     {MinLevelDBFS: -50, MinSpeechBandRatio: 0.55},
	classifier.ModeAggressive:     {MinLevelDBFS: -45, MinSpeechBandRatio: 0.6},
	classifier.ModeVeryAggressive: {MinLevelDBFS: -40, MinSpeechBandRatio: 0.7},
}

type Classifier struct {
	Thresholds     Thresholds
	SampleRateHz   audio.SampleRate
	FrameSizeValue uint
}

var _ classifier.Classifier = (*Classifier)(nil)

func New(
	mode classifier.Mode,
	sampleRate audio.SampleRate,
	frameSize uint,
) (*Classifier, error) {
	thresholds, ok := modeThresholds[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %s", mode)
	}
	if sampleRate < 2*SpeechBandHighHz {
		return nil, fmt.Errorf("sample rate %d is too low to see the speech band", sampleRate)
	}
	if frameSize < 16 {
		return nil, fmt.Errorf("frame size %d is too small", frameSize)
	}
	return &Classifier{
		Thresholds:     thresholds,
		SampleRateHz:   sampleRate,
		FrameSizeValue: frameSize,
	}, nil
}

func (*Classifier) Close() error {
	return nil
}

func (c *Classifier) SampleRate() audio.SampleRate {
	return c.SampleRateHz
}

func (c *Classifier) FrameSize() uint {
	return c.FrameSizeValue
}

func (c *Classifier) IsVoice(_ context.Context, frame []int16) (bool, error) {
	if err := classifier.CheckFrameSize(c, frame); err != nil {
		return false, err
	}
	level, ratio := Analyze(frame, c.SampleRateHz)
	return level >= c.Thresholds.MinLevelDBFS && ratio >= c.Thresholds.MinSpeechBandRatio, nil
}

// Analyze returns the RMS level of the frame in dBFS and the share of its
// spectral energy (DC excluded) within the speech band.
func Analyze(frame []int16, sampleRate audio.SampleRate) (float64, float64) {
	samples := make([]float64, len(frame))
	var sumSquares float64
	for i, s := range frame {
		v := float64(s) / math.MaxInt16
		samples[i] = v
		sumSquares += v * v
	}
	if sumSquares == 0 {
		return math.Inf(-1), 0
	}
	level := 10 * math.Log10(sumSquares/float64(len(frame)))

	spectrum := fft.FFTReal(samples)
	binHz := float64(sampleRate) / float64(len(spectrum))
	var total, band float64
	for i := 1; i <= len(spectrum)/2; i++ {
		e := cmplx.Abs(spectrum[i])
		e *= e
		total += e
		freq := float64(i) * binHz
		if freq >= SpeechBandLowHz && freq <= SpeechBandHighHz {
			band += e
		}
	}
	if total == 0 {
		return level, 0
	}
	return level, band / total
}
