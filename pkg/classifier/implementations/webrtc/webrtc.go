// Package webrtc implements a classifier on top of the WebRTC voice
// activity detector. It links libfvad through cgo, so the library must be
// installed (found via pkg-config) to build it.
package webrtc

import (
	"context"
	"fmt"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/josharian/fvad"
	"github.com/xaionaro-go/asreadln/pkg/audio"
	"github.com/xaionaro-go/asreadln/pkg/classifier"
)

var SupportedSampleRates = []audio.SampleRate{8000, 16000, 32000, 48000}

// SupportedFrameDurationsMS are the frame durations the detector accepts.
var SupportedFrameDurationsMS = []uint{10, 20, 30}

type Classifier struct {
	Locker         sync.Mutex
	Detector       *fvad.Detector
	SampleRateHz   audio.SampleRate
	FrameSizeValue uint
	Mode           classifier.Mode
}

var _ classifier.Classifier = (*Classifier)(nil)

func New(
	ctx context.Context,
	mode classifier.Mode,
	sampleRate audio.SampleRate,
	frameSize uint,
) (*Classifier, error) {
	if err := ValidateFormat(sampleRate, frameSize); err != nil {
		return nil, err
	}

	d := fvad.NewDetector()
	if err := d.SetMode(int(mode)); err != nil {
		d.Close()
		return nil, fmt.Errorf("unable to set mode %s: %w", mode, err)
	}
	if err := d.SetSampleRate(int(sampleRate)); err != nil {
		d.Close()
		return nil, fmt.Errorf("unable to set sample rate %d: %w", sampleRate, err)
	}
	logger.Debugf(ctx, "initialized the WebRTC VAD: mode:%s, sample rate:%d, frame size:%d", mode, sampleRate, frameSize)

	return &Classifier{
		Detector:       d,
		SampleRateHz:   sampleRate,
		FrameSizeValue: frameSize,
		Mode:           mode,
	}, nil
}

// ValidateFormat checks that the detector supports the combination of the
// sample rate and the frame size.
func ValidateFormat(sampleRate audio.SampleRate, frameSize uint) error {
	rateOK := false
	for _, supported := range SupportedSampleRates {
		if supported == sampleRate {
			rateOK = true
			break
		}
	}
	if !rateOK {
		return fmt.Errorf("sample rate %d is not supported, expected one of %v", sampleRate, SupportedSampleRates)
	}

	var validSizes []uint
	for _, ms := range SupportedFrameDurationsMS {
		size := uint(sampleRate) * ms / 1000
		if size == frameSize {
			return nil
		}
		validSizes = append(validSizes, size)
	}
	return fmt.Errorf("frame size %d is not supported at %dHz, expected one of %v", frameSize, sampleRate, validSizes)
}

// Close frees the detector.
func (c *Classifier) Close() error {
	c.Locker.Lock()
	defer c.Locker.Unlock()
	if c.Detector == nil {
		return fmt.Errorf("double-close attempt")
	}
	c.Detector.Close()
	c.Detector = nil
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

	c.Locker.Lock()
	defer c.Locker.Unlock()
	if c.Detector == nil {
		return false, fmt.Errorf("%w: the classifier is closed", classifier.ErrInvalidFrame)
	}
	isVoice, err := c.Detector.Process(frame)
	if err != nil {
		return false, fmt.Errorf("%w: %w", classifier.ErrInvalidFrame, err)
	}
	return isVoice, nil
}
