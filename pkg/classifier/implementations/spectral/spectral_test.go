package spectral

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/asreadln/pkg/classifier"
)

func tone(freq float64, amplitude float64, n int, sampleRate float64) []int16 {
	frame := make([]int16, n)
	for i := range frame {
		frame[i] = int16(amplitude * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/sampleRate))
	}
	return frame
}

func TestAnalyze(t *testing.T) {
	level, ratio := Analyze(make([]int16, 160), 16000)
	assert.True(t, math.IsInf(level, -1))
	assert.Equal(t, 0.0, ratio)

	level, ratio = Analyze(tone(1000, 0.5, 160, 16000), 16000)
	assert.InDelta(t, -9, level, 0.5)
	assert.Greater(t, ratio, 0.9)

	_, ratio = Analyze(tone(6000, 0.5, 160, 16000), 16000)
	assert.Less(t, ratio, 0.2)
}

func TestClassifier(t *testing.T) {
	ctx := context.Background()
	c, err := New(classifier.ModeAggressive, 16000, 160)
	require.NoError(t, err)

	for name, tc := range map[string]struct {
		frame    []int16
		expected bool
	}{
		"silence":         {make([]int16, 160), false},
		"speech_band":     {tone(1000, 0.3, 160, 16000), true},
		"too_quiet":       {tone(1000, 0.001, 160, 16000), false},
		"high_pitch_hiss": {tone(6000, 0.3, 160, 16000), false},
	} {
		t.Run(name, func(t *testing.T) {
			isVoice, err := c.IsVoice(ctx, tc.frame)
			require.NoError(t, err)
			require.Equal(t, tc.expected, isVoice)
		})
	}

	_, err = c.IsVoice(ctx, make([]int16, 10))
	require.ErrorIs(t, err, classifier.ErrInvalidFrame)
}

func TestNewValidation(t *testing.T) {
	_, err := New(classifier.Mode(42), 16000, 160)
	require.Error(t, err)
	_, err = New(classifier.ModeQuality, 4000, 160)
	require.Error(t, err)
}
