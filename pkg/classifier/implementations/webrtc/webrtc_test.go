package webrtc

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/asreadln/pkg/classifier"
)

func TestValidateFormat(t *testing.T) {
	require.NoError(t, ValidateFormat(16000, 160))
	require.NoError(t, ValidateFormat(16000, 480))
	require.NoError(t, ValidateFormat(8000, 80))
	require.Error(t, ValidateFormat(16000, 100))
	require.Error(t, ValidateFormat(44100, 441))
}

func TestClassifier(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, classifier.ModeVeryAggressive, 16000, 160)
	require.NoError(t, err)
	defer c.Close()

	t.Run("silence", func(t *testing.T) {
		isVoice, err := c.IsVoice(ctx, make([]int16, 160))
		require.NoError(t, err)
		require.False(t, isVoice)
	})

	t.Run("wrong_size", func(t *testing.T) {
		_, err := c.IsVoice(ctx, make([]int16, 159))
		require.ErrorIs(t, err, classifier.ErrInvalidFrame)
	})

	t.Run("tone_does_not_fail", func(t *testing.T) {
		frame := make([]int16, 160)
		for i := range frame {
			frame[i] = int16(8000 * math.Sin(2*math.Pi*220*float64(i)/16000))
		}
		_, err := c.IsVoice(ctx, frame)
		require.NoError(t, err)
	})
}

func TestNewRejectsUnsupportedFormat(t *testing.T) {
	_, err := New(context.Background(), classifier.ModeQuality, 16000, 161)
	require.Error(t, err)
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, classifier.ModeAggressive, 16000, 160)
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.Nil(t, c.Detector)

	require.NotPanics(t, func() {
		require.Error(t, c.Close())
	})

	_, err = c.IsVoice(ctx, make([]int16, 160))
	require.ErrorIs(t, err, classifier.ErrInvalidFrame)
}
