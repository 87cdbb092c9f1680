package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScript(t *testing.T) {
	ctx := context.Background()
	c := NewScript(16000, 4, ResultVoice, ResultInvalid)
	frame := make([]int16, 4)

	isVoice, err := c.IsVoice(ctx, frame)
	require.NoError(t, err)
	require.True(t, isVoice)

	_, err = c.IsVoice(ctx, frame)
	require.ErrorIs(t, err, ErrInvalidFrame)

	isVoice, err = c.IsVoice(ctx, frame)
	require.NoError(t, err)
	require.False(t, isVoice)
	require.Equal(t, 3, c.Calls())

	_, err = c.IsVoice(ctx, frame[:3])
	require.ErrorIs(t, err, ErrInvalidFrame)
	require.Equal(t, 3, c.Calls())
}

func TestDummyChecksFrameSize(t *testing.T) {
	c := NewDummy(16000, 160, true)
	_, err := c.IsVoice(context.Background(), make([]int16, 161))
	require.ErrorIs(t, err, ErrInvalidFrame)

	isVoice, err := c.IsVoice(context.Background(), make([]int16, 160))
	require.NoError(t, err)
	require.True(t, isVoice)
}
