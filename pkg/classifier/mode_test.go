package classifier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for input, expected := range map[string]Mode{
		"quality":         ModeQuality,
		"LowBitrate":      ModeLowBitrate,
		"low-bitrate":     ModeLowBitrate,
		"Aggressive":      ModeAggressive,
		"VeryAggressive":  ModeVeryAggressive,
		"very-aggressive": ModeVeryAggressive,
		"3":               ModeVeryAggressive,
	} {
		m, err := ParseMode(input)
		require.NoError(t, err, input)
		require.Equal(t, expected, m, input)
	}

	_, err := ParseMode("paranoid")
	require.Error(t, err)
}

func TestModeText(t *testing.T) {
	b, err := ModeAggressive.MarshalText()
	require.NoError(t, err)

	var m Mode
	require.NoError(t, m.UnmarshalText(b))
	require.Equal(t, ModeAggressive, m)
}
