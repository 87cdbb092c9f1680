package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/asreadln/pkg/audio"
	"github.com/xaionaro-go/asreadln/pkg/classifier"
	"github.com/xaionaro-go/asreadln/pkg/endpoint"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, endpoint.DefaultConfig(), cfg.Endpoint)
	assert.Equal(t, classifier.ModeVeryAggressive, cfg.Classifier.Mode)
	assert.Equal(t, uint(160), cfg.Classifier.FrameSize)
	assert.Equal(t, "en", cfg.Transcriber.Language)
	assert.Equal(t, "models/ggml-base.en.bin", cfg.Transcriber.Model)
}

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
endpoint:
  silence_threshold: 30
classifier:
  mode: aggressive
input:
  path: in.raw
  format: f32le
  channels: 2
`))
	require.NoError(t, err)
	assert.Equal(t, uint(30), cfg.Endpoint.SilenceThreshold)
	assert.Equal(t, uint(endpoint.DefaultInitialSilenceThreshold), cfg.Endpoint.InitialSilenceThreshold)
	assert.Equal(t, classifier.ModeAggressive, cfg.Classifier.Mode)
	assert.Equal(t, audio.PCMFormatFloat32LE, cfg.Input.Format)
	assert.Equal(t, audio.Channel(2), cfg.Input.Channels)
	assert.Equal(t, "in.raw", cfg.Input.Path)
	require.NoError(t, cfg.Validate())

	cfg, err = Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Decode(strings.NewReader("no_such_key: 1\n"))
	require.Error(t, err)

	_, err = Decode(strings.NewReader("classifier:\n  mode: loud\n"))
	require.Error(t, err)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Endpoint.SilenceThreshold = 0
	cfg.Classifier.FrameSize = 123
	cfg.Transcriber.Kind = "nope"
	cfg.Transcriber.Language = ""

	err := cfg.Validate()
	require.Error(t, err)
	for _, substr := range []string{"silence threshold", "frame size 123", "unknown transcriber", "language"} {
		assert.Contains(t, err.Error(), substr)
	}
}

func TestValidateWhisperSampleRate(t *testing.T) {
	cfg := Default()
	cfg.Classifier.SampleRate = 8000
	cfg.Classifier.FrameSize = 80
	require.Error(t, cfg.Validate())

	cfg.Transcriber.Kind = TranscriberDummy
	require.NoError(t, cfg.Validate())
}

func TestValidateDebounceAboveSilenceIsAccepted(t *testing.T) {
	cfg := Default()
	cfg.Endpoint.SilenceDebounceThreshold = 100
	require.NoError(t, cfg.Validate())
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asreadln.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint:
  silence_threshold: 30
  finished_threshold_is_not_a_key: 1
`), 0o644))

	fs := pflag.NewFlagSet("unit-test", pflag.ContinueOnError)
	flags := NewFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path}))
	_, err := flags.Load()
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`
endpoint:
  silence_threshold: 30
  initial_silence_threshold: 10
transcriber:
  kind: dummy
`), 0o644))

	fs = pflag.NewFlagSet("unit-test", pflag.ContinueOnError)
	flags = NewFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--config", path,
		"--initial-silence-threshold", "20",
		"--finished-threshold", "3",
		"--vad-mode", "Quality",
		"--input", "mic",
	}))
	cfg, err := flags.Load()
	require.NoError(t, err)

	// from the file, not reset by the unset flag's default
	assert.Equal(t, uint(30), cfg.Endpoint.SilenceThreshold)
	assert.Equal(t, TranscriberDummy, cfg.Transcriber.Kind)
	// from the flags
	assert.Equal(t, uint(20), cfg.Endpoint.InitialSilenceThreshold)
	assert.Equal(t, uint(3), cfg.Endpoint.EndConfirmationThreshold)
	assert.Equal(t, classifier.ModeQuality, cfg.Classifier.Mode)
	assert.Equal(t, "mic", cfg.Input.Path)
}

func TestFlagsInvalid(t *testing.T) {
	fs := pflag.NewFlagSet("unit-test", pflag.ContinueOnError)
	flags := NewFlags(fs)
	require.NoError(t, fs.Parse([]string{"--silence-threshold", "0"}))
	_, err := flags.Load()
	require.Error(t, err)

	fs = pflag.NewFlagSet("unit-test", pflag.ContinueOnError)
	NewFlags(fs)
	require.Error(t, fs.Parse([]string{"--input-format", "mp3"}))
}

func TestValidateJoinWithTimestamps(t *testing.T) {
	cfg := Default()
	cfg.Transcriber.JoinSegments = true
	require.NoError(t, cfg.Validate())
	cfg.Transcriber.PrintTimestamps = true
	require.Error(t, cfg.Validate())
}
