// Package config collects every setting of asreadln: defaults, an optional
// YAML file and command-line overrides.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/asreadln/pkg/audio"
	"github.com/xaionaro-go/asreadln/pkg/classifier"
	"github.com/xaionaro-go/asreadln/pkg/classifier/implementations/webrtc"
	"github.com/xaionaro-go/asreadln/pkg/endpoint"
	"github.com/xaionaro-go/asreadln/pkg/framesource"
	"github.com/xaionaro-go/asreadln/pkg/transcriber/implementations/whisper"
	"gopkg.in/yaml.v3"
)

type ClassifierKind string

const (
	ClassifierWebRTC   = ClassifierKind("webrtc")
	ClassifierSpectral = ClassifierKind("spectral")
)

type TranscriberKind string

const (
	TranscriberWhisper = TranscriberKind("whisper")
	TranscriberDummy   = TranscriberKind("dummy")
)

const (
	DefaultSampleRate = audio.SampleRate(16000)
	DefaultFrameSize  = 160
	DefaultLanguage   = "en"
)

type Classifier struct {
	Kind       ClassifierKind   `yaml:"kind"`
	Mode       classifier.Mode  `yaml:"mode"`
	SampleRate audio.SampleRate `yaml:"sample_rate"`
	FrameSize  uint             `yaml:"frame_size"`
}

type Transcriber struct {
	Kind            TranscriberKind `yaml:"kind"`
	Model           string          `yaml:"model"`
	Language        string          `yaml:"language"`
	Threads         uint            `yaml:"threads"`
	PrintTimestamps bool            `yaml:"print_timestamps"`
	JoinSegments    bool            `yaml:"join_segments"`
}

type Config struct {
	Endpoint    endpoint.Config   `yaml:"endpoint"`
	Classifier  Classifier        `yaml:"classifier"`
	Transcriber Transcriber       `yaml:"transcriber"`
	Input       framesource.Input `yaml:"input"`
	Replay      bool              `yaml:"replay"`
}

func Default() Config {
	return Config{
		Endpoint: endpoint.DefaultConfig(),
		Classifier: Classifier{
			Kind:       ClassifierWebRTC,
			Mode:       classifier.ModeVeryAggressive,
			SampleRate: DefaultSampleRate,
			FrameSize:  DefaultFrameSize,
		},
		Transcriber: Transcriber{
			Kind:     TranscriberWhisper,
			Model:    whisper.DefaultModelPath,
			Language: DefaultLanguage,
		},
		Input: framesource.Input{
			Path: framesource.InputStdin,
		},
	}
}

// LoadFile returns Default overridden by the YAML file at path. Unknown keys
// are rejected.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to open config '%s': %w", path, err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("unable to parse config '%s': %w", path, err)
	}
	return cfg, nil
}

// Decode returns Default overridden by the YAML document from r.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("unable to decode YAML: %w", err)
	}
	return cfg, nil
}

// Validate returns every problem found, not only the first one.
func (cfg Config) Validate() error {
	var mErr *multierror.Error
	if err := cfg.Endpoint.Validate(); err != nil {
		mErr = multierror.Append(mErr, err)
	}

	if cfg.Classifier.Mode < classifier.ModeQuality || cfg.Classifier.Mode >= classifier.EndOfMode {
		mErr = multierror.Append(mErr, fmt.Errorf("unknown VAD mode %s", cfg.Classifier.Mode))
	}
	if cfg.Classifier.FrameSize == 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("frame size must be positive"))
	}
	switch cfg.Classifier.Kind {
	case ClassifierWebRTC:
		if err := webrtc.ValidateFormat(cfg.Classifier.SampleRate, cfg.Classifier.FrameSize); err != nil {
			mErr = multierror.Append(mErr, err)
		}
	case ClassifierSpectral:
		if cfg.Classifier.SampleRate == 0 {
			mErr = multierror.Append(mErr, fmt.Errorf("sample rate must be positive"))
		}
	default:
		mErr = multierror.Append(mErr, fmt.Errorf("unknown classifier '%s'", cfg.Classifier.Kind))
	}

	switch cfg.Transcriber.Kind {
	case TranscriberWhisper:
		if cfg.Transcriber.Model == "" {
			mErr = multierror.Append(mErr, fmt.Errorf("whisper model path is not set"))
		}
		if cfg.Classifier.SampleRate != whisper.SampleRate {
			mErr = multierror.Append(mErr, fmt.Errorf("whisper expects %dHz audio, but the capture sample rate is %d", whisper.SampleRate, cfg.Classifier.SampleRate))
		}
	case TranscriberDummy:
	default:
		mErr = multierror.Append(mErr, fmt.Errorf("unknown transcriber '%s'", cfg.Transcriber.Kind))
	}
	if cfg.Transcriber.PrintTimestamps && cfg.Transcriber.JoinSegments {
		mErr = multierror.Append(mErr, fmt.Errorf("timestamps cannot be printed when the segments are joined into a single line"))
	}
	if cfg.Transcriber.Language == "" {
		mErr = multierror.Append(mErr, fmt.Errorf("language is not set"))
	}

	if cfg.Input.Format != audio.PCMFormatUndefined && cfg.Input.Format.Size() == 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("unsupported input format %s", cfg.Input.Format))
	}
	return mErr.ErrorOrNil()
}

// LogWarnings reports settings that are accepted but probably not intended.
func (cfg Config) LogWarnings(ctx context.Context) {
	if cfg.Endpoint.SilenceDebounceThreshold > cfg.Endpoint.SilenceThreshold {
		logger.Warnf(ctx, "silence debounce threshold %d exceeds the silence threshold %d: the 'possibly ending' phase is never reached",
			cfg.Endpoint.SilenceDebounceThreshold, cfg.Endpoint.SilenceThreshold)
	}
	if cfg.Replay && cfg.Input.Path == framesource.InputMicrophone {
		logger.Debugf(ctx, "replaying a microphone capture, make sure the speakers do not feed back")
	}
}
