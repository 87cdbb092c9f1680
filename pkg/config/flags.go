package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flags binds the settings to command-line flags. Only flags the user set
// explicitly override the configuration file.
type Flags struct {
	FlagSet    *pflag.FlagSet
	ConfigPath string

	values   Config
	appliers []flagApplier
}

type flagApplier struct {
	Name  string
	Apply func(dst *Config, src *Config)
}

func NewFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{
		FlagSet: fs,
		values:  Default(),
	}
	v := &f.values

	fs.StringVar(&f.ConfigPath, "config", "", "path to a YAML configuration file")

	fs.Var(&v.Classifier.Mode, "vad-mode", "voice activity detector aggressiveness: quality, low-bitrate, aggressive, very-aggressive")
	f.bind("vad-mode", func(dst, src *Config) { dst.Classifier.Mode = src.Classifier.Mode })
	fs.UintVar(&v.Classifier.FrameSize, "frame-size", v.Classifier.FrameSize, "samples per frame")
	f.bind("frame-size", func(dst, src *Config) { dst.Classifier.FrameSize = src.Classifier.FrameSize })
	fs.Uint32Var((*uint32)(&v.Classifier.SampleRate), "sample-rate", uint32(v.Classifier.SampleRate), "capture sample rate")
	f.bind("sample-rate", func(dst, src *Config) { dst.Classifier.SampleRate = src.Classifier.SampleRate })
	fs.StringVar((*string)(&v.Classifier.Kind), "classifier", string(v.Classifier.Kind), "voice classifier: webrtc, spectral")
	f.bind("classifier", func(dst, src *Config) { dst.Classifier.Kind = src.Classifier.Kind })

	fs.UintVar(&v.Endpoint.SilenceThreshold, "silence-threshold", v.Endpoint.SilenceThreshold, "silent frames that conclude a speech burst")
	f.bind("silence-threshold", func(dst, src *Config) { dst.Endpoint.SilenceThreshold = src.Endpoint.SilenceThreshold })
	fs.UintVar(&v.Endpoint.SilenceDebounceThreshold, "silence-debounce-threshold", v.Endpoint.SilenceDebounceThreshold, "silent frames after which speech is possibly ending")
	f.bind("silence-debounce-threshold", func(dst, src *Config) { dst.Endpoint.SilenceDebounceThreshold = src.Endpoint.SilenceDebounceThreshold })
	fs.UintVar(&v.Endpoint.InitialSilenceThreshold, "initial-silence-threshold", v.Endpoint.InitialSilenceThreshold, "silent frames ignored before any speech")
	f.bind("initial-silence-threshold", func(dst, src *Config) { dst.Endpoint.InitialSilenceThreshold = src.Endpoint.InitialSilenceThreshold })
	fs.UintVar(&v.Endpoint.EndConfirmationThreshold, "finished-threshold", v.Endpoint.EndConfirmationThreshold, "concluded speech bursts that finish the session")
	f.bind("finished-threshold", func(dst, src *Config) { dst.Endpoint.EndConfirmationThreshold = src.Endpoint.EndConfirmationThreshold })

	fs.StringVar((*string)(&v.Transcriber.Kind), "transcriber", string(v.Transcriber.Kind), "transcription engine: whisper, dummy")
	f.bind("transcriber", func(dst, src *Config) { dst.Transcriber.Kind = src.Transcriber.Kind })
	fs.StringVar(&v.Transcriber.Model, "model", v.Transcriber.Model, "path to the whisper model")
	f.bind("model", func(dst, src *Config) { dst.Transcriber.Model = src.Transcriber.Model })
	fs.StringVar(&v.Transcriber.Language, "language", v.Transcriber.Language, "spoken language")
	f.bind("language", func(dst, src *Config) { dst.Transcriber.Language = src.Transcriber.Language })
	fs.UintVar(&v.Transcriber.Threads, "threads", v.Transcriber.Threads, "transcription threads (0: engine default)")
	f.bind("threads", func(dst, src *Config) { dst.Transcriber.Threads = src.Transcriber.Threads })
	fs.BoolVar(&v.Transcriber.PrintTimestamps, "print-timestamps", v.Transcriber.PrintTimestamps, "prefix every line with the segment time range")
	f.bind("print-timestamps", func(dst, src *Config) { dst.Transcriber.PrintTimestamps = src.Transcriber.PrintTimestamps })
	fs.BoolVar(&v.Transcriber.JoinSegments, "join-segments", v.Transcriber.JoinSegments, "print the whole transcription as a single line")
	f.bind("join-segments", func(dst, src *Config) { dst.Transcriber.JoinSegments = src.Transcriber.JoinSegments })

	fs.StringVar(&v.Input.Path, "input", v.Input.Path, "'-' for stdin, 'mic' for the default recording device, or a file path (*.ogg is decoded as Vorbis)")
	f.bind("input", func(dst, src *Config) { dst.Input.Path = src.Input.Path })
	fs.Var(&v.Input.Format, "input-format", "PCM format of raw input (default s16le)")
	f.bind("input-format", func(dst, src *Config) { dst.Input.Format = src.Input.Format })
	fs.Uint32Var((*uint32)(&v.Input.SampleRate), "input-sample-rate", 0, "sample rate of raw input (default: the capture sample rate)")
	f.bind("input-sample-rate", func(dst, src *Config) { dst.Input.SampleRate = src.Input.SampleRate })
	fs.Uint32Var((*uint32)(&v.Input.Channels), "input-channels", 0, "channels of raw input (default 1)")
	f.bind("input-channels", func(dst, src *Config) { dst.Input.Channels = src.Input.Channels })

	fs.BoolVar(&v.Replay, "replay", v.Replay, "play the captured audio back before transcribing it")
	f.bind("replay", func(dst, src *Config) { dst.Replay = src.Replay })
	return f
}

func (f *Flags) bind(name string, apply func(dst, src *Config)) {
	f.appliers = append(f.appliers, flagApplier{Name: name, Apply: apply})
}

// Apply copies the explicitly set flags into cfg.
func (f *Flags) Apply(cfg *Config) {
	for _, a := range f.appliers {
		if f.FlagSet.Changed(a.Name) {
			a.Apply(cfg, &f.values)
		}
	}
}

// Load returns the final configuration: defaults, then the --config file,
// then the explicitly set flags. The result is validated.
func (f *Flags) Load() (Config, error) {
	cfg := Default()
	if f.ConfigPath != "" {
		var err error
		cfg, err = LoadFile(f.ConfigPath)
		if err != nil {
			return Config{}, err
		}
	}
	f.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
