package endpoint

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

const (
	DefaultInitialSilenceThreshold  = 50
	DefaultSilenceDebounceThreshold = 5
	DefaultSilenceThreshold         = 70
	DefaultEndConfirmationThreshold = 2
)

// Config holds the thresholds of the state machine. All of them are counted
// in frames, except EndConfirmationThreshold which is counted in concluded
// speech bursts.
type Config struct {
	// InitialSilenceThreshold is the amount of silent frames tolerated before
	// the first speech, before they start counting towards SilenceThreshold.
	InitialSilenceThreshold uint `yaml:"initial_silence_threshold"`

	// SilenceDebounceThreshold is the amount of silent frames after which
	// PhaseListening is downgraded to PhasePossiblyEnding.
	SilenceDebounceThreshold uint `yaml:"silence_debounce_threshold"`

	// SilenceThreshold is the amount of silent frames since the last voice
	// frame that concludes a speech burst.
	SilenceThreshold uint `yaml:"silence_threshold"`

	// EndConfirmationThreshold is the amount of concluded speech bursts that
	// finishes the session.
	EndConfirmationThreshold uint `yaml:"end_confirmation_threshold"`
}

func DefaultConfig() Config {
	return Config{
		InitialSilenceThreshold:  DefaultInitialSilenceThreshold,
		SilenceDebounceThreshold: DefaultSilenceDebounceThreshold,
		SilenceThreshold:         DefaultSilenceThreshold,
		EndConfirmationThreshold: DefaultEndConfirmationThreshold,
	}
}

// Validate rejects configurations under which the session could never
// finish or would finish without hearing any speech.
func (cfg Config) Validate() error {
	var mErr *multierror.Error
	if cfg.SilenceThreshold == 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("silence threshold must be positive"))
	}
	if cfg.EndConfirmationThreshold == 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("end confirmation threshold must be positive"))
	}
	return mErr.ErrorOrNil()
}
