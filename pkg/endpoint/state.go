package endpoint

// State is the complete state of the machine. It is a plain value: copying
// it forks the machine.
type State struct {
	Phase Phase

	// SilenceRun is the amount of consecutive silent frames since the last
	// voice frame, not counting frames absorbed by the initial grace period.
	SilenceRun uint

	// PreActivationSilenceRun is the amount of consecutive silent frames
	// seen in PhaseAwaitingSpeech.
	PreActivationSilenceRun uint

	// EndConfirmations is the amount of speech bursts concluded by silence.
	EndConfirmations uint

	// Finished is set once DecisionFinish was emitted.
	Finished bool
}

// Transition applies a single classification and returns the new state and
// the decision for this frame. A finished state is absorbing.
func Transition(cfg Config, s State, c Classification) (State, Decision) {
	if s.Finished {
		return s, DecisionFinish
	}

	switch c {
	case ClassificationVoice:
		s.SilenceRun = 0
		s.PreActivationSilenceRun = 0
		s.Phase = PhaseListening
		return s, DecisionListen

	case ClassificationSilence:
		if s.Phase == PhaseAwaitingSpeech {
			s.PreActivationSilenceRun++
			if s.PreActivationSilenceRun < cfg.InitialSilenceThreshold {
				return s, DecisionWait
			}
		}

		s.SilenceRun++
		switch {
		case s.SilenceRun >= cfg.SilenceThreshold:
			if s.Phase != PhaseAwaitingSpeech {
				s.EndConfirmations++
				if s.EndConfirmations >= cfg.EndConfirmationThreshold {
					s.Finished = true
				}
			}
			s.Phase = PhaseAwaitingSpeech
			if s.Finished {
				return s, DecisionFinish
			}
		case s.SilenceRun >= cfg.SilenceDebounceThreshold && s.Phase == PhaseListening:
			s.Phase = PhasePossiblyEnding
		}
		return s, decisionForPhase(s.Phase)

	default:
		return s, decisionForPhase(s.Phase)
	}
}
