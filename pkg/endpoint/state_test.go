package endpoint

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(c Classification, n int) []Classification {
	r := make([]Classification, n)
	for i := range r {
		r[i] = c
	}
	return r
}

func concat(parts ...[]Classification) []Classification {
	var r []Classification
	for _, part := range parts {
		r = append(r, part...)
	}
	return r
}

// feedAll returns the 1-based indexes of frames that produced DecisionFinish.
func feedAll(m *Machine, seq []Classification) []int {
	var finishedAt []int
	for idx, c := range seq {
		if m.Feed(c) == DecisionFinish {
			finishedAt = append(finishedAt, idx+1)
		}
	}
	return finishedAt
}

func countFinishTransitions(cfg Config, seq []Classification) (int, int) {
	var (
		s          State
		d          Decision
		count      int
		firstFrame int
	)
	for idx, c := range seq {
		wasFinished := s.Finished
		s, d = Transition(cfg, s, c)
		if d == DecisionFinish && !wasFinished {
			count++
			if firstFrame == 0 {
				firstFrame = idx + 1
			}
		}
	}
	return count, firstFrame
}

var (
	voice   = ClassificationVoice
	silence = ClassificationSilence
	invalid = ClassificationInvalid
)

func TestTransitionVoice(t *testing.T) {
	cfg := DefaultConfig()
	for _, phase := range []Phase{PhaseAwaitingSpeech, PhaseListening, PhasePossiblyEnding} {
		t.Run(phase.String(), func(t *testing.T) {
			s, d := Transition(cfg, State{
				Phase:                   phase,
				SilenceRun:              42,
				PreActivationSilenceRun: 7,
				EndConfirmations:        1,
			}, voice)
			assert.Equal(t, DecisionListen, d)
			assert.Equal(t, State{Phase: PhaseListening, EndConfirmations: 1}, s)
		})
	}
}

func TestTransitionInvalidIsNoop(t *testing.T) {
	cfg := DefaultConfig()
	for _, s := range []State{
		{},
		{Phase: PhaseListening, SilenceRun: 3},
		{Phase: PhasePossiblyEnding, SilenceRun: 69, EndConfirmations: 1},
		{Phase: PhaseAwaitingSpeech, PreActivationSilenceRun: 49},
	} {
		next, d := Transition(cfg, s, invalid)
		require.Equal(t, s, next, spew.Sdump(s))
		require.Equal(t, decisionForPhase(s.Phase), d)
	}
}

func TestPreActivationGracePeriod(t *testing.T) {
	cfg := DefaultConfig()
	m := NewMachine(cfg)

	require.Empty(t, feedAll(m, repeat(silence, int(cfg.InitialSilenceThreshold)-1)))
	require.Equal(t, State{PreActivationSilenceRun: cfg.InitialSilenceThreshold - 1}, m.State())

	m.Feed(voice)
	require.Equal(t, uint(0), m.State().SilenceRun)
	require.Equal(t, uint(0), m.State().PreActivationSilenceRun)

	feedAll(m, repeat(silence, 3))
	require.Equal(t, uint(3), m.State().SilenceRun)
	require.Equal(t, uint(0), m.State().PreActivationSilenceRun)
}

func TestLeadingSilenceNeverConfirms(t *testing.T) {
	cfg := DefaultConfig()
	m := NewMachine(cfg)

	require.Empty(t, feedAll(m, repeat(silence, 1000)))
	s := m.State()
	require.Equal(t, PhaseAwaitingSpeech, s.Phase)
	require.Equal(t, uint(0), s.EndConfirmations)
	require.Equal(t, uint(1000), s.PreActivationSilenceRun)
	require.Equal(t, uint(1000-cfg.InitialSilenceThreshold+1), s.SilenceRun)
}

func TestDebounceAndConfirmation(t *testing.T) {
	cfg := Config{
		InitialSilenceThreshold:  50,
		SilenceDebounceThreshold: 5,
		SilenceThreshold:         70,
		EndConfirmationThreshold: 2,
	}
	m := NewMachine(cfg)
	m.Feed(voice)
	require.Equal(t, PhaseListening, m.Phase())

	feedAll(m, repeat(silence, 4))
	require.Equal(t, PhaseListening, m.Phase())
	require.Equal(t, DecisionListen, m.Feed(silence))
	require.Equal(t, PhasePossiblyEnding, m.Phase())

	feedAll(m, repeat(silence, 64))
	require.Equal(t, PhasePossiblyEnding, m.Phase())
	require.Equal(t, uint(0), m.State().EndConfirmations)

	require.Equal(t, DecisionWait, m.Feed(silence))
	require.Equal(t, PhaseAwaitingSpeech, m.Phase())
	require.Equal(t, uint(1), m.State().EndConfirmations)
	require.False(t, m.Finished())
}

func TestVoiceWhileListeningIsIdempotent(t *testing.T) {
	m := NewMachine(DefaultConfig())
	m.Feed(voice)
	feedAll(m, repeat(silence, 3))
	require.Equal(t, PhaseListening, m.Phase())
	require.Equal(t, uint(3), m.State().SilenceRun)

	require.Equal(t, DecisionListen, m.Feed(voice))
	require.Equal(t, PhaseListening, m.Phase())
	require.Equal(t, uint(0), m.State().SilenceRun)
}

func TestPossiblyEndingRecoversOnVoice(t *testing.T) {
	m := NewMachine(DefaultConfig())
	m.Feed(voice)
	feedAll(m, repeat(silence, 10))
	require.Equal(t, PhasePossiblyEnding, m.Phase())
	m.Feed(voice)
	require.Equal(t, PhaseListening, m.Phase())
	require.Equal(t, uint(0), m.State().EndConfirmations)
}

func TestInvalidFramesDoNotBreakSilenceRun(t *testing.T) {
	cfg := DefaultConfig()
	m := NewMachine(cfg)
	m.Feed(voice)
	for i := 0; i < int(cfg.SilenceThreshold)-1; i++ {
		m.Feed(silence)
		m.Feed(invalid)
	}
	require.Equal(t, cfg.SilenceThreshold-1, m.State().SilenceRun)
	m.Feed(silence)
	require.Equal(t, uint(1), m.State().EndConfirmations)
}

func TestSingleBurstDoesNotFinish(t *testing.T) {
	cfg := DefaultConfig()
	m := NewMachine(cfg)
	finishedAt := feedAll(m, concat(
		repeat(voice, 10),
		repeat(silence, 500),
	))
	require.Empty(t, finishedAt)
	require.Equal(t, uint(1), m.State().EndConfirmations)
}

func TestEndToEndDefaults(t *testing.T) {
	cfg := DefaultConfig()
	seq := concat(
		repeat(silence, 50),
		repeat(voice, 10),
		repeat(silence, 70),
		repeat(voice, 10),
		repeat(silence, 70),
	)
	require.Len(t, seq, 210)

	m := NewMachine(cfg)
	var phases []Phase
	for idx, c := range seq {
		d := m.Feed(c)
		phases = append(phases, m.Phase())
		if idx+1 < len(seq) {
			require.NotEqual(t, DecisionFinish, d, "frame %d", idx+1)
		} else {
			require.Equal(t, DecisionFinish, d)
		}
		switch idx + 1 {
		case 50:
			require.Equal(t, PhaseAwaitingSpeech, m.Phase())
		case 60:
			require.Equal(t, PhaseListening, m.Phase())
		case 130:
			require.Equal(t, PhaseAwaitingSpeech, m.Phase())
			require.Equal(t, uint(1), m.State().EndConfirmations)
		case 140:
			require.Equal(t, PhaseListening, m.Phase())
		}
	}
	require.True(t, m.Finished())
	require.Equal(t, uint(2), m.State().EndConfirmations)
	require.Equal(t, PhaseAwaitingSpeech, phases[len(phases)-1])

	count, at := countFinishTransitions(cfg, seq)
	require.Equal(t, 1, count)
	require.Equal(t, 210, at)
}

func TestFinishedIsAbsorbing(t *testing.T) {
	cfg := Config{
		InitialSilenceThreshold:  0,
		SilenceDebounceThreshold: 1,
		SilenceThreshold:         2,
		EndConfirmationThreshold: 1,
	}
	m := NewMachine(cfg)
	require.Equal(t, []int{3}, feedAll(m, concat(repeat(voice, 1), repeat(silence, 2))))
	finished := m.State()
	for _, c := range []Classification{voice, silence, invalid} {
		require.Equal(t, DecisionFinish, m.Feed(c))
		require.Equal(t, finished, m.State())
	}

	m.Reset()
	require.Equal(t, State{}, m.State())
	require.Equal(t, DecisionListen, m.Feed(voice))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	err := Config{}.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "silence threshold")
	require.Contains(t, err.Error(), "end confirmation threshold")
}

func TestClassificationFromResult(t *testing.T) {
	assert.Equal(t, ClassificationVoice, ClassificationFromResult(true, nil))
	assert.Equal(t, ClassificationSilence, ClassificationFromResult(false, nil))
	assert.Equal(t, ClassificationInvalid, ClassificationFromResult(true, assert.AnError))
}

func BenchmarkMachineFeed(b *testing.B) {
	seq := concat(
		repeat(silence, 50),
		repeat(voice, 10),
		repeat(silence, 30),
		repeat(invalid, 1),
		repeat(voice, 10),
	)
	m := NewMachine(DefaultConfig())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Feed(seq[i%len(seq)])
	}
}
