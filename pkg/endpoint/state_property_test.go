package endpoint

import (
	"testing"

	"pgregory.net/rapid"
)

func configGen() *rapid.Generator[Config] {
	return rapid.Custom(func(t *rapid.T) Config {
		silenceThreshold := rapid.UintRange(1, 40).Draw(t, "silenceThreshold")
		return Config{
			InitialSilenceThreshold:  rapid.UintRange(0, 40).Draw(t, "initialSilenceThreshold"),
			SilenceDebounceThreshold: rapid.UintRange(1, silenceThreshold).Draw(t, "silenceDebounceThreshold"),
			SilenceThreshold:         silenceThreshold,
			EndConfirmationThreshold: rapid.UintRange(1, 4).Draw(t, "endConfirmationThreshold"),
		}
	})
}

func classificationGen() *rapid.Generator[Classification] {
	return rapid.SampledFrom([]Classification{voice, silence, invalid})
}

// silenceRunGen generates frames containing exactly n silent frames,
// possibly interleaved with invalid ones.
func silenceRunGen(n uint) *rapid.Generator[[]Classification] {
	return rapid.Custom(func(t *rapid.T) []Classification {
		var r []Classification
		for i := uint(0); i < n; i++ {
			if rapid.Bool().Draw(t, "invalid") {
				r = append(r, invalid)
			}
			r = append(r, silence)
		}
		return r
	})
}

func TestPropertyShortPausesNeverFinish(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := configGen().Draw(t, "cfg")

		// any amount of leading silence, then bursts separated by pauses
		// shorter than the silence threshold
		seq := silenceRunGen(rapid.UintRange(0, 200).Draw(t, "leading")).Draw(t, "leadingSeq")
		bursts := rapid.IntRange(1, 20).Draw(t, "bursts")
		for i := 0; i < bursts; i++ {
			seq = append(seq, repeat(voice, rapid.IntRange(1, 5).Draw(t, "voiceLen"))...)
			pause := rapid.UintRange(0, cfg.SilenceThreshold-1).Draw(t, "pause")
			seq = append(seq, silenceRunGen(pause).Draw(t, "pauseSeq")...)
		}

		m := NewMachine(cfg)
		for idx, c := range seq {
			if m.Feed(c) == DecisionFinish {
				t.Fatalf("finished at frame %d", idx+1)
			}
		}
		if m.State().EndConfirmations != 0 {
			t.Fatalf("unexpected confirmations: %d", m.State().EndConfirmations)
		}
	})
}

func TestPropertyPreActivationSilenceDoesNotCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := configGen().Draw(t, "cfg")
		if cfg.InitialSilenceThreshold == 0 {
			cfg.InitialSilenceThreshold = 1
		}
		m := NewMachine(cfg)
		for i := uint(0); i+1 < cfg.InitialSilenceThreshold; i++ {
			m.Feed(silence)
		}
		if m.State().SilenceRun != 0 {
			t.Fatalf("silence run advanced during the grace period: %d", m.State().SilenceRun)
		}
		m.Feed(voice)

		k := rapid.UintRange(0, cfg.SilenceThreshold-1).Draw(t, "k")
		for i := uint(0); i < k; i++ {
			m.Feed(silence)
		}
		if m.State().SilenceRun != k {
			t.Fatalf("silence run is %d, expected %d", m.State().SilenceRun, k)
		}
	})
}

func TestPropertyInvalidNeverChangesState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := configGen().Draw(t, "cfg")
		prefix := rapid.SliceOf(classificationGen()).Draw(t, "prefix")
		m := NewMachine(cfg)
		for _, c := range prefix {
			m.Feed(c)
		}
		before := m.State()
		m.Feed(invalid)
		if m.State() != before {
			t.Fatalf("state changed on an invalid frame: %+v -> %+v", before, m.State())
		}
	})
}

func TestPropertyFinishesAtMostOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := configGen().Draw(t, "cfg")
		seq := rapid.SliceOfN(classificationGen(), 0, 2000).Draw(t, "seq")
		count, _ := countFinishTransitions(cfg, seq)
		if count > 1 {
			t.Fatalf("finished %d times", count)
		}

		var s State
		for _, c := range seq {
			s, _ = Transition(cfg, s, c)
			if s.EndConfirmations > cfg.EndConfirmationThreshold {
				t.Fatalf("confirmations %d exceed the threshold %d", s.EndConfirmations, cfg.EndConfirmationThreshold)
			}
		}
	})
}

func TestPropertyFinishRequiresConfirmedBursts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := configGen().Draw(t, "cfg")
		bursts := rapid.UintRange(1, 5).Draw(t, "bursts")

		var seq []Classification
		for i := uint(0); i < bursts; i++ {
			seq = append(seq, repeat(voice, rapid.IntRange(1, 5).Draw(t, "voiceLen"))...)
			seq = append(seq, silenceRunGen(cfg.SilenceThreshold).Draw(t, "pauseSeq")...)
		}
		count, _ := countFinishTransitions(cfg, seq)
		expected := 0
		if bursts >= cfg.EndConfirmationThreshold {
			expected = 1
		}
		if count != expected {
			t.Fatalf("%d bursts with threshold %d: finished %d times", bursts, cfg.EndConfirmationThreshold, count)
		}
	})
}
