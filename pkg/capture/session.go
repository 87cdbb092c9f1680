package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/asreadln/pkg/audio"
	"github.com/xaionaro-go/asreadln/pkg/classifier"
	"github.com/xaionaro-go/asreadln/pkg/endpoint"
	"github.com/xaionaro-go/asreadln/pkg/framesource"
)

const initialCapacity = 10 * time.Second

// Session owns the state machine and the buffer of a single capture. Frames
// are processed synchronously in the order: read, accumulate, classify,
// transition.
type Session struct {
	Source      framesource.Source
	Classifier  classifier.Classifier
	Machine     *endpoint.Machine
	Accumulator *Accumulator
}

func NewSession(
	src framesource.Source,
	cls classifier.Classifier,
	cfg endpoint.Config,
) *Session {
	return &Session{
		Source:      src,
		Classifier:  cls,
		Machine:     endpoint.NewMachine(cfg),
		Accumulator: NewAccumulator(uint(audio.EncodingPCM{SampleRate: cls.SampleRate()}.SamplesForDuration(initialCapacity))),
	}
}

// Run reads frames until the state machine finishes the session, the
// source is exhausted or ctx is cancelled; none of these is an error. Only
// a failure of the source itself is.
func (s *Session) Run(ctx context.Context) (_report Report, _err error) {
	logger.Tracef(ctx, "Run")
	defer func() { logger.Tracef(ctx, "/Run: %v %v", _report, _err) }()

	var report Report
	defer func() {
		report.BytesRead = s.Source.BytesRead()
		report.EndConfirmations = s.Machine.State().EndConfirmations
		report.Duration = audio.EncodingPCM{SampleRate: s.Classifier.SampleRate()}.DurationForSamples(uint64(s.Accumulator.Len()))
		_report = report
	}()

	frame := make([]int16, s.Classifier.FrameSize())
	for {
		if ctx.Err() != nil {
			report.EndReason = EndReasonCancelled
			return report, nil
		}

		err := s.Source.ReadFrame(frame)
		if errors.Is(err, framesource.ErrSourceExhausted) {
			report.EndReason = EndReasonExhausted
			if ctx.Err() != nil {
				report.EndReason = EndReasonCancelled
			}
			logger.Debugf(ctx, "the source is exhausted after %d frames", report.Frames)
			return report, nil
		}
		if err != nil {
			if ctx.Err() != nil {
				// the source was closed under a blocked read
				logger.Debugf(ctx, "read of frame #%d interrupted by cancellation: %v", report.Frames+1, err)
				report.EndReason = EndReasonCancelled
				return report, nil
			}
			return report, fmt.Errorf("unable to read frame #%d: %w", report.Frames+1, err)
		}
		report.Frames++

		s.Accumulator.Ingest(frame)

		isVoice, err := s.Classifier.IsVoice(ctx, frame)
		if err != nil {
			report.InvalidFrames++
			logger.Warnf(ctx, "unable to classify frame #%d: %v", report.Frames, err)
		}
		c := endpoint.ClassificationFromResult(isVoice, err)
		if c == endpoint.ClassificationVoice {
			report.VoiceFrames++
		}

		prevPhase := s.Machine.Phase()
		decision := s.Machine.Feed(c)
		logger.Tracef(ctx, "frame #%d: %s -> %s", report.Frames, c, decision)
		if phase := s.Machine.Phase(); phase != prevPhase {
			logger.Infof(ctx, "frame #%d: %s -> %s", report.Frames, prevPhase, phase)
		}

		if decision == endpoint.DecisionFinish {
			report.EndReason = EndReasonFinished
			logger.Infof(ctx, "finished at frame #%d", report.Frames)
			return report, nil
		}
	}
}

// Samples is the whole captured session, normalized to float32.
func (s *Session) Samples() []float32 {
	return s.Accumulator.Samples()
}

// Reset prepares the session for another capture from the same source.
func (s *Session) Reset() {
	s.Machine.Reset()
	s.Accumulator.Reset()
}
