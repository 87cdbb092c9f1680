package main

import (
	"context"
	"fmt"
	"io"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/asreadln/pkg/audio"
	"github.com/xaionaro-go/asreadln/pkg/capture"
	"github.com/xaionaro-go/asreadln/pkg/classifier"
	"github.com/xaionaro-go/asreadln/pkg/classifier/implementations/spectral"
	"github.com/xaionaro-go/asreadln/pkg/classifier/implementations/webrtc"
	"github.com/xaionaro-go/asreadln/pkg/config"
	"github.com/xaionaro-go/asreadln/pkg/framesource"
	"github.com/xaionaro-go/asreadln/pkg/transcriber"
	"github.com/xaionaro-go/asreadln/pkg/transcriber/implementations/whisper"
	"github.com/xaionaro-go/observability"
)

// run captures a single utterance and prints its transcription to out.
// Cancelling captureCtx ends the capture early; the audio captured so far
// is still transcribed. stopCapture is called once the capture is over.
func run(
	ctx context.Context,
	captureCtx context.Context,
	stopCapture context.CancelFunc,
	cfg config.Config,
	out io.Writer,
) error {
	cfg.LogWarnings(ctx)

	cls, err := newClassifier(ctx, cfg.Classifier)
	if err != nil {
		return fmt.Errorf("unable to initialize the classifier: %w", err)
	}
	defer cls.Close()

	// loaded before capturing, so that a broken model does not waste a recording
	tr, err := newTranscriber(ctx, cfg.Transcriber, cfg.Classifier.SampleRate)
	if err != nil {
		return fmt.Errorf("unable to initialize the transcriber: %w", err)
	}
	defer tr.Close()
	if err := checkSampleRate(tr, cfg.Classifier.SampleRate); err != nil {
		return err
	}

	src, err := framesource.Open(ctx, cfg.Input, cfg.Classifier.SampleRate)
	if err != nil {
		return fmt.Errorf("unable to open the input: %w", err)
	}
	defer src.Close()
	observability.Go(captureCtx, func(ctx context.Context) {
		<-ctx.Done()
		logger.Debugf(ctx, "closing the input: %v", src.Close())
	})

	session := capture.NewSession(src, cls, cfg.Endpoint)
	report, err := session.Run(captureCtx)
	stopCapture()
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}
	logger.Infof(ctx, "capture report: %s", report)

	samples := session.Samples()
	if len(samples) == 0 {
		logger.Warnf(ctx, "nothing was captured (%s)", report.EndReason)
		return nil
	}

	if cfg.Replay {
		if err := replay(ctx, cfg.Classifier.SampleRate, samples); err != nil {
			logger.Errorf(ctx, "unable to replay the capture: %v", err)
		}
	}

	logger.Tracef(ctx, "Transcribe")
	segments, err := tr.Transcribe(ctx, samples, cfg.Transcriber.Language)
	logger.Tracef(ctx, "/Transcribe: %v", err)
	if err != nil {
		return err
	}
	if cfg.Transcriber.JoinSegments {
		_, err := fmt.Fprintln(out, transcriber.JoinText(segments))
		return err
	}
	return transcriber.WriteSegments(out, segments, cfg.Transcriber.PrintTimestamps)
}

func checkSampleRate(tr transcriber.Transcriber, sampleRate audio.SampleRate) error {
	if expected := tr.SampleRate(); expected != uint32(sampleRate) {
		return fmt.Errorf("%T expects %dHz audio, but the capture sample rate is %d", tr, expected, sampleRate)
	}
	return nil
}

func newClassifier(
	ctx context.Context,
	cfg config.Classifier,
) (classifier.Classifier, error) {
	switch cfg.Kind {
	case config.ClassifierWebRTC:
		return webrtc.New(ctx, cfg.Mode, cfg.SampleRate, cfg.FrameSize)
	case config.ClassifierSpectral:
		return spectral.New(cfg.Mode, cfg.SampleRate, cfg.FrameSize)
	default:
		return nil, fmt.Errorf("unknown classifier '%s'", cfg.Kind)
	}
}

func newTranscriber(
	ctx context.Context,
	cfg config.Transcriber,
	sampleRate audio.SampleRate,
) (transcriber.Transcriber, error) {
	switch cfg.Kind {
	case config.TranscriberWhisper:
		return whisper.New(ctx, cfg.Model, cfg.Threads)
	case config.TranscriberDummy:
		return transcriber.NewDummy(uint32(sampleRate)), nil
	default:
		return nil, fmt.Errorf("unknown transcriber '%s'", cfg.Kind)
	}
}

func replay(
	ctx context.Context,
	sampleRate audio.SampleRate,
	samples []float32,
) error {
	player := audio.NewPlayerAuto(ctx)
	defer player.Close()

	logger.Tracef(ctx, "player.PlaySamples")
	stream, err := player.PlaySamples(ctx, sampleRate, samples)
	logger.Tracef(ctx, "/player.PlaySamples: %v", err)
	if err != nil {
		return err
	}
	defer stream.Close()
	logger.Infof(ctx, "replaying %d samples via %T", len(samples), player.PlayerPCM)
	return stream.Drain()
}
