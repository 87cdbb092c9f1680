//go:build whisper
// +build whisper

package whisper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/xaionaro-go/asreadln/pkg/transcriber"
)

const Supported = true

type Whisper struct {
	Locker    sync.Mutex
	Model     whisperlib.Model
	ModelPath string
	Threads   uint
}

var _ transcriber.Transcriber = (*Whisper)(nil)

// New loads the model. Threads == 0 keeps the library default.
func New(
	ctx context.Context,
	modelPath string,
	threads uint,
) (*Whisper, error) {
	if modelPath == "" {
		return nil, errors.New("model path must not be empty")
	}
	logger.Debugf(ctx, "whisperlib.New(%q)", modelPath)
	model, err := whisperlib.New(modelPath)
	logger.Debugf(ctx, "/whisperlib.New(%q): %v", modelPath, err)
	if err != nil {
		return nil, fmt.Errorf("unable to load model %q: %w", modelPath, err)
	}
	return &Whisper{
		Model:     model,
		ModelPath: modelPath,
		Threads:   threads,
	}, nil
}

func (w *Whisper) Close() error {
	w.Locker.Lock()
	defer w.Locker.Unlock()
	if w.Model == nil {
		return fmt.Errorf("double-close attempt")
	}
	err := w.Model.Close()
	w.Model = nil
	return err
}

func (*Whisper) SampleRate() uint32 {
	return SampleRate
}

func (w *Whisper) Transcribe(
	ctx context.Context,
	samples []float32,
	language string,
) (_ []transcriber.Segment, _err error) {
	logger.Tracef(ctx, "Transcribe(%d samples, %q)", len(samples), language)
	defer func() { logger.Tracef(ctx, "/Transcribe(%d samples, %q): %v", len(samples), language, _err) }()

	w.Locker.Lock()
	defer w.Locker.Unlock()
	if w.Model == nil {
		return nil, fmt.Errorf("%w: the model is closed", transcriber.ErrTranscriptionFailure)
	}

	wctx, err := w.Model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create a context: %w", transcriber.ErrTranscriptionFailure, err)
	}
	if err := wctx.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("%w: unable to set language %q: %w", transcriber.ErrTranscriptionFailure, language, err)
	}
	if w.Threads > 0 {
		wctx.SetThreads(w.Threads)
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", transcriber.ErrTranscriptionFailure, err)
	}

	var segments []transcriber.Segment
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", transcriber.ErrTranscriptionFailure, err)
		}
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: unable to read a segment: %w", transcriber.ErrTranscriptionFailure, err)
		}
		segments = append(segments, transcriber.Segment{
			Text:  segment.Text,
			Start: segment.Start,
			End:   segment.End,
		})
	}
	logger.Debugf(ctx, "transcribed %d samples into %d segments", len(samples), len(segments))
	return segments, nil
}
