package audio

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/asreadln/pkg/audio/registry"
)

type Recorder struct {
	RecorderPCM
}

func NewRecorder(recorderPCM RecorderPCM) *Recorder {
	return &Recorder{
		RecorderPCM: recorderPCM,
	}
}

var (
	lastSuccessfulRecorderFactory       registry.RecorderPCMFactory
	lastSuccessfulRecorderFactoryLocker sync.Mutex
)

func getLastSuccessfulRecorderFactory() registry.RecorderPCMFactory {
	lastSuccessfulRecorderFactoryLocker.Lock()
	defer lastSuccessfulRecorderFactoryLocker.Unlock()
	return lastSuccessfulRecorderFactory
}

// NewRecorderAuto returns the highest-priority registered recorder that
// could be initialized and pinged. Unlike NewPlayerAuto it does not fall back
// to a dummy: a capture session without an input device would silently
// produce nothing, so the aggregated error is returned instead.
func NewRecorderAuto(
	ctx context.Context,
) (*Recorder, error) {
	if factory := getLastSuccessfulRecorderFactory(); factory != nil {
		recorder, err := factory.NewRecorderPCM()
		if err == nil {
			if err := recorder.Ping(ctx); err == nil {
				return NewRecorder(recorder), nil
			}
			_ = recorder.Close()
		}
	}

	var mErr *multierror.Error
	for _, factory := range registry.RecorderFactories() {
		recorder, err := factory.NewRecorderPCM()
		logger.Debugf(ctx, "initializing recorder %T result is %v", factory, err)
		if err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to initialize %T: %w", factory, err))
			continue
		}

		err = recorder.Ping(ctx)
		logger.Debugf(ctx, "pinging PCM recorder %T result is %v", recorder, err)
		if err != nil {
			_ = recorder.Close()
			mErr = multierror.Append(mErr, fmt.Errorf("unable to ping %T: %w", recorder, err))
			continue
		}

		lastSuccessfulRecorderFactoryLocker.Lock()
		lastSuccessfulRecorderFactory = factory
		lastSuccessfulRecorderFactoryLocker.Unlock()
		return NewRecorder(recorder), nil
	}

	if mErr == nil {
		return nil, fmt.Errorf("no PCM recorder backends are registered")
	}
	return nil, fmt.Errorf("was unable to initialize any PCM recorder: %w", mErr.ErrorOrNil())
}

func (a *Recorder) RecordPCM(
	ctx context.Context,
	sampleRate SampleRate,
	channels Channel,
	pcmFormat PCMFormat,
	pcmWriter io.Writer,
) (RecordStream, error) {
	return a.RecorderPCM.RecordPCM(
		ctx,
		sampleRate,
		channels,
		pcmFormat,
		pcmWriter,
	)
}
