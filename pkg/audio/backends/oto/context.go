package oto

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/xaionaro-go/asreadln/pkg/audio/types"
)

// oto allows a single context per process, so the output format is fixed.
const (
	SampleRate = types.SampleRate(48000)
	Channels   = types.Channel(2)
	Format     = types.PCMFormatFloat32LE
	BufferSize = 100 * time.Millisecond
)

var (
	otoContext       *oto.Context
	otoContextErr    error
	otoContextLocker sync.Mutex
)

func getOtoContext() (*oto.Context, error) {
	otoContextLocker.Lock()
	defer otoContextLocker.Unlock()
	if otoContext != nil || otoContextErr != nil {
		return otoContext, otoContextErr
	}

	ctx, readyChan, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(SampleRate),
		ChannelCount: int(Channels),
		Format:       oto.FormatFloat32LE,
		BufferSize:   BufferSize,
	})
	if err != nil {
		otoContextErr = fmt.Errorf("unable to initialize an oto context: %w", err)
		return nil, otoContextErr
	}
	<-readyChan
	otoContext = ctx
	return otoContext, nil
}
