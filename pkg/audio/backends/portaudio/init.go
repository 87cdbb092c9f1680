package portaudio

import (
	"github.com/xaionaro-go/asreadln/pkg/audio/registry"
	"github.com/xaionaro-go/asreadln/pkg/audio/types"
)

const (
	Priority = 60
)

func init() {
	registry.RegisterRecorderFactory(Priority, RecorderPCMFactory{})
}

type RecorderPCMFactory struct{}

func (RecorderPCMFactory) NewRecorderPCM() (types.RecorderPCM, error) {
	return NewRecorderPCM()
}
