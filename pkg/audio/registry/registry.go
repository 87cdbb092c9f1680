package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/xaionaro-go/asreadln/pkg/audio/types"
)

type PlayerPCMFactory interface {
	NewPlayerPCM() (types.PlayerPCM, error)
}

type RecorderPCMFactory interface {
	NewRecorderPCM() (types.RecorderPCM, error)
}

type factoryWithPriority[T any] struct {
	Priority int
	Factory  T
}

// factoryRegistry keeps at most one factory per concrete type.
type factoryRegistry[T any] struct {
	locker    sync.Mutex
	kind      string
	factories map[reflect.Type]factoryWithPriority[T]
}

func newFactoryRegistry[T any](kind string) *factoryRegistry[T] {
	return &factoryRegistry[T]{
		kind:      kind,
		factories: map[reflect.Type]factoryWithPriority[T]{},
	}
}

func factoryType(factory any) reflect.Type {
	t := reflect.ValueOf(factory).Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func (r *factoryRegistry[T]) register(priority int, factory T) {
	r.locker.Lock()
	defer r.locker.Unlock()
	t := factoryType(factory)
	if _, ok := r.factories[t]; ok {
		panic(fmt.Errorf("there is already registered a factory of %s of type %v", r.kind, t))
	}
	r.factories[t] = factoryWithPriority[T]{
		Priority: priority,
		Factory:  factory,
	}
}

func (r *factoryRegistry[T]) unregister(factory T) {
	r.locker.Lock()
	defer r.locker.Unlock()
	delete(r.factories, factoryType(factory))
}

// list returns the factories sorted by descending priority.
func (r *factoryRegistry[T]) list() []T {
	r.locker.Lock()
	var withPriorities []factoryWithPriority[T]
	for _, factory := range r.factories {
		withPriorities = append(withPriorities, factory)
	}
	r.locker.Unlock()

	sort.SliceStable(withPriorities, func(i, j int) bool {
		return withPriorities[i].Priority > withPriorities[j].Priority
	})

	factories := make([]T, 0, len(withPriorities))
	for _, factory := range withPriorities {
		factories = append(factories, factory.Factory)
	}
	return factories
}

var (
	playerFactoryRegistry   = newFactoryRegistry[PlayerPCMFactory]("PlayerPCM")
	recorderFactoryRegistry = newFactoryRegistry[RecorderPCMFactory]("RecorderPCM")
)

func RegisterPlayerFactory(
	priority int,
	playerPCMFactory PlayerPCMFactory,
) {
	playerFactoryRegistry.register(priority, playerPCMFactory)
}

func UnregisterPlayerFactory(playerPCMFactory PlayerPCMFactory) {
	playerFactoryRegistry.unregister(playerPCMFactory)
}

func PlayerFactories() []PlayerPCMFactory {
	return playerFactoryRegistry.list()
}

func RegisterRecorderFactory(
	priority int,
	recorderPCMFactory RecorderPCMFactory,
) {
	recorderFactoryRegistry.register(priority, recorderPCMFactory)
}

func UnregisterRecorderFactory(recorderPCMFactory RecorderPCMFactory) {
	recorderFactoryRegistry.unregister(recorderPCMFactory)
}

func RecorderFactories() []RecorderPCMFactory {
	return recorderFactoryRegistry.list()
}
