package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/arbor"
)

// InteractionEventType is the Donburi event type for arbor interaction events.
// Subscribe to this in your ECS systems to receive pointer and key events.
var InteractionEventType = events.NewEventType[arbor.InteractionEvent]()

// StoreOption configures a store created by NewDonburiStore.
type StoreOption func(*donburiStore)

// WithEventTypes limits publication to the listed interaction types. Moves
// are frequent, so a world that only reacts to clicks can skip them.
func WithEventTypes(types ...arbor.EventType) StoreOption {
	return func(s *donburiStore) {
		for _, t := range types {
			s.mask |= 1 << t
		}
	}
}

type donburiStore struct {
	world donburi.World
	mask  uint32 // zero publishes everything
}

// NewDonburiStore creates an EventSink backed by a Donburi world.
// Interaction events are queued on InteractionEventType and delivered by
// ProcessEvents.
func NewDonburiStore(world donburi.World, opts ...StoreOption) arbor.EventSink {
	s := &donburiStore{world: world}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *donburiStore) EmitEvent(event arbor.InteractionEvent) {
	if s.mask != 0 && s.mask&(1<<event.Type) == 0 {
		return
	}
	InteractionEventType.Publish(s.world, event)
}

// OnEvent subscribes fn to interactions of type t only.
func OnEvent(world donburi.World, t arbor.EventType, fn func(donburi.World, arbor.InteractionEvent)) {
	InteractionEventType.Subscribe(world, func(w donburi.World, e arbor.InteractionEvent) {
		if e.Type == t {
			fn(w, e)
		}
	})
}
