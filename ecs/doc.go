// Package ecs bridges arbor's routed interactions into an ECS world.
//
// The adapter is [NewDonburiStore], which publishes every interaction on a
// node with a non-zero EntityID into a [Donburi] world as a typed event.
// Subscribe to [InteractionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	stage := arbor.NewStage(arbor.WithEventSink(store))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
