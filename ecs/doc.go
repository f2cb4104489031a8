// Package ecs provides ECS adapters for scrollfx's reveal events.
//
// The primary adapter is [NewDonburiStore], which bridges reveal changes
// (a node scrolling into view, or a repeatable reveal re-arming) into a
// [Donburi] world as typed events, and keeps one entity per revealed node
// carrying its latest [Revealed] state.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	page.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
