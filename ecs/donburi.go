package ecs

import (
	"github.com/phanxgames/scrollfx"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// RevealEventType is the Donburi event type for scrollfx reveal events.
// Subscribe to this in your ECS systems to react to content entering view.
var RevealEventType = events.NewEventType[scrollfx.RevealEvent]()

// Revealed is the component kept on each node's entity.
type Revealed struct {
	NodeID uint32
	Name   string
	State  scrollfx.RevealState
	// Count is how many times the node has been revealed.
	Count int
}

// RevealedComponent is the component type for Revealed.
var RevealedComponent = donburi.NewComponentType[Revealed]()

// DonburiStore is an EventStore backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Reveal events are published to RevealEventType and can be consumed with
// events.Subscribe and ProcessEvents. The Revealed component is updated
// immediately.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: make(map[uint32]donburi.Entity)}
}

// EmitReveal implements scrollfx.EventStore.
func (s *DonburiStore) EmitReveal(event scrollfx.RevealEvent) {
	e, ok := s.entities[event.NodeID]
	if !ok || !s.world.Valid(e) {
		e = s.world.Create(RevealedComponent)
		s.entities[event.NodeID] = e
	}
	entry := s.world.Entry(e)
	r := RevealedComponent.Get(entry)
	r.NodeID = event.NodeID
	r.Name = event.Name
	r.State = event.State
	if event.State == scrollfx.RevealTriggered {
		r.Count++
	}
	RevealEventType.Publish(s.world, event)
}

// Entity returns the entity tracking the node with the given ID.
func (s *DonburiStore) Entity(nodeID uint32) (donburi.Entity, bool) {
	e, ok := s.entities[nodeID]
	return e, ok && s.world.Valid(e)
}
