package ecs

import (
	"testing"

	"github.com/phanxgames/scrollfx"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitReveal(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []scrollfx.RevealEvent
	RevealEventType.Subscribe(world, func(w donburi.World, e scrollfx.RevealEvent) {
		received = append(received, e)
	})

	store.EmitReveal(scrollfx.RevealEvent{NodeID: 42, Name: "about", State: scrollfx.RevealTriggered, Scroll: 300})
	store.EmitReveal(scrollfx.RevealEvent{NodeID: 7, Name: "card", State: scrollfx.RevealTriggered, Scroll: 900})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	RevealEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].NodeID != 42 || received[0].Scroll != 300 {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Name != "card" {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiStore_RevealedComponent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	store.EmitReveal(scrollfx.RevealEvent{NodeID: 3, Name: "card", State: scrollfx.RevealTriggered})
	store.EmitReveal(scrollfx.RevealEvent{NodeID: 3, Name: "card", State: scrollfx.RevealPending})
	store.EmitReveal(scrollfx.RevealEvent{NodeID: 3, Name: "card", State: scrollfx.RevealTriggered})

	e, ok := store.Entity(3)
	if !ok {
		t.Fatal("no entity for node 3")
	}
	r := RevealedComponent.Get(world.Entry(e))
	if r.State != scrollfx.RevealTriggered {
		t.Errorf("State = %v, want Triggered", r.State)
	}
	if r.Count != 2 {
		t.Errorf("Count = %d, want 2", r.Count)
	}
	if world.Len() != 1 {
		t.Errorf("world has %d entities, want 1", world.Len())
	}
}

func TestDonburiStore_ImplementsEventStore(t *testing.T) {
	world := donburi.NewWorld()
	var store scrollfx.EventStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_PageBridge(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	page := scrollfx.NewPage(800, 400)
	page.SetEventStore(store)
	card := scrollfx.NewNode("card", 200, 100)
	card.SetLayout(0, 1000, 200, 100)
	page.Root().AddChild(card)
	page.FitContent()

	if _, err := page.Reveal(card, scrollfx.RevealOptions{Once: true, Threshold: 0.5}); err != nil {
		t.Fatal(err)
	}

	var count int
	RevealEventType.Subscribe(world, func(w donburi.World, e scrollfx.RevealEvent) {
		count++
	})

	page.Step(1.0 / 60)
	page.Viewport().JumpTo(700)
	page.Step(1.0 / 60)
	events.ProcessAllEvents(world)

	if count != 1 {
		t.Errorf("expected 1 reveal event, got %d", count)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	RevealEventType.Subscribe(world, func(w donburi.World, e scrollfx.RevealEvent) {
		count1++
	})
	RevealEventType.Subscribe(world, func(w donburi.World, e scrollfx.RevealEvent) {
		count2++
	})

	store.EmitReveal(scrollfx.RevealEvent{NodeID: 1, State: scrollfx.RevealTriggered})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
