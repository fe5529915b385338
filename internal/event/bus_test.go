package event

import "testing"

func TestPublishRoutesByType(t *testing.T) {
	bus := NewBus()

	var advanced []StepAdvancedEvent
	bus.Subscribe(TypeStepAdvanced, func(e Event) {
		advanced = append(advanced, e.(StepAdvancedEvent))
	})

	var all []Event
	bus.SubscribeAll(func(e Event) {
		all = append(all, e)
	})

	bus.Publish(StepAdvancedEvent{SessionID: "s1", From: "qualify", To: "recipient_review"})
	bus.Publish(SessionResolvedEvent{SessionID: "s1"})

	if len(advanced) != 1 {
		t.Fatalf("typed handler received %d events, want 1", len(advanced))
	}
	if advanced[0].To != "recipient_review" {
		t.Errorf("advanced[0].To = %q, want %q", advanced[0].To, "recipient_review")
	}
	if len(all) != 2 {
		t.Errorf("wildcard handler received %d events, want 2", len(all))
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	id := bus.Subscribe(TypeSessionCreated, func(Event) { calls++ })

	bus.Publish(SessionCreatedEvent{SessionID: "s1"})
	if !bus.Unsubscribe(id) {
		t.Fatal("Unsubscribe() = false, want true")
	}
	bus.Publish(SessionCreatedEvent{SessionID: "s2"})

	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
	if bus.Unsubscribe(id) {
		t.Error("second Unsubscribe() = true, want false")
	}
}

func TestPublishNilBus(t *testing.T) {
	var bus *Bus
	// Must not panic.
	bus.Publish(SessionCreatedEvent{SessionID: "s1"})
}
