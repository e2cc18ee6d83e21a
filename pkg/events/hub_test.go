package events

import (
	"testing"
)

func TestEventHub_PublishSubscribe(t *testing.T) {
	h := NewEventHub()
	a := h.Subscribe()
	b := h.Subscribe()
	if got := h.Subscribers(); got != 2 {
		t.Fatalf("Subscribers() = %d, want 2", got)
	}

	h.Publish(DisplayChanged, DisplayChangedEvent{Button: "7", Value: "7", Screen: "7", Phase: "Entry"})

	for _, ch := range []chan Event{a, b} {
		ev := <-ch
		if ev.Name != DisplayChanged {
			t.Errorf("Name = %q, want %q", ev.Name, DisplayChanged)
		}
		payload, err := DecodeAs[DisplayChangedEvent](ev)
		if err != nil {
			t.Fatal(err)
		}
		if payload.Value != "7" || payload.Button != "7" {
			t.Errorf("payload = %+v", payload)
		}
	}

	h.Unsubscribe(a)
	if _, ok := <-a; ok {
		t.Error("channel still open after Unsubscribe")
	}
	// A second unsubscribe must not panic on the closed channel.
	h.Unsubscribe(a)
	if got := h.Subscribers(); got != 1 {
		t.Errorf("Subscribers() = %d, want 1", got)
	}
}

func TestEventHub_DropsWhenSubscriberIsSlow(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	for i := 0; i < 100; i++ {
		h.Publish(DisplayChanged, DisplayChangedEvent{Value: "1"})
	}
	if got := len(ch); got != cap(ch) {
		t.Errorf("buffered %d events, want %d", got, cap(ch))
	}
}

func TestEventHub_NilIsNoop(t *testing.T) {
	var h *EventHub
	h.Publish(DisplayChanged, nil)
}

func TestDecodeAs_Empty(t *testing.T) {
	got, err := DecodeAs[DisplayChangedEvent](Event{Name: DisplayChanged})
	if err != nil {
		t.Fatal(err)
	}
	if got != (DisplayChangedEvent{}) {
		t.Errorf("DecodeAs(empty) = %+v, want zero value", got)
	}
}
