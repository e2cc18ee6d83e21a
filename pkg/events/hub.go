package events

import (
	"encoding/json"
	"sync"
)

// EventHub fans published events out to every subscriber.
type EventHub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

// NewEventHub returns a hub with no subscribers.
func NewEventHub() *EventHub { return &EventHub{subs: make(map[chan Event]struct{})} }

// Subscribe registers a buffered channel that receives every later event.
// Callers must Unsubscribe it when done.
func (h *EventHub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes ch and closes it. Unknown channels are ignored.
func (h *EventHub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Subscribers returns the number of live subscriptions.
func (h *EventHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish encodes payload as JSON and sends it to every subscriber without
// blocking. A subscriber whose buffer is full misses the event.
func (h *EventHub) Publish(name string, payload any) {
	if h == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msg := Event{Name: name, Data: b}
	h.mu.RLock()
	for ch := range h.subs {
		// Non-blocking send; drop if subscriber is slow
		select {
		case ch <- msg:
		default:
		}
	}
	h.mu.RUnlock()
}
