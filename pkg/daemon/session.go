package daemon

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hesapmakinesi/hesap/pkg/calculator"
	"github.com/hesapmakinesi/hesap/pkg/events"
	"github.com/hesapmakinesi/hesap/pkg/observability"
)

// Session is the one calculator session owned by the daemon. Presses from
// concurrent requests are applied one at a time.
type Session struct {
	mu    sync.Mutex
	state calculator.State

	hub     *events.EventHub
	metrics *observability.Metrics
	now     func() time.Time
}

// NewSession returns a session in the default state. hub and metrics may be nil.
func NewSession(hub *events.EventHub, metrics *observability.Metrics) *Session {
	return &Session{
		state:   calculator.NewState(),
		hub:     hub,
		metrics: metrics,
		now:     time.Now,
	}
}

// Press applies b and publishes the new display.
func (s *Session) Press(b calculator.Button) calculator.Status {
	s.mu.Lock()
	// Held through Publish so subscribers see displays in press order.
	defer s.mu.Unlock()

	before := s.state
	s.state = calculator.Press(before, b)
	after := s.state

	s.metrics.ObservePress(b, before, after)

	entry := logrus.WithFields(logrus.Fields{
		"button": b.Label(),
		"value":  after.Value,
		"phase":  after.Phase(),
	})
	if !before.IsError() && after.IsError() {
		entry.Warn("calculation failed, display shows error until cleared")
	} else {
		entry.Debug("button pressed")
	}

	status := calculator.StatusOf(after)
	s.hub.Publish(events.DisplayChanged, s.displayChanged(b, status))

	return status
}

// Status returns the current session view.
func (s *Session) Status() calculator.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calculator.StatusOf(s.state)
}

func (s *Session) displayChanged(b calculator.Button, st calculator.Status) events.DisplayChangedEvent {
	return events.DisplayChangedEvent{
		Button:         b.Label(),
		Value:          st.Value,
		Screen:         st.Screen,
		OperatorSymbol: st.OperatorSymbol,
		Phase:          string(st.Phase),
		Ts:             s.now().Unix(),
	}
}
