package events

import "encoding/json"

// Event name constants
const (
	DisplayChanged = "display.changed"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// DisplayChangedEvent is the typed payload for display.changed. It is
// published after every button press handled by the daemon.
type DisplayChangedEvent struct {
	Button         string `json:"button"`
	Value          string `json:"value"`
	Screen         string `json:"screen"`
	OperatorSymbol string `json:"operatorSymbol,omitempty"`
	Phase          string `json:"phase"`
	Ts             int64  `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.DisplayChangedEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.Screen)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
