package client

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hesapmakinesi/hesap/pkg/calculator"
	"github.com/hesapmakinesi/hesap/pkg/config"
	"github.com/hesapmakinesi/hesap/pkg/events"
)

func (c *Client) GetState() (*calculator.Status, error) {
	ret, err := c.Get("/state")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get calculator state")
	}
	return parseStatus(ret)
}

// Press sends one button press and returns the state after it.
func (c *Client) Press(b calculator.Button) (*calculator.Status, error) {
	payload, err := json.Marshal(b)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to encode button")
	}
	ret, err := c.Post("/press", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to press %s", b.Label())
	}
	return parseStatus(ret)
}

// PressAll sends the buttons in order and returns the state after the last one.
func (c *Client) PressAll(bs ...calculator.Button) (*calculator.Status, error) {
	if len(bs) == 0 {
		return c.GetState()
	}
	var st *calculator.Status
	for _, b := range bs {
		var err error
		st, err = c.Press(b)
		if err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (c *Client) Clear() (*calculator.Status, error) {
	ret, err := c.Post("/clear", "")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to clear calculator")
	}
	return parseStatus(ret)
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}
	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v, nil
}

// SubscribeEvents streams daemon events until ctx is cancelled or the
// connection drops. The returned channel is closed when the stream ends.
func (c *Client) SubscribeEvents(ctx context.Context) <-chan events.Event {
	out := make(chan events.Event, 16)

	go func() {
		defer close(out)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://unix/events", nil)
		if err != nil {
			logrus.WithError(err).Error("failed to create event request")
			return
		}
		req.Header.Set("Accept", "text/event-stream")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() == nil {
				logrus.WithError(err).Error("failed to subscribe to events")
			}
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			logrus.Errorf("failed to subscribe to events: got %d", resp.StatusCode)
			return
		}

		readEvents(ctx, bufio.NewScanner(resp.Body), out)
	}()

	return out
}

// readEvents parses a text/event-stream body. Only the event and data fields
// are used.
func readEvents(ctx context.Context, sc *bufio.Scanner, out chan<- events.Event) {
	var (
		name string
		data strings.Builder
	)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if name == "" && data.Len() == 0 {
				continue
			}
			ev := events.Event{Name: name, Data: json.RawMessage(data.String())}
			name = ""
			data.Reset()
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
}

func parseStatus(ret string) (*calculator.Status, error) {
	var st calculator.Status
	if err := json.Unmarshal([]byte(ret), &st); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal calculator state")
	}
	return &st, nil
}
