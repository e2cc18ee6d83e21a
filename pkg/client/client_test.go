package client

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hesapmakinesi/hesap/pkg/calculator"
	"github.com/hesapmakinesi/hesap/pkg/config"
	"github.com/hesapmakinesi/hesap/pkg/daemon"
	"github.com/hesapmakinesi/hesap/pkg/events"
)

// startDaemon serves a fresh daemon router on a temporary unix socket.
func startDaemon(t *testing.T) *Client {
	t.Helper()

	// Keep the path short; unix socket paths are length limited.
	dir, err := os.MkdirTemp("", "hesap")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	sock := filepath.Join(dir, "d.sock")
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatal(err)
	}

	s := daemon.NewServer(config.NewFileFromConfig(nil, ""))
	srv := &http.Server{Handler: s.Router()}
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })

	return NewClient(sock)
}

func TestClient_PressAndState(t *testing.T) {
	c := startDaemon(t)

	bs, err := calculator.ParseButtons([]string{"12", "+", "30", "="})
	if err != nil {
		t.Fatal(err)
	}
	st, err := c.PressAll(bs...)
	if err != nil {
		t.Fatal(err)
	}
	if st.Value != "42" {
		t.Errorf("Value = %q, want %q", st.Value, "42")
	}

	st, err = c.GetState()
	if err != nil {
		t.Fatal(err)
	}
	if st.Screen != "42" || st.Phase != calculator.PhaseAwaitingEntry {
		t.Errorf("GetState() = %+v", st)
	}

	st, err = c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if st.State != calculator.NewState() {
		t.Errorf("Clear() = %+v", st.State)
	}
}

func TestClient_ConfigAndVersion(t *testing.T) {
	c := startDaemon(t)

	conf, err := c.GetConfig()
	if err != nil {
		t.Fatal(err)
	}
	if conf.ColorScheme == nil || *conf.ColorScheme != config.ColorSchemeDark {
		t.Errorf("GetConfig().ColorScheme = %v", conf.ColorScheme)
	}

	v, err := c.GetVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v == "" {
		t.Error("GetVersion() returned empty version")
	}
}

func TestClient_NotFound(t *testing.T) {
	c := startDaemon(t)
	if _, err := c.Get("/nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(/nope) error = %v, want ErrNotFound", err)
	}
}

func TestClient_DaemonNotRunning(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))
	if _, err := c.GetState(); !errors.Is(err, ErrDaemonNotRunning) {
		t.Errorf("GetState() error = %v, want ErrDaemonNotRunning", err)
	}
}

func TestClient_SubscribeEvents(t *testing.T) {
	c := startDaemon(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch := c.SubscribeEvents(ctx)

	next := func() events.DisplayChangedEvent {
		t.Helper()
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatal("event stream closed")
			}
			if ev.Name != events.DisplayChanged {
				t.Fatalf("event name = %q", ev.Name)
			}
			payload, err := events.DecodeAs[events.DisplayChangedEvent](ev)
			if err != nil {
				t.Fatal(err)
			}
			return payload
		case <-ctx.Done():
			t.Fatal("timed out waiting for event")
		}
		return events.DisplayChangedEvent{}
	}

	if got := next(); got.Screen != "0" {
		t.Errorf("initial screen = %q, want %q", got.Screen, "0")
	}

	if _, err := c.Press(calculator.ButtonEight); err != nil {
		t.Fatal(err)
	}
	if got := next(); got.Value != "8" || got.Button != "8" {
		t.Errorf("event after pressing 8 = %+v", got)
	}

	cancel()
	for range ch {
	}
}
