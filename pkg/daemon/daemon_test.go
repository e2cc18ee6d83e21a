package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hesapmakinesi/hesap/pkg/calculator"
	"github.com/hesapmakinesi/hesap/pkg/config"
	"github.com/hesapmakinesi/hesap/pkg/events"
	"github.com/hesapmakinesi/hesap/pkg/utils/ptr"
)

func newTestServer(metrics bool) (*Server, *gin.Engine) {
	conf := config.NewFileFromConfig(&config.RawFileConfig{Metrics: ptr.To(metrics)}, "")
	s := NewServer(conf)
	return s, s.Router()
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	r.ServeHTTP(rec, req)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) calculator.Status {
	t.Helper()
	var st calculator.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return st
}

func TestServer_PressSequence(t *testing.T) {
	_, r := newTestServer(false)

	tests := []struct {
		button     string
		wantValue  string
		wantScreen string
	}{
		{button: `"7"`, wantValue: "7", wantScreen: "7"},
		{button: `"+"`, wantValue: "7", wantScreen: "7 +"},
		{button: `"3"`, wantValue: "3", wantScreen: "3"},
		{button: `"*"`, wantValue: "10", wantScreen: "10 ×"},
		{button: `"2"`, wantValue: "2", wantScreen: "2"},
		{button: `"="`, wantValue: "20", wantScreen: "20"},
	}
	for _, tt := range tests {
		rec := do(t, r, http.MethodPost, "/press", tt.button)
		if rec.Code != http.StatusOK {
			t.Fatalf("press %s: status = %d, body %s", tt.button, rec.Code, rec.Body.String())
		}
		st := decodeStatus(t, rec)
		if st.Value != tt.wantValue || st.Screen != tt.wantScreen {
			t.Errorf("press %s: value %q screen %q, want %q %q", tt.button, st.Value, st.Screen, tt.wantValue, tt.wantScreen)
		}
	}

	st := decodeStatus(t, do(t, r, http.MethodGet, "/state", ""))
	if st.Value != "20" || st.Phase != calculator.PhaseAwaitingEntry {
		t.Errorf("GET /state = %+v", st)
	}
}

func TestServer_ErrorAndClear(t *testing.T) {
	_, r := newTestServer(true)

	for _, b := range []string{`"9"`, `"/"`, `"0"`, `"="`, `"5"`} {
		do(t, r, http.MethodPost, "/press", b)
	}
	st := decodeStatus(t, do(t, r, http.MethodGet, "/state", ""))
	if st.Value != calculator.ErrorSentinel || st.Phase != calculator.PhaseError {
		t.Fatalf("state after 9/0= = %+v", st)
	}

	st = decodeStatus(t, do(t, r, http.MethodPost, "/clear", ""))
	if st.State != calculator.NewState() {
		t.Errorf("state after clear = %+v", st.State)
	}

	rec := do(t, r, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `hesap_errors_total{kind="division_by_zero"} 1`) {
		t.Errorf("metrics missing division_by_zero error:\n%s", rec.Body.String())
	}
}

func TestServer_BadRequest(t *testing.T) {
	_, r := newTestServer(false)

	for _, body := range []string{`"sqrt"`, `7`, `{`} {
		rec := do(t, r, http.MethodPost, "/press", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("press %s: status = %d, want 400", body, rec.Code)
		}
	}

	st := decodeStatus(t, do(t, r, http.MethodGet, "/state", ""))
	if st.State != calculator.NewState() {
		t.Errorf("bad requests changed state to %+v", st.State)
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	_, r := newTestServer(false)
	if rec := do(t, r, http.MethodGet, "/metrics", ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET /metrics status = %d, want 404", rec.Code)
	}
}

func TestServer_ConfigAndVersion(t *testing.T) {
	_, r := newTestServer(false)

	var raw config.RawFileConfig
	rec := do(t, r, http.MethodGet, "/config", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if raw.Metrics == nil || *raw.Metrics {
		t.Errorf("config metrics = %v, want false", raw.Metrics)
	}

	if rec := do(t, r, http.MethodGet, "/version", ""); rec.Code != http.StatusOK {
		t.Errorf("GET /version status = %d", rec.Code)
	}
}

func TestSession_ConcurrentPresses(t *testing.T) {
	s := NewSession(nil, nil)
	s.Press(calculator.ButtonOne)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Press(calculator.ButtonZero)
		}()
	}
	wg.Wait()

	if got := s.Status().Value; got != "1"+strings.Repeat("0", 50) {
		t.Errorf("Value = %q, want 1 followed by 50 zeros", got)
	}
}

func TestSession_LastEventMatchesState(t *testing.T) {
	const presses = 12

	for round := 0; round < 200; round++ {
		hub := events.NewEventHub()
		ch := hub.Subscribe()
		s := NewSession(hub, nil)

		var wg sync.WaitGroup
		for i := 0; i < presses; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Press(calculator.ButtonOne)
			}()
		}
		wg.Wait()
		hub.Unsubscribe(ch)

		var last events.DisplayChangedEvent
		n := 0
		for ev := range ch {
			e, err := events.DecodeAs[events.DisplayChangedEvent](ev)
			if err != nil {
				t.Fatal(err)
			}
			last = e
			n++
		}
		if n != presses {
			t.Fatalf("round %d: got %d events, want %d", round, n, presses)
		}
		if want := s.Status().Value; last.Value != want {
			t.Fatalf("round %d: last event value = %q, want %q", round, last.Value, want)
		}
		if want := strings.Repeat("1", presses); last.Value != want {
			t.Fatalf("round %d: last event value = %q, want %q", round, last.Value, want)
		}
	}
}

func TestServer_Events(t *testing.T) {
	_, r := newTestServer(false)
	ts := httptest.NewServer(r)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	sc := bufio.NewScanner(resp.Body)
	nextData := func() string {
		t.Helper()
		for sc.Scan() {
			if data, ok := strings.CutPrefix(sc.Text(), "data:"); ok {
				return data
			}
		}
		t.Fatalf("stream ended: %v", sc.Err())
		return ""
	}

	// The first event is the current display.
	if data := nextData(); !strings.Contains(data, `"screen":"0"`) {
		t.Errorf("initial event = %s", data)
	}

	pressResp, err := ts.Client().Post(ts.URL+"/press", "application/json", strings.NewReader(`"4"`))
	if err != nil {
		t.Fatal(err)
	}
	pressResp.Body.Close()

	if data := nextData(); !strings.Contains(data, `"value":"4"`) || !strings.Contains(data, `"button":"4"`) {
		t.Errorf("change event = %s", data)
	}
}
