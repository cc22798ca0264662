package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"digital.vasic.browserrunner/pkg/suite"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *EventCollector, *httptest.Server) {
	t.Helper()
	c := NewEventCollector()
	s := NewServer("", c, NewDashboardData("run"), nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, c, ts
}

func dial(t *testing.T, s *Server, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return s.ClientCount() > 0 }, time.Second, 5*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) UnitEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var e UnitEvent
	require.NoError(t, conn.ReadJSON(&e))
	return e
}

func TestServer_StreamsEvents(t *testing.T) {
	s, c, ts := newTestServer(t)
	conn := dial(t, s, ts)

	c.UnitStarted(desc("title"))
	c.UnitFinished(finished("title", suite.StatusPassed))

	first := readEvent(t, conn)
	assert.Equal(t, EventStarted, first.Type)
	assert.Equal(t, "DocTest.title [hu-FF78]", first.Unit)

	second := readEvent(t, conn)
	assert.Equal(t, EventPassed, second.Type)
	assert.Equal(t, 2, second.Attempts)
}

func TestServer_ClientDisconnect(t *testing.T) {
	s, _, ts := newTestServer(t)
	conn := dial(t, s, ts)
	require.Equal(t, 1, s.ClientCount())

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = conn.Close()
	assert.Eventually(t, func() bool { return s.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestServer_SlowClientDoesNotBlock(t *testing.T) {
	s, c, ts := newTestServer(t)
	dial(t, s, ts)

	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBuffer*4; i++ {
			c.UnitFinished(finished("m", suite.StatusPassed))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a client that does not read")
	}
}

func TestServer_Stats(t *testing.T) {
	_, c, ts := newTestServer(t)
	c.UnitFinished(finished("a", suite.StatusFailed))

	resp, err := http.Get(ts.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var stats CollectorStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Failed)
}

func TestServer_Dashboard(t *testing.T) {
	_, c, ts := newTestServer(t)
	c.UnitStarted(desc("a"))

	resp, err := http.Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	var snap struct {
		RunID string               `json:"run_id"`
		Units map[string]UnitState `json:"units"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "run", snap.RunID)
	assert.Contains(t, snap.Units, "DocTest.a [hu-FF78]")
}

func TestServer_Health(t *testing.T) {
	_, _, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_UpgradeRequired(t *testing.T) {
	_, _, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_StartStop(t *testing.T) {
	s := NewServer("127.0.0.1:0", NewEventCollector(), NewDashboardData("run"), nil)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.NoError(t, s.Stop(context.Background()))
}

func TestServer_Handle(t *testing.T) {
	s := NewServer("", NewEventCollector(), NewDashboardData("run"), nil)
	s.Handle("/metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("browserrunner_suites_total 1"))
	}))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
