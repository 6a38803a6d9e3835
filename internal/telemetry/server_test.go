package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"world-engine/optimize"
)

func dialTest(t *testing.T, s *Server) (*websocket.Conn, func()) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(s.handleStats))
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial: %v", err)
	}
	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func waitForClients(t *testing.T, s *Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d clients, have %d", n, s.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPublishReachesClient(t *testing.T) {
	s := NewServer("ignored")
	conn, done := dialTest(t, s)
	defer done()
	waitForClients(t, s, 1)

	s.Publish(Snapshot{
		Stats: optimize.PerformanceStats{VisibleObjects: 42, AverageFPS: 60},
		Clock: "12:00 PM",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Snapshot
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.Stats.VisibleObjects != 42 {
		t.Errorf("VisibleObjects: expected 42, got %d", got.Stats.VisibleObjects)
	}
	if got.Clock != "12:00 PM" {
		t.Errorf("Clock: expected 12:00 PM, got %q", got.Clock)
	}
	if got.Time == "" {
		t.Error("expected Time stamped on publish")
	}
}

func TestLateClientGetsLastSnapshot(t *testing.T) {
	s := NewServer("ignored")
	s.Publish(Snapshot{Stats: optimize.PerformanceStats{DrawCalls: 7}})

	conn, done := dialTest(t, s)
	defer done()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Snapshot
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.Stats.DrawCalls != 7 {
		t.Errorf("DrawCalls: expected 7, got %d", got.Stats.DrawCalls)
	}
}

func TestDroppedClientRemoved(t *testing.T) {
	s := NewServer("ignored")
	conn, done := dialTest(t, s)
	waitForClients(t, s, 1)

	conn.Close()
	done()

	// The reader goroutine notices the close and drops the client.
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected client removed after close, still have %d", s.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}
