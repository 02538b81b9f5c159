package realtime_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/civichub/internal/app/realtime"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func dial(t *testing.T, hub *realtime.Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	waitForClients(t, hub, 1)
	return conn
}

func waitForClients(t *testing.T, hub *realtime.Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestEmitReachesConnectedClient(t *testing.T) {
	hub := realtime.NewHub(zap.NewNop())
	go hub.Run()

	conn := dial(t, hub)
	hub.Emit("comment_added", map[string]string{"text": "hello"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev realtime.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Name != "comment_added" {
		t.Errorf("event = %q, want comment_added", ev.Name)
	}
	payload, ok := ev.Payload.(map[string]interface{})
	if !ok || payload["text"] != "hello" {
		t.Errorf("payload = %#v", ev.Payload)
	}
	if ev.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestCloseUnregistersClient(t *testing.T) {
	hub := realtime.NewHub(zap.NewNop())
	go hub.Run()

	conn := dial(t, hub)
	conn.Close()
	waitForClients(t, hub, 0)
}

func TestEmitWithNoClientsDoesNotBlock(t *testing.T) {
	hub := realtime.NewHub(zap.NewNop())
	go hub.Run()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			hub.Emit("adoption_created", i)
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emit blocked with no clients connected")
	}
}
