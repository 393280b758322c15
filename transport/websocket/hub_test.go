package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestClient(hub *Hub, sessionID string, buffer int) *Client {
	return &Client{hub: hub, sessionID: sessionID, send: make(chan []byte, buffer)}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session", 256)

	hub.registerClient(client)
	if !hub.sessions["test-session"][client] {
		t.Fatal("Client was not registered in session")
	}

	hub.unregisterClient(client)
	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}

	// a second unregister must not close the channel twice
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	client1 := newTestClient(hub, "multi", 256)
	client2 := newTestClient(hub, "multi", 256)
	hub.registerClient(client1)
	hub.registerClient(client2)

	hub.unregisterClient(client1)
	if len(hub.sessions["multi"]) != 1 || !hub.sessions["multi"][client2] {
		t.Errorf("Expected only client2 to remain, got %v", hub.sessions["multi"])
	}
}

func TestHubBroadcastMessage(t *testing.T) {
	hub := NewHub()
	watcher := newTestClient(hub, "s1", 256)
	other := newTestClient(hub, "s2", 256)
	hub.registerClient(watcher)
	hub.registerClient(other)

	hub.broadcastMessage(&Message{SessionID: "s1", Event: EventTilePlaced, Data: map[string]int{"x": 2}})

	select {
	case data := <-watcher.send:
		var message struct {
			SessionID string         `json:"session_id"`
			Event     string         `json:"event"`
			Data      map[string]int `json:"data"`
		}
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.SessionID != "s1" || message.Event != EventTilePlaced || message.Data["x"] != 2 {
			t.Errorf("Unexpected message: %+v", message)
		}
	default:
		t.Fatal("Watcher received nothing")
	}

	select {
	case data := <-other.send:
		t.Errorf("Other session received %s", data)
	default:
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := newTestClient(hub, "s1", 0)
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{SessionID: "s1", Event: EventTokenPlaced})

	if _, exists := hub.sessions["s1"]; exists {
		t.Error("Slow client should have been unregistered")
	}
	if _, ok := <-slow.send; ok {
		t.Error("Slow client channel should be closed")
	}
}

func TestHubBroadcastQueue(t *testing.T) {
	hub := NewHub()

	hub.Broadcast("q", EventNatureSpent, 1)
	select {
	case message := <-hub.broadcast:
		if message.SessionID != "q" || message.Event != EventNatureSpent || message.Data != 1 {
			t.Errorf("Unexpected message: %+v", message)
		}
	default:
		t.Fatal("Broadcast did not queue a message")
	}

	// without Run the queue fills up and further events are dropped
	for i := 0; i < broadcastBuffer+10; i++ {
		hub.Broadcast("q", EventNatureSpent, i)
	}
	if len(hub.broadcast) != broadcastBuffer {
		t.Errorf("Expected a full queue of %d, got %d", broadcastBuffer, len(hub.broadcast))
	}
}

func newWSServer(t *testing.T, hub *Hub) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"))
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func waitForClients(t *testing.T, hub *Hub, sessionID string, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount(sessionID) != want {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients in %s, got %d", want, sessionID, hub.ClientCount(sessionID))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebSocketLifecycle(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	url := newWSServer(t, hub)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?session=ws-test", nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	waitForClients(t, hub, "ws-test", 1)

	conn.Close()
	waitForClients(t, hub, "ws-test", 0)
}

func TestWebSocketMessageReceive(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	url := newWSServer(t, hub)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?session=msg-test", nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()
	waitForClients(t, hub, "msg-test", 1)

	hub.Broadcast("msg-test", EventScoresFinal, []string{"ana", "bo"})
	hub.Broadcast("msg-test", EventSessionDeleted, nil)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	for _, want := range []string{EventScoresFinal, EventSessionDeleted} {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Failed to read WebSocket message: %v", err)
		}
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.SessionID != "msg-test" || message.Event != want {
			t.Errorf("Expected %s, got %+v", want, message)
		}
	}
}
