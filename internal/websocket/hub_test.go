package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitRecv receives one message from a client's Send channel or fails the test.
// Hub delivery is asynchronous (the loop runs in its own goroutine), so every
// receive needs a timeout to turn a hang into a clean failure.
func waitRecv(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case data, ok := <-ch:
		require.True(t, ok, "channel closed while a message was expected")
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a broadcast")
		return nil
	}
}

func TestHub_BroadcastReachesOnlyItsRound(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := &Client{RoundID: "round-a", Send: make(chan []byte, 8)}
	b := &Client{RoundID: "round-b", Send: make(chan []byte, 8)}
	hub.Register(a)
	hub.Register(b)

	hub.BroadcastToRound("round-a", []byte(`{"hole":1}`))
	hub.BroadcastToRound("round-b", []byte(`{"hole":2}`))

	assert.Equal(t, []byte(`{"hole":1}`), waitRecv(t, a.Send))
	assert.Equal(t, []byte(`{"hole":2}`), waitRecv(t, b.Send))
	assert.Empty(t, a.Send, "a round-b broadcast must not reach round-a watchers")
}

// A watcher that stops draining its Send channel must be dropped by the Hub —
// without blocking the broadcast, and without wedging the Hub's event loop so
// that later registrations and broadcasts hang.
func TestHub_SlowWatcherIsDroppedWithoutBlocking(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// One-slot buffer: the first broadcast fills it, the second overflows it.
	slow := &Client{RoundID: "round-a", Send: make(chan []byte, 1)}
	other := &Client{RoundID: "round-b", Send: make(chan []byte, 8)}
	hub.Register(slow)
	hub.Register(other)

	hub.BroadcastToRound("round-a", []byte(`{"n":1}`))
	hub.BroadcastToRound("round-a", []byte(`{"n":2}`))
	// Broadcasts are processed strictly in order, so this message arriving at
	// the other round proves the overflow above has been fully handled.
	hub.BroadcastToRound("round-b", []byte(`{"n":3}`))
	assert.Equal(t, []byte(`{"n":3}`), waitRecv(t, other.Send))

	// The slow watcher keeps what it had room for; behind it the Hub closed
	// the channel — the signal its connection handler uses to shut down.
	assert.Equal(t, []byte(`{"n":1}`), waitRecv(t, slow.Send))
	_, ok := <-slow.Send
	assert.False(t, ok, "dropped watcher's Send channel should be closed")

	// The loop is still alive: a new watcher can register and receive. A
	// wedged loop would block Register forever.
	fresh := &Client{RoundID: "round-a", Send: make(chan []byte, 8)}
	registered := make(chan struct{})
	go func() {
		hub.Register(fresh)
		close(registered)
	}()
	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped accepting registrations after dropping a slow watcher")
	}
	hub.BroadcastToRound("round-a", []byte(`{"n":4}`))
	assert.Equal(t, []byte(`{"n":4}`), waitRecv(t, fresh.Send))
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{RoundID: "round-a", Send: make(chan []byte, 1)}
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, ok := <-client.Send:
		assert.False(t, ok, "Send should be closed, not sent data")
	case <-time.After(2 * time.Second):
		t.Fatal("Send channel was not closed on unregister")
	}

	// Unregistering twice (the connection handler may race the Hub's own
	// slow-watcher drop) must be harmless — no panic from a double close.
	hub.Unregister(client)
}
