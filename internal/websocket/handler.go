// handler.go — the Fiber route that upgrades an HTTP request to a WebSocket
// connection and bridges it to the Hub. The Hub (hub.go) only knows about
// channels; this file owns the actual network connection.
package websocket

import (
	"github.com/gofiber/fiber/v2"
	// gofiber's websocket package wraps fasthttp/websocket with Fiber's
	// handler signature, so a websocket route registers like any other route.
	"github.com/gofiber/websocket/v2"
)

// Upgrade is plain HTTP middleware placed in front of the websocket route.
// It rejects requests that aren't actually trying to open a WebSocket
// (no "Connection: Upgrade" header) with 426 before any upgrade work happens.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve returns the handler for GET /ws/rounds/:id. Each connection becomes
// one Client registered with the Hub under the round it watches.
//
// The connection is split into the standard two halves:
//   - this goroutine writes: it drains the client's Send channel to the socket
//     until the Hub closes the channel (on unregister)
//   - a reader goroutine discards inbound frames; clients never send us data,
//     but reading is what detects the peer closing the connection
func Serve(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			RoundID: conn.Params("id"),
			Send:    make(chan []byte, 64),
		}
		hub.Register(client)

		// Reader: we ignore the payload, but ReadMessage returning an error
		// is how we learn the client went away.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		// Writer: push every broadcast until the Hub closes Send or the
		// reader reports a dead connection.
		for {
			select {
			case data, ok := <-client.Send:
				if !ok {
					// Hub unregistered us (slow consumer); close politely.
					_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					hub.Unregister(client)
					// Drain until the Hub closes the channel so it never blocks.
					for range client.Send {
					}
					return
				}
			case <-done:
				hub.Unregister(client)
				for range client.Send {
				}
				return
			}
		}
	})
}
