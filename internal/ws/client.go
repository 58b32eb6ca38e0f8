package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// clientConn is one websocket connection. The mutex serializes writes: the
// room goroutine, targeted replies and the pinger all write concurrently.
type clientConn struct {
	id      string
	rawConn *websocket.Conn
	mu      sync.Mutex
}

func (c *clientConn) ID() string { return c.id }

// Send implements game.Conn. Delivery is best-effort: a dead connection is
// noticed and cleaned up by its reader loop, not here.
func (c *clientConn) Send(msgType string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.rawConn.WriteJSON(outEnvelope{Type: msgType, Payload: payload})
}

func (c *clientConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rawConn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}
