package websocket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"ai-receptionist/internal/relay/protocol"
)

// connection serialises writes to one websocket. It is the relay.Sender of every
// call started on it.
type connection struct {
	id           string
	ws           *websocket.Conn
	writeTimeout time.Duration

	writeMu   sync.Mutex
	closeOnce sync.Once
}

func newConnection(id string, ws *websocket.Conn, writeTimeout time.Duration) *connection {
	return &connection{id: id, ws: ws, writeTimeout: writeTimeout}
}

// Send encodes msg and writes it as one text frame.
func (c *connection) Send(ctx context.Context, msg protocol.Outbound) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(c.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = c.ws.SetWriteDeadline(deadline)
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("websocket write: %w", err)
	}
	return nil
}

func (c *connection) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(c.writeTimeout))
}

// close sends a close frame and releases the socket; safe to call more than once.
func (c *connection) close(code int, reason string) {
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(c.writeTimeout))
		c.writeMu.Unlock()
		_ = c.ws.Close()
	})
}
