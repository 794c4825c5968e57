package websocket

import (
	"context"

	"github.com/gorilla/websocket"
)

// register returns false once Close has started.
func (h *handler) register(conn *connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns == nil {
		return false
	}
	h.conns[conn.id] = conn
	h.wg.Add(1)
	return true
}

func (h *handler) unregister(conn *connection) {
	h.mu.Lock()
	if h.conns != nil {
		delete(h.conns, conn.id)
	}
	h.mu.Unlock()
	h.wg.Done()
}

func (h *handler) Connections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *handler) Close(ctx context.Context) error {
	h.mu.Lock()
	open := make([]*connection, 0, len(h.conns))
	for _, conn := range h.conns {
		open = append(open, conn)
	}
	h.conns = nil
	h.mu.Unlock()

	for _, conn := range open {
		conn.close(websocket.CloseGoingAway, "server shutting down")
	}

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
