package websocket

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ai-receptionist/internal/relay"
	"ai-receptionist/internal/relay/protocol"
	"ai-receptionist/pkg/log"
)

// Stream godoc
// @Summary     Call relay stream
// @Description Websocket carrying call_start/start_session, audio_chunk and call_end frames.
// @Tags        Relay
// @Success     101 "Switching Protocols"
// @Router      /ws/stream [GET]
func (h *handler) Stream(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.l.Warnf(c.Request.Context(), "relay.websocket.Stream: upgrade failed: %v", err)
		return
	}

	conn := newConnection(uuid.NewString(), ws, h.cfg.WriteTimeout)
	if !h.register(conn) {
		conn.close(websocket.CloseGoingAway, "server shutting down")
		return
	}
	defer h.unregister(conn)

	ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request.Context()))
	ctx = log.WithFields(ctx, "connection_id", conn.id)
	defer cancel()

	h.l.Infof(ctx, "relay.websocket.Stream: connection opened from %s", c.ClientIP())

	go h.keepAlive(ctx, conn)
	h.readLoop(ctx, conn)

	cancel()
	conn.close(websocket.CloseNormalClosure, "")
	ended := h.uc.Disconnect(ctx, conn.id)
	h.l.Infof(ctx, "relay.websocket.Stream: connection closed, %d call(s) ended", ended)
}

type inboundFrame struct {
	messageType int
	data        []byte
}

// readLoop dispatches frames strictly in order until the socket fails or closes.
func (h *handler) readLoop(ctx context.Context, conn *connection) {
	frames := make(chan inboundFrame)
	go h.readFrames(ctx, conn, frames)

	for f := range frames {
		if f.messageType != websocket.TextMessage {
			h.reject(ctx, conn, &protocol.DecodeError{Code: "bad_request", Message: "frames must be JSON text"})
			continue
		}

		msg, err := protocol.DecodeInbound(f.data)
		if err != nil {
			h.reject(ctx, conn, err)
			continue
		}
		h.dispatch(ctx, conn, msg)
	}
}

// readFrames owns every read on the socket. The deadline is renewed before each read and on
// every pong, so time spent in dispatch never counts against the peer.
func (h *handler) readFrames(ctx context.Context, conn *connection, out chan<- inboundFrame) {
	defer close(out)

	pongWait := 2 * h.cfg.PingInterval
	conn.ws.SetReadLimit(h.cfg.MaxMessageBytes)
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
		messageType, data, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.l.Warnf(ctx, "relay.websocket.readFrames: %v", err)
			}
			return
		}
		out <- inboundFrame{messageType: messageType, data: data}
	}
}

func (h *handler) dispatch(ctx context.Context, conn *connection, msg protocol.Inbound) {
	switch m := msg.(type) {
	case protocol.CallStart:
		err := h.uc.CallStart(ctx, relay.CallStartInput{
			ConnectionID: conn.id,
			CallID:       m.CallID,
			PhoneNumber:  m.PhoneNumber,
			Context:      m.Context,
			Language:     m.Language,
		}, conn)
		if err != nil {
			h.l.Errorf(ctx, "relay.websocket.dispatch: %s %s: %v", m.Type, m.CallID, err)
		}
	case protocol.AudioChunk:
		err := h.uc.AudioChunk(ctx, relay.AudioChunkInput{
			ConnectionID: conn.id,
			CallID:       m.CallID,
			SessionID:    m.SessionID,
			Audio:        m.Audio,
		}, conn)
		switch {
		case err == nil:
		case errors.Is(err, relay.ErrCallNotFound), errors.Is(err, relay.ErrCallNotBound):
			h.l.Warnf(ctx, "relay.websocket.dispatch: audio for call %q ignored: %v", m.CallID, err)
		default:
			h.l.Errorf(ctx, "relay.websocket.dispatch: audio_chunk: %v", err)
		}
	case protocol.CallEnd:
		if err := h.uc.CallEnd(ctx, m.CallID); err != nil {
			h.l.Errorf(ctx, "relay.websocket.dispatch: call_end %s: %v", m.CallID, err)
		}
	default:
		h.l.Errorf(ctx, "relay.websocket.dispatch: unhandled message %T", msg)
	}
}

func (h *handler) reject(ctx context.Context, conn *connection, err error) {
	h.l.Warnf(ctx, "relay.websocket.reject: %v", err)
	if sendErr := conn.Send(ctx, protocol.ErrorFrom(err)); sendErr != nil {
		h.l.Warnf(ctx, "relay.websocket.reject: %v", sendErr)
	}
}

func (h *handler) keepAlive(ctx context.Context, conn *connection) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}
