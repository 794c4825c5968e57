package websocket

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-receptionist/internal/relay"
	"ai-receptionist/internal/relay/protocol"
	"ai-receptionist/pkg/log"
)

type fakeRelay struct {
	mu           sync.Mutex
	starts       []relay.CallStartInput
	chunks       []relay.AudioChunkInput
	ends         []string
	disconnected chan string
	chunkErr     error
	chunkDelay   time.Duration
}

func newFakeRelay() *fakeRelay {
	return &fakeRelay{disconnected: make(chan string, 4)}
}

func (f *fakeRelay) CallStart(ctx context.Context, input relay.CallStartInput, sender relay.Sender) error {
	f.mu.Lock()
	f.starts = append(f.starts, input)
	f.mu.Unlock()
	return sender.Send(ctx, protocol.SessionCreated{CallID: input.CallID, SessionID: "S1", Message: "Session created"})
}

func (f *fakeRelay) AudioChunk(ctx context.Context, input relay.AudioChunkInput, sender relay.Sender) error {
	f.mu.Lock()
	f.chunks = append(f.chunks, input)
	err := f.chunkErr
	delay := f.chunkDelay
	f.mu.Unlock()
	time.Sleep(delay)
	if err != nil {
		return err
	}
	return sender.Send(ctx, protocol.AIResponse{
		CallID:        input.CallID,
		SessionID:     "S1",
		Transcript:    "hello",
		TextResponse:  "hi there",
		AudioResponse: []byte("mp3"),
	})
}

func (f *fakeRelay) CallEnd(ctx context.Context, callID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ends = append(f.ends, callID)
	return nil
}

func (f *fakeRelay) Disconnect(ctx context.Context, connectionID string) int {
	f.disconnected <- connectionID
	return 0
}

func (f *fakeRelay) Call(callID string) (relay.CallSession, bool) { return relay.CallSession{}, false }
func (f *fakeRelay) ActiveCalls() int                             { return 0 }

func newTestServer(t *testing.T, uc relay.UseCase) (Handler, string) {
	return newTestServerWithConfig(t, uc, Config{WriteTimeout: time.Second, PingInterval: time.Second})
}

func newTestServerWithConfig(t *testing.T, uc relay.UseCase, cfg Config) (Handler, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := New(log.NewNop(), uc, cfg)
	r := gin.New()
	RegisterRoutes(r, h)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return h, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/stream"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func readFrame(t *testing.T, ws *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)

	var frame map[string]any
	require.NoError(t, json.Unmarshal(data, &frame))
	return frame
}

func TestStream_CallLifecycle(t *testing.T) {
	uc := newFakeRelay()
	_, url := newTestServer(t, uc)
	ws := dial(t, url)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"call_start","call_id":"C1","phone_number":"+15550100"}`)))
	frame := readFrame(t, ws)
	assert.Equal(t, "session_created", frame["type"])
	assert.Equal(t, "C1", frame["call_id"])
	assert.Equal(t, "S1", frame["session_id"])

	audio := base64.StdEncoding.EncodeToString([]byte("wav"))
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"audio_chunk","call_id":"C1","audio_data":"`+audio+`"}`)))
	frame = readFrame(t, ws)
	assert.Equal(t, "ai_response", frame["type"])
	assert.Equal(t, "hi there", frame["text_response"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("mp3")), frame["audio_response"])

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"call_end","call_id":"C1"}`)))
	require.NoError(t, ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))

	var connID string
	select {
	case connID = <-uc.disconnected:
	case <-time.After(2 * time.Second):
		t.Fatal("expected Disconnect after close")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	require.Len(t, uc.starts, 1)
	assert.Equal(t, connID, uc.starts[0].ConnectionID)
	assert.Equal(t, "+15550100", uc.starts[0].PhoneNumber)
	require.Len(t, uc.chunks, 1)
	assert.Equal(t, []byte("wav"), uc.chunks[0].Audio)
	assert.Equal(t, connID, uc.chunks[0].ConnectionID)
	assert.Equal(t, []string{"C1"}, uc.ends)
}

func TestStream_RejectsBadFrames(t *testing.T) {
	uc := newFakeRelay()
	_, url := newTestServer(t, uc)
	ws := dial(t, url)

	tests := []struct {
		name      string
		kind      int
		payload   string
		wantParam string
	}{
		{name: "not json", kind: websocket.TextMessage, payload: `{oops`},
		{name: "unknown type", kind: websocket.TextMessage, payload: `{"type":"dance"}`, wantParam: "type"},
		{name: "missing call id", kind: websocket.TextMessage, payload: `{"type":"call_start"}`, wantParam: "call_id"},
		{name: "bad base64", kind: websocket.TextMessage, payload: `{"type":"audio_chunk","call_id":"C1","audio_data":"***"}`, wantParam: "audio_data"},
		{name: "binary", kind: websocket.BinaryMessage, payload: "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, ws.WriteMessage(tt.kind, []byte(tt.payload)))
			frame := readFrame(t, ws)
			assert.Equal(t, "error", frame["type"])
			assert.Equal(t, "bad_request", frame["code"])
			if tt.wantParam != "" {
				assert.Equal(t, tt.wantParam, frame["param"])
			}
		})
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	assert.Empty(t, uc.starts)
	assert.Empty(t, uc.chunks)
}

func TestStream_UnknownCallAudioKeepsConnection(t *testing.T) {
	uc := newFakeRelay()
	uc.chunkErr = relay.ErrCallNotFound
	_, url := newTestServer(t, uc)
	ws := dial(t, url)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"audio_chunk","call_id":"ghost","audio_data":"AAAA"}`)))
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"call_start","call_id":"C2"}`)))

	frame := readFrame(t, ws)
	assert.Equal(t, "session_created", frame["type"])
	assert.Equal(t, "C2", frame["call_id"])
}

func TestClose_DisconnectsOpenConnections(t *testing.T) {
	uc := newFakeRelay()
	h, url := newTestServer(t, uc)
	ws := dial(t, url)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"call_start","call_id":"C1"}`)))
	readFrame(t, ws)
	assert.Equal(t, 1, h.Connections())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.Close(ctx))

	select {
	case <-uc.disconnected:
	case <-time.After(2 * time.Second):
		t.Fatal("expected Disconnect during Close")
	}
	assert.Equal(t, 0, h.Connections())

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := ws.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestStream_SlowTurnKeepsConnection(t *testing.T) {
	uc := newFakeRelay()
	uc.chunkDelay = 700 * time.Millisecond
	// Read deadline is 2x the ping interval: 200ms, well under the turn.
	_, url := newTestServerWithConfig(t, uc, Config{WriteTimeout: time.Second, PingInterval: 100 * time.Millisecond})
	ws := dial(t, url)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"call_start","call_id":"C1"}`)))
	assert.Equal(t, "session_created", readFrame(t, ws)["type"])

	audio := base64.StdEncoding.EncodeToString([]byte("wav"))
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"audio_chunk","call_id":"C1","audio_data":"`+audio+`"}`)))
	assert.Equal(t, "ai_response", readFrame(t, ws)["type"])

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"call_start","call_id":"C2"}`)))
	frame := readFrame(t, ws)
	assert.Equal(t, "session_created", frame["type"])
	assert.Equal(t, "C2", frame["call_id"])

	select {
	case id := <-uc.disconnected:
		t.Fatalf("connection %s was dropped while the client was alive", id)
	default:
	}
}
