package protocol

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInbound_CallStart(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"call_start","call_id":"C1","phone_number":"+15550001"}`))
	require.NoError(t, err)

	cs, ok := msg.(CallStart)
	require.True(t, ok)
	assert.Equal(t, TypeCallStart, cs.Type)
	assert.Equal(t, "C1", cs.CallID)
	assert.Equal(t, "+15550001", cs.PhoneNumber)
}

func TestDecodeInbound_StartSessionNested(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"start_session","data":{"call_id":"C2","phone_number":"+1","context":"clinic","language":"fr-FR"}}`))
	require.NoError(t, err)

	cs := msg.(CallStart)
	assert.Equal(t, TypeStartSession, cs.Type)
	assert.Equal(t, "C2", cs.CallID)
	assert.Equal(t, "clinic", cs.Context)
	assert.Equal(t, "fr-FR", cs.Language)
}

func TestDecodeInbound_DefaultsPhoneNumber(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"call_start","call_id":"C1"}`))
	require.NoError(t, err)
	assert.Equal(t, "unknown", msg.(CallStart).PhoneNumber)
}

func TestDecodeInbound_AudioChunk(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString([]byte("wav-bytes"))
	msg, err := DecodeInbound([]byte(`{"type":"audio_chunk","call_id":"C1","audio_data":"` + raw + `"}`))
	require.NoError(t, err)

	ac := msg.(AudioChunk)
	assert.Equal(t, "C1", ac.CallID)
	assert.Equal(t, []byte("wav-bytes"), ac.Audio)

	msg, err = DecodeInbound([]byte(`{"type":"audio_chunk","session_id":"S1","audio_data":"` + raw + `"}`))
	require.NoError(t, err)
	assert.Equal(t, "S1", msg.(AudioChunk).SessionID)
	assert.Empty(t, msg.(AudioChunk).CallID)
}

func TestDecodeInbound_Errors(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		param string
	}{
		{name: "not json", frame: `nope`},
		{name: "missing type", frame: `{"call_id":"C1"}`, param: "type"},
		{name: "unknown type", frame: `{"type":"dance"}`, param: "type"},
		{name: "call_start without id", frame: `{"type":"call_start"}`, param: "call_id"},
		{name: "call_end without id", frame: `{"type":"call_end"}`, param: "call_id"},
		{name: "bad base64", frame: `{"type":"audio_chunk","call_id":"C1","audio_data":"@@@"}`, param: "audio_data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInbound([]byte(tt.frame))
			require.Error(t, err)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, "bad_request", de.Code)
			assert.Equal(t, tt.param, de.Param)
		})
	}
}

func TestEncode(t *testing.T) {
	b, err := Encode(AIResponse{CallID: "C1", SessionID: "S1", Transcript: "hi", TextResponse: "hello", AudioResponse: []byte("mp3")})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, TypeAIResponse, got["type"])
	assert.Equal(t, "hello", got["text_response"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("mp3")), got["audio_response"])

	b, err = Encode(SessionCreated{CallID: "C1", SessionID: "S1", Message: "Hello"})
	require.NoError(t, err)
	got = map[string]any{}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, TypeSessionCreated, got["type"])
	_, hasAudio := got["audio_response"]
	assert.False(t, hasAudio)

	b, err = Encode(ErrorFrom(badRequest("missing type", "type")))
	require.NoError(t, err)
	got = map[string]any{}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, TypeError, got["type"])
	assert.Equal(t, "bad_request", got["code"])

	_, err = Encode(nil)
	assert.Error(t, err)
}
