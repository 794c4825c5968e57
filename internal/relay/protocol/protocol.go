package protocol

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Inbound message types.
const (
	TypeCallStart    = "call_start"
	TypeStartSession = "start_session"
	TypeAudioChunk   = "audio_chunk"
	TypeCallEnd      = "call_end"
)

// Outbound message types.
const (
	TypeSessionCreated = "session_created"
	TypeAIResponse     = "ai_response"
	TypeError          = "error"
)

type DecodeError struct {
	Code    string
	Message string
	Param   string
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	if strings.TrimSpace(e.Param) == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Param)
}

func badRequest(message, param string) *DecodeError {
	return &DecodeError{Code: "bad_request", Message: message, Param: param}
}

// Inbound is one decoded client frame: CallStart, AudioChunk or CallEnd.
type Inbound interface {
	inbound()
}

// CallStart opens a call. Both the telephony "call_start" and the engine's
// "start_session" frames decode to it; Type keeps the original name.
type CallStart struct {
	Type        string `json:"type"`
	CallID      string `json:"call_id"`
	PhoneNumber string `json:"phone_number"`
	Context     string `json:"context,omitempty"`
	Language    string `json:"language,omitempty"`
}

// AudioChunk carries one utterance. CallID may be empty when the sender only
// knows its session.
type AudioChunk struct {
	CallID    string
	SessionID string
	Audio     []byte
}

type CallEnd struct {
	CallID string `json:"call_id"`
}

func (CallStart) inbound()  {}
func (AudioChunk) inbound() {}
func (CallEnd) inbound()    {}

type audioChunkFrame struct {
	CallID    string `json:"call_id"`
	SessionID string `json:"session_id"`
	AudioData string `json:"audio_data"`
}

// DecodeInbound parses one text frame. Unknown types are errors.
func DecodeInbound(data []byte) (Inbound, error) {
	var envelope struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, badRequest("invalid json frame", "")
	}
	typ := strings.TrimSpace(envelope.Type)
	if typ == "" {
		return nil, badRequest("missing type", "type")
	}

	switch typ {
	case TypeCallStart, TypeStartSession:
		var msg CallStart
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, badRequest("invalid "+typ+" frame", "")
		}
		if typ == TypeStartSession && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
			var nested CallStart
			if err := json.Unmarshal(envelope.Data, &nested); err != nil {
				return nil, badRequest("invalid start_session.data", "data")
			}
			mergeCallStart(&msg, nested)
		}
		msg.Type = typ
		msg.CallID = strings.TrimSpace(msg.CallID)
		if msg.CallID == "" {
			return nil, badRequest(typ+".call_id is required", "call_id")
		}
		if strings.TrimSpace(msg.PhoneNumber) == "" {
			msg.PhoneNumber = "unknown"
		}
		return msg, nil
	case TypeAudioChunk:
		var frame audioChunkFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return nil, badRequest("invalid audio_chunk frame", "")
		}
		audio, err := base64.StdEncoding.DecodeString(strings.TrimSpace(frame.AudioData))
		if err != nil {
			return nil, badRequest("audio_chunk.audio_data must be base64", "audio_data")
		}
		return AudioChunk{
			CallID:    strings.TrimSpace(frame.CallID),
			SessionID: strings.TrimSpace(frame.SessionID),
			Audio:     audio,
		}, nil
	case TypeCallEnd:
		var msg CallEnd
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, badRequest("invalid call_end frame", "")
		}
		msg.CallID = strings.TrimSpace(msg.CallID)
		if msg.CallID == "" {
			return nil, badRequest("call_end.call_id is required", "call_id")
		}
		return msg, nil
	default:
		return nil, badRequest("unsupported message type", "type")
	}
}

func mergeCallStart(dst *CallStart, src CallStart) {
	if dst.CallID == "" {
		dst.CallID = src.CallID
	}
	if dst.PhoneNumber == "" {
		dst.PhoneNumber = src.PhoneNumber
	}
	if dst.Context == "" {
		dst.Context = src.Context
	}
	if dst.Language == "" {
		dst.Language = src.Language
	}
}

// Outbound is one server frame: SessionCreated, AIResponse or Error.
type Outbound interface {
	outbound()
}

// SessionCreated confirms a call is bound to a conversation session.
type SessionCreated struct {
	Type          string `json:"type"`
	CallID        string `json:"call_id"`
	SessionID     string `json:"session_id"`
	Message       string `json:"message"`
	AudioResponse []byte `json:"audio_response,omitempty"`
}

// AIResponse carries the reply to one audio chunk. Audio is base64 in JSON.
type AIResponse struct {
	Type          string `json:"type"`
	CallID        string `json:"call_id"`
	SessionID     string `json:"session_id"`
	Transcript    string `json:"transcript"`
	TextResponse  string `json:"text_response"`
	AudioResponse []byte `json:"audio_response,omitempty"`
}

// Error reports a frame the server could not accept.
type Error struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

func (SessionCreated) outbound() {}
func (AIResponse) outbound()     {}
func (Error) outbound()          {}

// ErrorFrom converts a decode failure into an Error frame.
func ErrorFrom(err error) Error {
	if de, ok := err.(*DecodeError); ok && de != nil {
		return Error{Code: de.Code, Message: de.Message, Param: de.Param}
	}
	return Error{Code: "internal", Message: err.Error()}
}

// Encode marshals msg with its type tag set.
func Encode(msg Outbound) ([]byte, error) {
	switch m := msg.(type) {
	case SessionCreated:
		m.Type = TypeSessionCreated
		return json.Marshal(m)
	case AIResponse:
		m.Type = TypeAIResponse
		return json.Marshal(m)
	case Error:
		m.Type = TypeError
		return json.Marshal(m)
	default:
		return nil, fmt.Errorf("protocol: unsupported outbound message %T", msg)
	}
}
