package http

import (
	"encoding/base64"
	"time"

	"ai-receptionist/internal/conversation"
	"ai-receptionist/internal/model"
)

// --- Request DTOs ---

type createSessionReq struct {
	CallID      string `json:"call_id"      binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Context     string `json:"context"`
	Language    string `json:"language"`
}

func (r createSessionReq) toInput() conversation.CreateSessionInput {
	return conversation.CreateSessionInput{
		CallID:      r.CallID,
		PhoneNumber: r.PhoneNumber,
		Context:     r.Context,
		Language:    r.Language,
	}
}

// ---

type processReq struct {
	SessionID string `json:"session_id" binding:"required"`
	AudioData string `json:"audio_data" binding:"required"`
	Format    string `json:"format"`

	audio []byte
}

func (r processReq) toInput() conversation.ProcessTurnInput {
	return conversation.ProcessTurnInput{
		SessionID: r.SessionID,
		Audio:     r.audio,
	}
}

// ---

type transcribeReq struct {
	AudioData string `json:"audio_data" binding:"required"`
	Language  string `json:"language"`

	audio []byte
}

func (r transcribeReq) toInput() conversation.TranscribeInput {
	return conversation.TranscribeInput{
		Audio:    r.audio,
		Language: r.Language,
	}
}

// ---

// Voice is accepted for compatibility; the configured voice is always used.
type synthesizeReq struct {
	Text   string `json:"text" binding:"required"`
	Voice  string `json:"voice"`
	Format string `json:"format"`
}

func (r synthesizeReq) toInput() conversation.SynthesizeInput {
	return conversation.SynthesizeInput{Text: r.Text}
}

// --- Response DTOs ---

type createSessionResp struct {
	SessionID      string `json:"session_id"`
	Status         string `json:"status"`
	WelcomeMessage string `json:"welcome_message"`
}

func (h *handler) newCreateSessionResp(out conversation.CreateSessionOutput) createSessionResp {
	return createSessionResp{
		SessionID:      out.SessionID,
		Status:         "created",
		WelcomeMessage: out.WelcomeMessage,
	}
}

type messageResp struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type sessionResp struct {
	SessionID    string         `json:"session_id"`
	CallID       string         `json:"call_id"`
	PhoneNumber  string         `json:"phone_number"`
	Context      string         `json:"context"`
	Language     string         `json:"language"`
	CreatedAt    time.Time      `json:"created_at"`
	LastActivity time.Time      `json:"last_activity"`
	Messages     []messageResp  `json:"messages"`
	UserProfile  map[string]any `json:"user_profile"`
}

func (h *handler) newSessionResp(s model.ConversationSession) sessionResp {
	msgs := make([]messageResp, len(s.Messages))
	for i, m := range s.Messages {
		msgs[i] = messageResp{Role: string(m.Role), Content: m.Content, Timestamp: m.Timestamp}
	}
	profile := s.UserProfile
	if profile == nil {
		profile = map[string]any{}
	}
	return sessionResp{
		SessionID:    s.SessionID,
		CallID:       s.CallID,
		PhoneNumber:  s.PhoneNumber,
		Context:      s.Context,
		Language:     s.Language,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivityAt,
		Messages:     msgs,
		UserProfile:  profile,
	}
}

type endSessionResp struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
}

type processResp struct {
	TextResponse  string  `json:"text_response"`
	Transcript    string  `json:"transcript"`
	AudioResponse *string `json:"audio_response"`
	SessionID     string  `json:"session_id"`
}

func (h *handler) newProcessResp(out conversation.TurnResult) processResp {
	return processResp{
		TextResponse:  out.ReplyText,
		Transcript:    out.Transcript,
		AudioResponse: encodeAudio(out.ReplyAudio),
		SessionID:     out.SessionID,
	}
}

type transcribeResp struct {
	Transcript string  `json:"transcript"`
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

func (h *handler) newTranscribeResp(out conversation.TranscribeOutput) transcribeResp {
	return transcribeResp{
		Transcript: out.Transcript,
		Language:   out.Language,
		Confidence: out.Confidence,
	}
}

type synthesizeResp struct {
	AudioData string `json:"audio_data"`
	Format    string `json:"format"`
	Text      string `json:"text"`
}

func (h *handler) newSynthesizeResp(out conversation.SynthesizeOutput, format string) synthesizeResp {
	if format == "" {
		format = defaultAudioFormat
	}
	return synthesizeResp{
		AudioData: base64.StdEncoding.EncodeToString(out.Audio),
		Format:    format,
		Text:      out.Text,
	}
}

const defaultAudioFormat = "mp3"

func encodeAudio(audio []byte) *string {
	if len(audio) == 0 {
		return nil
	}
	s := base64.StdEncoding.EncodeToString(audio)
	return &s
}
