package model

import "time"

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a conversation, in conversation order.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationSession is one logical dialogue bound to one call.
// Messages are append-only; the session is reachable only by SessionID.
type ConversationSession struct {
	SessionID      string         `json:"session_id"`
	CallID         string         `json:"call_id"`
	PhoneNumber    string         `json:"phone_number"`
	Context        string         `json:"context"`
	Language       string         `json:"language"`
	CreatedAt      time.Time      `json:"created_at"`
	LastActivityAt time.Time      `json:"last_activity"`
	Messages       []Message      `json:"messages"`
	UserProfile    map[string]any `json:"user_profile"`
}

// Append adds a message stamped with at.
func (s *ConversationSession) Append(role Role, content string, at time.Time) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content, Timestamp: at})
}
