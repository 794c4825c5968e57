package model

import (
	"testing"
	"time"
)

func TestConversationSession_Append(t *testing.T) {
	now := time.Now()
	s := ConversationSession{SessionID: "s1"}
	s.Append(RoleUser, "hi", now)
	s.Append(RoleAssistant, "hello", now.Add(time.Second))

	if len(s.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(s.Messages))
	}
	if s.Messages[0].Role != RoleUser || s.Messages[1].Role != RoleAssistant {
		t.Errorf("expected user then assistant, got %s then %s", s.Messages[0].Role, s.Messages[1].Role)
	}
	if !s.Messages[1].Timestamp.Equal(now.Add(time.Second)) {
		t.Errorf("expected timestamp to be kept, got %v", s.Messages[1].Timestamp)
	}
}
