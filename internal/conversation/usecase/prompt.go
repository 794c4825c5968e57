package usecase

import (
	"ai-receptionist/internal/conversation"
	"ai-receptionist/internal/model"
)

// buildWindow returns the last MaxHistoryWindow messages of history followed by the new turn.
// The result never aliases history.
func buildWindow(history []model.Message, turn model.Message) []model.Message {
	start := 0
	if len(history) > conversation.MaxHistoryWindow {
		start = len(history) - conversation.MaxHistoryWindow
	}
	out := make([]model.Message, 0, len(history)-start+1)
	out = append(out, history[start:]...)
	return append(out, turn)
}
