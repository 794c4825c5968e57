package conversation

import (
	"fmt"
	"time"
)

// Canned replies
const (
	WelcomeMessage     = "Hello! How can I help you today?"
	ClarificationReply = "I didn't catch that. Could you please repeat?"
	ApologyReply       = "I apologize, but I'm having difficulty processing your request right now."
)

// Defaults
const (
	DefaultContext  = "receptionist"
	DefaultLanguage = "en-US"
	DefaultTTL      = 3600 * time.Second

	// MaxHistoryWindow bounds how many prior messages reach the model.
	// Older turns stay in the stored history.
	MaxHistoryWindow = 10

	// DefaultConfidence is reported by Transcribe; the recognizer exposes no score.
	DefaultConfidence = 0.95
)

const systemPromptTemplate = `You are a professional AI receptionist for our company. Your role is to:

1. Greet callers warmly and professionally
2. Understand their needs and direct them appropriately
3. Provide helpful information about our services
4. Schedule appointments or transfer calls when needed
5. Handle common inquiries efficiently

Guidelines:
- Keep responses concise and professional
- Be helpful and courteous at all times
- If you cannot help with something, offer to transfer to a human
- Remember the caller's phone number is %s
- Context: %s

Always maintain a friendly, professional tone and ask clarifying questions when needed.`

// BuildSystemPrompt renders the receptionist persona for one caller.
func BuildSystemPrompt(context, phoneNumber string) string {
	return fmt.Sprintf(systemPromptTemplate, phoneNumber, context)
}
