package usecase

import (
	"context"
	"strings"

	"ai-receptionist/internal/conversation"
	"ai-receptionist/internal/model"
	pkgLog "ai-receptionist/pkg/log"
)

// ProcessTurn runs one dialogue turn: transcribe, answer, persist, speak.
// Only session lookup failures are returned; every capability failure degrades the reply instead.
func (uc *implUseCase) ProcessTurn(ctx context.Context, input conversation.ProcessTurnInput) (conversation.TurnResult, error) {
	ctx = pkgLog.WithFields(ctx, "session_id", input.SessionID)

	// Step 1: Load the session
	session, err := uc.loadSession(ctx, input.SessionID)
	if err != nil {
		return conversation.TurnResult{}, err
	}

	result := conversation.TurnResult{SessionID: session.SessionID}

	// Step 2: Speech to text
	transcript := strings.TrimSpace(uc.transcribe(ctx, input.Audio, session.Language))
	if transcript == "" {
		session.LastActivityAt = uc.now()
		uc.saveSession(ctx, session)
		result.ReplyText = conversation.ClarificationReply
		return result, nil
	}
	result.Transcript = transcript

	uc.l.Infof(ctx, "conversation.usecase.ProcessTurn: transcribed %d chars", len(transcript))

	// Step 3 and 4: Append the user turn and build the bounded prompt
	userMsg := model.Message{Role: model.RoleUser, Content: transcript, Timestamp: uc.now()}
	window := buildWindow(session.Messages, userMsg)
	session.Messages = append(session.Messages, userMsg)

	// Step 5: Generate the reply
	reply := uc.generate(ctx, conversation.BuildSystemPrompt(session.Context, session.PhoneNumber), window)

	// Step 6 and 7: Append the assistant turn and persist
	now := uc.now()
	session.Append(model.RoleAssistant, reply, now)
	session.LastActivityAt = now
	uc.saveSession(ctx, session)

	result.ReplyText = reply

	// Step 8: Text to speech
	result.ReplyAudio = uc.synthesize(ctx, reply)

	return result, nil
}

func (uc *implUseCase) transcribe(ctx context.Context, audio []byte, language string) string {
	if len(audio) == 0 {
		return ""
	}
	if uc.transcriber == nil {
		uc.l.Warnf(ctx, "conversation.usecase.transcribe: %v", conversation.ErrCapabilityMissing)
		return ""
	}

	tctx, cancel := context.WithTimeout(ctx, uc.cfg.CapabilityTimeout)
	defer cancel()

	text, err := uc.transcriber.Transcribe(tctx, audio, language)
	if err != nil {
		uc.l.Warnf(ctx, "conversation.usecase.transcribe: %v", err)
		return ""
	}
	return text
}

func (uc *implUseCase) generate(ctx context.Context, systemPrompt string, window []model.Message) string {
	if uc.generator == nil {
		uc.l.Warnf(ctx, "conversation.usecase.generate: %v", conversation.ErrCapabilityMissing)
		return conversation.ApologyReply
	}

	gctx, cancel := context.WithTimeout(ctx, uc.cfg.CapabilityTimeout)
	defer cancel()

	reply, err := uc.generator.Generate(gctx, systemPrompt, window)
	if err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.generate: %v", err)
		return conversation.ApologyReply
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		uc.l.Warnf(ctx, "conversation.usecase.generate: empty reply")
		return conversation.ApologyReply
	}
	return reply
}

// synthesize returns nil when no audio could be produced.
func (uc *implUseCase) synthesize(ctx context.Context, text string) []byte {
	if uc.synthesizer == nil || strings.TrimSpace(text) == "" {
		return nil
	}

	sctx, cancel := context.WithTimeout(ctx, uc.cfg.CapabilityTimeout)
	defer cancel()

	audio, err := uc.synthesizer.Synthesize(sctx, text)
	if err != nil {
		uc.l.Warnf(ctx, "conversation.usecase.synthesize: %v", err)
		return nil
	}
	if len(audio) == 0 {
		return nil
	}
	return audio
}
