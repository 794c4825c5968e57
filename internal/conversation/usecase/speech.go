package usecase

import (
	"context"
	"fmt"
	"strings"

	"ai-receptionist/internal/conversation"
)

// Transcribe converts audio to text outside of any session.
func (uc *implUseCase) Transcribe(ctx context.Context, input conversation.TranscribeInput) (conversation.TranscribeOutput, error) {
	language := defaultString(input.Language, conversation.DefaultLanguage)
	if uc.transcriber == nil {
		return conversation.TranscribeOutput{}, fmt.Errorf("%w: %v", conversation.ErrTranscribeFailed, conversation.ErrCapabilityMissing)
	}

	tctx, cancel := context.WithTimeout(ctx, uc.cfg.CapabilityTimeout)
	defer cancel()

	text, err := uc.transcriber.Transcribe(tctx, input.Audio, language)
	if err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.Transcribe: %v", err)
		return conversation.TranscribeOutput{}, fmt.Errorf("%w: %v", conversation.ErrTranscribeFailed, err)
	}

	return conversation.TranscribeOutput{
		Transcript: strings.TrimSpace(text),
		Language:   language,
		Confidence: conversation.DefaultConfidence,
	}, nil
}

// Synthesize converts text to audio outside of any session.
func (uc *implUseCase) Synthesize(ctx context.Context, input conversation.SynthesizeInput) (conversation.SynthesizeOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return conversation.SynthesizeOutput{}, conversation.ErrEmptyText
	}
	if uc.synthesizer == nil {
		return conversation.SynthesizeOutput{}, fmt.Errorf("%w: %v", conversation.ErrSynthesizeFailed, conversation.ErrCapabilityMissing)
	}

	sctx, cancel := context.WithTimeout(ctx, uc.cfg.CapabilityTimeout)
	defer cancel()

	audio, err := uc.synthesizer.Synthesize(sctx, input.Text)
	if err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.Synthesize: %v", err)
		return conversation.SynthesizeOutput{}, fmt.Errorf("%w: %v", conversation.ErrSynthesizeFailed, err)
	}

	return conversation.SynthesizeOutput{Audio: audio, Text: input.Text}, nil
}
