package openai

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openaigo "github.com/openai/openai-go/v3"
)

// Transcribe sends WAV audio to the transcription endpoint.
// The locale tag is reduced to its language part ("en-US" -> "en").
func (o *openaiImpl) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	params := openaigo.AudioTranscriptionNewParams{
		File:  openaigo.File(bytes.NewReader(audio), "audio.wav", "audio/wav"),
		Model: openaigo.AudioModel(o.cfg.STTModel),
	}
	if lang := languageCode(language); lang != "" {
		params.Language = openaigo.String(lang)
	}

	resp, err := o.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai: transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

func languageCode(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}
