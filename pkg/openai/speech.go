package openai

import (
	"context"
	"fmt"
	"io"
	"strings"

	openaigo "github.com/openai/openai-go/v3"
)

// Synthesize converts text to speech with the configured voice and format.
func (o *openaiImpl) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("openai: speech: empty input")
	}

	resp, err := o.client.Audio.Speech.New(ctx, openaigo.AudioSpeechNewParams{
		Model:          openaigo.SpeechModel(o.cfg.TTSModel),
		Input:          text,
		Voice:          openaigo.AudioSpeechNewParamsVoice(o.cfg.Voice),
		ResponseFormat: openaigo.AudioSpeechNewParamsResponseFormat(o.cfg.Format),
	})
	if err != nil {
		return nil, fmt.Errorf("openai: speech: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: speech: read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("openai: speech: empty audio")
	}
	return audio, nil
}
