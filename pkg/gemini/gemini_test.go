package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-receptionist/pkg/gemini"
)

func TestNew_Validate(t *testing.T) {
	if _, err := gemini.New(gemini.Config{}); err == nil {
		t.Fatal("expected error for missing api key")
	}

	c, err := gemini.New(gemini.Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Model() != gemini.DefaultModel {
		t.Errorf("expected default model, got %s", c.Model())
	}
}

func TestGenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		contents := req["contents"].([]any)
		last := contents[len(contents)-1].(map[string]any)
		text := last["parts"].([]any)[0].(map[string]any)["text"].(string)

		switch text {
		case "cause_500":
			w.WriteHeader(http.StatusInternalServerError)
			return
		case "empty":
			w.Write([]byte(`{"candidates":[]}`))
			return
		}

		if _, ok := req["system_instruction"]; !ok {
			t.Errorf("expected system_instruction in request")
		}

		w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "How can "}, {"text": "I help?"}]},
				"finishReason": "STOP"
			}],
			"usageMetadata": {"promptTokenCount": 7, "candidatesTokenCount": 4, "totalTokenCount": 11}
		}`))
	}))
	defer ts.Close()

	client, err := gemini.New(gemini.Config{APIKey: "test-api-key", APIURL: ts.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Success Flow", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), &gemini.Request{
			SystemInstruction: "You are a receptionist.",
			Messages: []gemini.Message{
				{Role: "user", Text: "Hi"},
				{Role: "model", Text: "Hello"},
				{Role: "user", Text: "I need help"},
			},
			Temperature: 0.7,
			MaxTokens:   150,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text != "How can I help?" {
			t.Errorf("unexpected text %q", resp.Text)
		}
		if resp.Usage.TotalTokens != 11 {
			t.Errorf("expected 11 total tokens, got %d", resp.Usage.TotalTokens)
		}
	})

	t.Run("Server Error", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), &gemini.Request{
			Messages: []gemini.Message{{Role: "user", Text: "cause_500"}},
		})
		if err == nil {
			t.Fatal("expected error")
		}
		var apiErr *gemini.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected 500 API error, got %v", err)
		}
		if gemini.StatusCode(err) != http.StatusInternalServerError {
			t.Errorf("expected StatusCode 500, got %d", gemini.StatusCode(err))
		}
	})

	t.Run("No Candidates", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), &gemini.Request{
			Messages: []gemini.Message{{Role: "user", Text: "empty"}},
		})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}
