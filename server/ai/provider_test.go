package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierr "github.com/Dilshanrad22/mind-case-backend/server/internal/errors"
)

func newTestProvider(upstreamURL string) *Provider {
	return NewProvider(&Config{
		BaseURL:   upstreamURL,
		APIKey:    "test-key",
		ChatModel: "gpt-4o-mini",
		Timeout:   5 * time.Second,
	})
}

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestProvider_ReadyRequiresCredential(t *testing.T) {
	provider := NewProvider(&Config{APIKey: ""})
	err := provider.Ready()
	require.Error(t, err)
	assert.Equal(t, apierr.CodeConfiguration, apierr.CodeOf(err))

	_, err = provider.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Equal(t, apierr.CodeConfiguration, apierr.CodeOf(err))
}

func TestProvider_CompleteReturnsContentVerbatim(t *testing.T) {
	var gotRequest struct {
		Model            string  `json:"model"`
		MaxTokens        int     `json:"max_tokens"`
		Temperature      float32 `json:"temperature"`
		PresencePenalty  float32 `json:"presence_penalty"`
		FrequencyPenalty float32 `json:"frequency_penalty"`
		Messages         []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(completionBody("  You are doing great.  ")))
	}))
	defer upstream.Close()

	provider := newTestProvider(upstream.URL)
	reply, err := provider.Complete(context.Background(), []Message{
		{Role: "system", Content: "directive"},
		{Role: "user", Content: "how am I doing?"},
	})

	require.NoError(t, err)
	// The reply is passed through untouched, whitespace included.
	assert.Equal(t, "  You are doing great.  ", reply)

	assert.Equal(t, "gpt-4o-mini", gotRequest.Model)
	assert.Equal(t, maxCompletionTokens, gotRequest.MaxTokens)
	assert.InDelta(t, temperature, gotRequest.Temperature, 0.001)
	assert.InDelta(t, presencePenalty, gotRequest.PresencePenalty, 0.001)
	assert.InDelta(t, frequencyPenalty, gotRequest.FrequencyPenalty, 0.001)
	require.Len(t, gotRequest.Messages, 2)
	assert.Equal(t, "system", gotRequest.Messages[0].Role)
}

func TestProvider_CompleteClassifiesUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limited", "type": "rate_limit_error"}}`))
	}))
	defer upstream.Close()

	provider := newTestProvider(upstream.URL)
	_, err := provider.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

	require.Error(t, err)
	assert.Equal(t, apierr.CodeUpstream, apierr.CodeOf(err))
	assert.Equal(t, "failed to get AI response", apierr.MessageOf(err))
}

func TestProvider_CompleteClassifiesEmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"no choices", map[string]any{"choices": []map[string]any{}}},
		{"empty content", completionBody("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				require.NoError(t, json.NewEncoder(w).Encode(tt.body))
			}))
			defer upstream.Close()

			provider := newTestProvider(upstream.URL)
			_, err := provider.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

			require.Error(t, err)
			assert.Equal(t, apierr.CodeEmptyResponse, apierr.CodeOf(err))
		})
	}
}
