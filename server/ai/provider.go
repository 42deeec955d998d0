// Package ai is the boundary to the external text-completion service.
// The provider never touches conversation state; it turns a message window
// into one request and classifies whatever comes back.
package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"

	apierr "github.com/Dilshanrad22/mind-case-backend/server/internal/errors"
)

// Invocation policy. These are fixed per deployment, not negotiable per request.
const (
	maxCompletionTokens = 500
	temperature         = 0.7
	presencePenalty     = 0.6
	frequencyPenalty    = 0.5
)

// Message is one entry of the conversation window sent upstream.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// CompletionGateway produces the next assistant message for a window of
// prior messages, or a classified failure.
type CompletionGateway interface {
	// Ready reports whether the gateway is usable; a missing credential
	// yields a configuration error.
	Ready() error
	// Complete sends the window upstream and returns the assistant text
	// verbatim.
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Config holds the completion provider configuration.
type Config struct {
	BaseURL   string
	APIKey    string
	ChatModel string
	Timeout   time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "https://api.openai.com/v1",
		ChatModel: "gpt-4o-mini",
		Timeout:   30 * time.Second,
	}
}

// Provider implements CompletionGateway on top of an OpenAI-compatible API.
type Provider struct {
	client *openai.Client
	config *Config
}

// NewProvider creates a new completion provider.
func NewProvider(cfg *Config) *Provider {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

func (p *Provider) Ready() error {
	if p.config.APIKey == "" {
		return apierr.Configuration("completion service credential is not configured")
	}
	return nil
}

// Complete performs a single chat completion. It is never retried here;
// retry is the caller's responsibility.
func (p *Provider) Complete(ctx context.Context, messages []Message) (string, error) {
	if err := p.Ready(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	window := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		window[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:            p.config.ChatModel,
		Messages:         window,
		MaxTokens:        maxCompletionTokens,
		Temperature:      temperature,
		PresencePenalty:  presencePenalty,
		FrequencyPenalty: frequencyPenalty,
	})
	if err != nil {
		slog.Error("completion request failed",
			slog.String("model", p.config.ChatModel),
			slog.Int("window_size", len(window)),
			slog.String("error", err.Error()),
		)
		return "", apierr.Upstream("failed to get AI response", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", apierr.EmptyResponse("no response from AI")
	}

	return resp.Choices[0].Message.Content, nil
}
