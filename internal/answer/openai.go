package answer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"docq/internal/domain"
)

// OpenAIAnswerer generates answers through the OpenAI chat completions API.
type OpenAIAnswerer struct {
	client *openai.Client
	cfg    GenerationConfig
}

// Config configures the chat client. BaseURL may point at any
// OpenAI-compatible endpoint; the API key is read from APIKeyEnv.
type Config struct {
	BaseURL    string
	APIKeyEnv  string
	Generation GenerationConfig
}

func NewOpenAIAnswerer(cfg Config) (*OpenAIAnswerer, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	gen := cfg.Generation
	gen.applyDefaults()
	return &OpenAIAnswerer{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    gen,
	}, nil
}

func (a *OpenAIAnswerer) Answer(ctx context.Context, contextChunks []string, question string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.cfg.Model,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
		TopP:        a.cfg.TopP,
		Stop:        a.cfg.Stop,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: a.cfg.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(contextChunks, question)},
		},
	})
	if err != nil {
		return "", &domain.AnswererError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &domain.AnswererError{Err: errors.New("empty completion response")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
