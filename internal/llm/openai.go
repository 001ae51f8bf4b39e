package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"github.com/vedantk/helixar-go/internal/config"
)

// OpenAIClient implements Client over the OpenAI chat completions API.
// A custom base URL makes it usable against OpenAI-compatible endpoints.
type OpenAIClient struct {
	client            *openai.Client
	model             string
	systemInstruction string
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAI creates a new OpenAI-backed Client.
func NewOpenAI(cfg config.LLMConfig) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		client:            openai.NewClientWithConfig(clientConfig),
		model:             cfg.Model,
		systemInstruction: cfg.SystemInstruction,
	}
}

// Complete sends a single-turn completion request and returns the reply
// text. One attempt, no retry; the caller decides what a failure means.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
