package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/vedantk/helixar-go/internal/config"
)

// GeminiClient implements Client over the Gemini API, the default
// provider.
type GeminiClient struct {
	client            *genai.Client
	model             string
	systemInstruction string
}

var _ Client = (*GeminiClient)(nil)

// NewGemini creates a new Gemini-backed Client.
func NewGemini(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiClient{
		client:            gc,
		model:             cfg.Model,
		systemInstruction: cfg.SystemInstruction,
	}, nil
}

// Complete sends a single-turn generate-content request and returns the
// reply text, which may be empty when the model returns no text parts.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	genConfig := &genai.GenerateContentConfig{}
	if c.systemInstruction != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: c.systemInstruction}},
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
