// Package llm wraps the generative-AI providers behind a single
// prompt-in/text-out Client.
package llm

import (
	"context"
	"fmt"

	"github.com/vedantk/helixar-go/internal/config"
)

const defaultSystemInstruction = "You are Helixar, a professional AI creative workspace. Provide concise, helpful answers."

// NewClient creates a Client for the configured provider.
func NewClient(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	if cfg.SystemInstruction == "" {
		cfg.SystemInstruction = defaultSystemInstruction
	}
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg), nil
	case "gemini", "":
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s (supported: openai, gemini)", cfg.Provider)
	}
}
