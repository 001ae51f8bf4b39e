package llm

import "context"

// Client is the single call the chat flow needs from a generative-AI
// provider; it is easy to mock in tests. The model and system instruction
// are fixed at construction.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
