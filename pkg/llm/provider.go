package llm

import (
	"context"
)

// Message is a chat message in a provider-agnostic format.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option sets optional generation parameters.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Apply folds opts over defaults.
func Apply(defaults Options, opts ...Option) Options {
	out := defaults
	for _, opt := range opts {
		opt(&out)
	}
	return out
}

// LLMProvider is the contract for any text-generation backend. The reply is
// an opaque string: callers must never assume it is clean JSON.
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the raw response text.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single user prompt (convenience method).
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
