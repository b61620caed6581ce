package llm

import (
	"context"
	"errors"
)

// ErrUnconfigured is returned when a provider cannot be built because its
// credentials or endpoint are missing.
var ErrUnconfigured = errors.New("llm provider is not configured")

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Completion is the raw answer of a provider plus its token accounting.
type Completion struct {
	Content     string
	TotalTokens int
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
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

// ApplyOptions folds opts over the given defaults.
func ApplyOptions(defaults Options, opts ...Option) *Options {
	o := defaults
	for _, opt := range opts {
		opt(&o)
	}
	return &o
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Name identifies the backend in logs and metrics
	Name() string

	// Chat sends a chat history to the model and returns the completion
	Chat(ctx context.Context, history []Message, options ...Option) (*Completion, error)
}

// Generate sends a single prompt to the model (convenience helper).
func Generate(ctx context.Context, p LLMProvider, prompt string, options ...Option) (*Completion, error) {
	return p.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, options...)
}

// SplitSystem separates system messages from the conversation turns, for
// backends that take the system prompt out of band.
func SplitSystem(history []Message) (string, []Message) {
	var system string
	turns := make([]Message, 0, len(history))
	for _, m := range history {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		turns = append(turns, m)
	}
	return system, turns
}
