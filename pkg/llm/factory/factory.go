package factory

import (
	"context"
	"fmt"

	"persona-replicator-be/pkg/llm"
	"persona-replicator-be/pkg/llm/gemini"
	"persona-replicator-be/pkg/llm/huggingface"
	"persona-replicator-be/pkg/llm/ollama"
	"persona-replicator-be/pkg/llm/openai"
)

type ProviderConfig struct {
	Provider     string // "openai" | "gemini" | "ollama" | "huggingface"
	Model        string
	OpenAIKey    string
	GeminiKey    string
	OllamaURL    string
	HFKey        string
	HFBaseURL    string
	GeminiAPIURL string // optional override, tests only
}

// NewLLMProvider returns llm.ErrUnconfigured (wrapped) when the selected
// backend has no credentials, so callers can run in fallback-only mode.
func NewLLMProvider(ctx context.Context, cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openai", "":
		p, err := openai.NewOpenAIProvider(cfg.OpenAIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "gemini":
		p, err := gemini.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model, cfg.GeminiAPIURL)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "ollama":
		baseURL := cfg.OllamaURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		model := cfg.Model
		if model == "" {
			model = "llama3"
		}
		return ollama.NewOllamaProvider(baseURL, model), nil
	case "huggingface":
		p, err := huggingface.NewHuggingFaceProvider(cfg.HFKey, cfg.HFBaseURL, cfg.Model)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
