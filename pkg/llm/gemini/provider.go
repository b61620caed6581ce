package gemini

import (
	"context"
	"fmt"

	"persona-replicator-be/pkg/llm"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// GeminiProvider talks to the Gemini API through the official genai SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(ctx context.Context, apiKey, model, baseURL string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", llm.ErrUnconfigured)
	}
	if model == "" {
		model = defaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Completion, error) {
	opts := llm.ApplyOptions(llm.Options{Temperature: 0.7, Model: p.model}, options...)

	system, turns := llm.SplitSystem(history)

	contents := make([]*genai.Content, 0, len(turns))
	for _, msg := range turns {
		role := genai.Role(genai.RoleUser)
		if msg.Role == llm.RoleAssistant || msg.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(opts.Temperature)),
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, opts.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	completion := &llm.Completion{Content: text}
	if resp.UsageMetadata != nil {
		completion.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return completion, nil
}
