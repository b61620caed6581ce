package openai

import (
	"context"
	"fmt"

	"persona-replicator-be/pkg/llm"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultModel = "gpt-4"

type OpenAIProvider struct {
	client *openai.Client
	model  string
}

var _ llm.LLMProvider = &OpenAIProvider{}

// NewOpenAIProvider builds a chat-completions client. Extra request options
// (base URL, retries) are passed straight to the SDK.
func NewOpenAIProvider(apiKey, model string, reqOpts ...option.RequestOption) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", llm.ErrUnconfigured)
	}
	if model == "" {
		model = defaultModel
	}

	opts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, reqOpts...)
	client := openai.NewClient(opts...)

	return &OpenAIProvider{
		client: &client,
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Completion, error) {
	opts := llm.ApplyOptions(llm.Options{Temperature: 0.7, Model: p.model}, options...)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case llm.RoleAssistant, "model":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(opts.Model),
		Messages:    messages,
		Temperature: openai.Float(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty choices from openai api")
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("openai returned an empty message")
	}

	return &llm.Completion{
		Content:     content,
		TotalTokens: int(completion.Usage.TotalTokens),
	}, nil
}
