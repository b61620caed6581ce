package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"persona-replicator-be/pkg/llm"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIProvider_MissingKey(t *testing.T) {
	p, err := NewOpenAIProvider("", "")
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, llm.ErrUnconfigured))
}

func TestOpenAIProvider_Chat(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "NORMAL:\nSounds good."}
			}],
			"usage": {"prompt_tokens": 100, "completion_tokens": 23, "total_tokens": 123}
		}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("sk-test", "", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	require.NoError(t, err)

	res, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "be a twin"},
		{Role: llm.RoleUser, Content: "hi"},
	}, llm.WithMaxTokens(1000))
	require.NoError(t, err)

	assert.Equal(t, "NORMAL:\nSounds good.", res.Content)
	assert.Equal(t, 123, res.TotalTokens)

	assert.Equal(t, "gpt-4", body["model"])
	assert.EqualValues(t, 1000, body["max_tokens"])
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestOpenAIProvider_ChatUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("sk-bad", "gpt-4o", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	require.NoError(t, err)

	res, err := llm.Generate(context.Background(), p, "hi")
	assert.Error(t, err)
	assert.Nil(t, res)
}
