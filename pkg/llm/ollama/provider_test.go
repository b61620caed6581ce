package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"persona-replicator-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_Chat(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:           got.Model,
			Message:         ollamaMessage{Role: "assistant", Content: "CONSERVATIVE:\nHi"},
			Done:            true,
			PromptEvalCount: 12,
			EvalCount:       30,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	res, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "sys"},
		{Role: "model", Content: "earlier"},
		{Role: llm.RoleUser, Content: "hello"},
	}, llm.WithMaxTokens(1000), llm.WithTemperature(0.2))

	require.NoError(t, err)
	assert.Equal(t, "CONSERVATIVE:\nHi", res.Content)
	assert.Equal(t, 42, res.TotalTokens)

	assert.Equal(t, "llama3", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Equal(t, 1000, got.Options.NumPredict)
	assert.InDelta(t, 0.2, got.Options.Temperature, 1e-9)
}

func TestOllamaProvider_ChatErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non 2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not found", http.StatusNotFound)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{not json"))
			},
		},
		{
			name: "empty message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":""},"done":true}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p := NewOllamaProvider(srv.URL, "llama3")
			res, err := llm.Generate(context.Background(), p, "hello")
			assert.Error(t, err)
			assert.Nil(t, res)
		})
	}
}
