package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ebook-studio-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaChat(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   got.Model,
			Message: llm.Message{Role: "assistant", Content: "# Chapter 1"},
			Done:    true,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	out, err := p.Chat(context.Background(),
		[]llm.Message{{Role: "system", Content: "be brief"}, {Role: "model", Content: "ok"}},
		llm.WithJSON(), llm.WithMaxTokens(256))

	require.NoError(t, err)
	assert.Equal(t, "# Chapter 1", out)
	assert.Equal(t, "llama3", got.Model)
	assert.Equal(t, "json", got.Format)
	assert.Equal(t, 256, got.Options.NumPredict)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.False(t, got.Stream)
}

func TestOllamaGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "missing")
	_, err := p.Generate(context.Background(), "hello", llm.WithModel("other"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
