package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bitrise-io/codeguardian/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc, opts ...Option) *OpenAIModel {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	model, err := NewOpenAI(server.URL+"/v1/", common.DefaultRetryConfig(), opts...)
	require.NoError(t, err)
	return model
}

func TestOpenAIPrompt(t *testing.T) {
	var got map[string]any
	model := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/chat/completions"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","model":"qwen","choices":[{"index":0,"message":{"role":"assistant","content":"ABC"},"finish_reason":"stop"}]}`))
	}, WithModel("qwen"))

	resp := model.Prompt(context.Background(), Request{Prompt: "explain this", MaxTokens: 1024})

	require.NoError(t, resp.Error)
	assert.Equal(t, "ABC", resp.Content)
	assert.Equal(t, "qwen", got["model"])
	assert.Equal(t, float64(1024), got["max_tokens"])

	messages, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Equal(t, "explain this", messages[0].(map[string]any)["content"])
}

func TestOpenAIPrompt_NoChoices(t *testing.T) {
	model := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","choices":[]}`))
	})

	resp := model.Prompt(context.Background(), Request{Prompt: "p", MaxTokens: 1})

	assert.ErrorIs(t, resp.Error, ErrMalformedResponse)
}

func TestOpenAIPrompt_APIError(t *testing.T) {
	model := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"context length exceeded","type":"invalid_request_error"}}`))
	})

	resp := model.Prompt(context.Background(), Request{Prompt: "p", MaxTokens: 1})

	var statusErr *StatusError
	require.True(t, errors.As(resp.Error, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, "context length exceeded", statusErr.Detail)
}

func TestNewOpenAI_DefaultModel(t *testing.T) {
	model, err := NewOpenAI("http://localhost:8080/v1", common.DefaultRetryConfig(), WithModel(""))
	require.NoError(t, err)
	assert.Equal(t, "local", model.modelName)
	assert.Equal(t, "http://localhost:8080/v1", model.baseURL)
}

func TestNewLLM(t *testing.T) {
	settings := common.WithDefaultSettings()

	client, err := NewLLM(settings)
	require.NoError(t, err)
	assert.IsType(t, &LocalModel{}, client)

	settings.Provider = common.ProviderOpenAI
	client, err = NewLLM(settings)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIModel{}, client)

	settings.Provider = "anthropic"
	_, err = NewLLM(settings)
	assert.Error(t, err)
}
