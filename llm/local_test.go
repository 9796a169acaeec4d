package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bitrise-io/codeguardian/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T, handler http.HandlerFunc) *LocalModel {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	model, err := NewLocal(server.URL+"/generate", common.DefaultRetryConfig())
	require.NoError(t, err)
	return model
}

func TestLocalPrompt_SendsWireFormat(t *testing.T) {
	var got map[string]any
	model := newTestLocal(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": "ABC"}`))
	})

	resp := model.Prompt(context.Background(), Request{Prompt: "explain this", MaxTokens: 1024})

	require.NoError(t, resp.Error)
	assert.Equal(t, "ABC", resp.Content)
	assert.Equal(t, map[string]any{"prompt": "explain this", "max_tokens": float64(1024)}, got)
}

func TestLocalPrompt_EmptyResultIsValid(t *testing.T) {
	model := newTestLocal(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": ""}`))
	})

	resp := model.Prompt(context.Background(), Request{Prompt: "p", MaxTokens: 1})

	require.NoError(t, resp.Error)
	assert.Empty(t, resp.Content)
}

func TestLocalPrompt_MalformedResponses(t *testing.T) {
	bodies := map[string]string{
		"missing result": `{"text": "ABC"}`,
		"null result":    `{"result": null}`,
		"numeric result": `{"result": 42}`,
		"not json":       `<html>Bad Gateway</html>`,
		"json array":     `["ABC"]`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			model := newTestLocal(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			resp := model.Prompt(context.Background(), Request{Prompt: "p", MaxTokens: 1})

			assert.ErrorIs(t, resp.Error, ErrMalformedResponse)
			assert.Empty(t, resp.Content)
		})
	}
}

func TestLocalPrompt_StatusError(t *testing.T) {
	model := newTestLocal(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "Model not loaded"}`))
	})

	resp := model.Prompt(context.Background(), Request{Prompt: "p", MaxTokens: 1})

	var statusErr *StatusError
	require.True(t, errors.As(resp.Error, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "Model not loaded", statusErr.Detail)
	assert.Contains(t, statusErr.Error(), "Model not loaded")
}

func TestLocalPrompt_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL + "/generate"
	server.Close()

	model, err := NewLocal(endpoint, common.DefaultRetryConfig())
	require.NoError(t, err)

	resp := model.Prompt(context.Background(), Request{Prompt: "p", MaxTokens: 1})

	require.Error(t, resp.Error)
	assert.NotErrorIs(t, resp.Error, ErrMalformedResponse)
	assert.Contains(t, resp.Error.Error(), "connection refused")
}

func TestLocalHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		model := newTestLocal(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/health", r.URL.Path)
			w.Write([]byte(`{"status": "ok"}`))
		})

		assert.NoError(t, model.Health(context.Background()))
	})

	t.Run("unhealthy", func(t *testing.T) {
		model := newTestLocal(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "loading"}`))
		})

		err := model.Health(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading")
	})

	t.Run("not found", func(t *testing.T) {
		model := newTestLocal(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		var statusErr *StatusError
		assert.ErrorAs(t, model.Health(context.Background()), &statusErr)
	})
}

func TestHealthURL(t *testing.T) {
	got, err := healthURL("http://localhost:8000/generate?x=1")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/health", got)
}

func TestNewLocal_Endpoint(t *testing.T) {
	model, err := NewLocal("http://127.0.0.1:9000/generate", common.DefaultRetryConfig())
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000/generate", model.Endpoint())
}

func TestNewLocal_EmptyEndpoint(t *testing.T) {
	_, err := NewLocal("", common.DefaultRetryConfig())
	assert.Error(t, err)
}
