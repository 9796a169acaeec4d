package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bitrise-io/codeguardian/common"
	"github.com/bitrise-io/codeguardian/logger"
	"github.com/hashicorp/go-retryablehttp"
)

type generateRequest struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type generateResponse struct {
	Result *string `json:"result"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// LocalModel talks to a self-hosted inference server exposing
// POST /generate {"prompt","max_tokens"} -> {"result"}.
type LocalModel struct {
	client   *retryablehttp.Client
	endpoint string
}

// NewLocal creates a client for the generate endpoint.
func NewLocal(endpoint string, retryConfig common.RetryConfig) (*LocalModel, error) {
	if endpoint == "" {
		return nil, errors.New("endpoint cannot be empty")
	}

	return &LocalModel{
		client:   common.NewRetryableClient(retryConfig),
		endpoint: endpoint,
	}, nil
}

// Endpoint returns the generate URL requests are sent to.
func (l *LocalModel) Endpoint() string {
	return l.endpoint
}

// Prompt sends a single generate request and returns the generated text.
func (l *LocalModel) Prompt(ctx context.Context, req Request) Response {
	body, err := json.Marshal(generateRequest{
		Prompt:    req.Prompt,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return Response{Error: fmt.Errorf("failed to marshal request: %w", err)}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{Error: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logger.Infof("Sending prompt to %s with max tokens %d", l.endpoint, req.MaxTokens)
	logger.Debug(req.Prompt)

	resp, err := l.client.Do(httpReq)
	if err != nil {
		logger.Errorf("Request to %s failed: %v", l.endpoint, err)
		return Response{Error: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{Error: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Detail: errorDetail(respBody)}
		logger.Error(statusErr.Error())
		return Response{Error: statusErr}
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return Response{Error: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
	}
	if out.Result == nil {
		return Response{Error: fmt.Errorf("%w: missing \"result\" field", ErrMalformedResponse)}
	}

	return Response{Content: *out.Result}
}

// Health calls GET /health on the same host as the generate endpoint.
func (l *LocalModel) Health(ctx context.Context) error {
	healthURL, err := healthURL(l.endpoint)
	if err != nil {
		return err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Detail: errorDetail(respBody)}
	}

	var out healthResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.Status != "ok" {
		return fmt.Errorf("inference service reported status %q", out.Status)
	}
	return nil
}

func healthURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	u.Path = "/health"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// errorDetail prefers FastAPI's {"detail": "..."} and falls back to the raw body.
func errorDetail(body []byte) string {
	var out struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &out); err == nil && out.Detail != "" {
		return out.Detail
	}

	detail := strings.TrimSpace(string(body))
	if len(detail) > 512 {
		detail = detail[:512] + "..."
	}
	return detail
}
