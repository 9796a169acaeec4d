package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bitrise-io/codeguardian/common"
	"github.com/bitrise-io/codeguardian/logger"
	"github.com/sashabaranov/go-openai"
)

// Local OpenAI compatible servers ignore the key, but the SDK always sends one.
const placeholderAPIKey = "codeguardian"

// OptionType defines the type of option
type OptionType string

const (
	ModelNameOption OptionType = "model"
)

// Option represents a generic configuration option for a provider
type Option struct {
	Type  OptionType
	Value any
}

// WithModel creates an option to set the model name
func WithModel(model string) Option {
	return Option{
		Type:  ModelNameOption,
		Value: model,
	}
}

// OpenAIModel sends prompts to an OpenAI compatible server such as the
// llama.cpp server, vLLM or Ollama's /v1 API.
type OpenAIModel struct {
	client    *openai.Client
	baseURL   string
	modelName string
}

// NewOpenAI creates a client for the OpenAI compatible API rooted at baseURL.
func NewOpenAI(baseURL string, retryConfig common.RetryConfig, opts ...Option) (*OpenAIModel, error) {
	if baseURL == "" {
		errMsg := "OpenAI compatible base URL cannot be empty"
		logger.Error(errMsg)
		return nil, errors.New(errMsg)
	}

	config := openai.DefaultConfig(placeholderAPIKey)
	config.BaseURL = strings.TrimSuffix(baseURL, "/")
	config.HTTPClient = common.NewHTTPClient(retryConfig)

	model := &OpenAIModel{
		client:    openai.NewClientWithConfig(config),
		baseURL:   config.BaseURL,
		modelName: "local",
	}

	for _, opt := range opts {
		switch opt.Type {
		case ModelNameOption:
			if modelName, ok := opt.Value.(string); ok && modelName != "" {
				model.modelName = modelName
			}
		}
	}

	logger.Debugf("OpenAI compatible client initialized with model: %s, base URL: %s", model.modelName, model.baseURL)

	return model, nil
}

// Prompt sends the prompt as a single user message.
func (o *OpenAIModel) Prompt(ctx context.Context, req Request) Response {
	chatReq := openai.ChatCompletionRequest{
		Model: o.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		MaxTokens: req.MaxTokens,
	}

	logger.Infof("Sending prompt to %s with model %s, max tokens %d", o.baseURL, o.modelName, req.MaxTokens)
	logger.Debug(req.Prompt)

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return Response{Error: &StatusError{StatusCode: apiErr.HTTPStatusCode, Detail: apiErr.Message}}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
			return Response{Error: &StatusError{StatusCode: reqErr.HTTPStatusCode, Detail: reqErr.Error()}}
		}
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return Response{Error: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
		}
		logger.Errorf("failed to create chat completion: %v", err)
		return Response{Error: err}
	}

	if len(resp.Choices) == 0 {
		return Response{Error: fmt.Errorf("%w: response contained no choices", ErrMalformedResponse)}
	}

	return Response{
		Content: resp.Choices[0].Message.Content,
	}
}
