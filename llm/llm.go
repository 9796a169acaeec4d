package llm

import (
	"context"
	"fmt"

	"github.com/bitrise-io/codeguardian/common"
	"github.com/bitrise-io/codeguardian/logger"
)

// Request represents the data sent to the inference service
type Request struct {
	Prompt    string
	MaxTokens int
}

// Response represents the response from the inference service
type Response struct {
	Content string // Markdown formatted content
	Error   error
}

// LLM defines the interface for language model prompting
type LLM interface {
	// Prompt sends a request to the language model and returns its response
	Prompt(ctx context.Context, req Request) Response
}

// NewLLM builds the client for the provider named in settings.
func NewLLM(settings common.Settings) (LLM, error) {
	var llmClient LLM
	var err error

	retryConfig := common.RetryConfigFromSettings(settings)

	switch settings.Provider {
	case common.ProviderLocal, "":
		llmClient, err = NewLocal(settings.Endpoint, retryConfig)
	case common.ProviderOpenAI:
		llmClient, err = NewOpenAI(settings.Endpoint, retryConfig, WithModel(settings.Model))
	default:
		err = fmt.Errorf("unsupported provider: %s", settings.Provider)
	}

	if err == nil {
		logger.Debugf("Using provider %q at %s", settings.Provider, settings.Endpoint)
	}

	return llmClient, err
}
