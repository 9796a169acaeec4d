// Package dispatcher turns a code selection into a prompt, sends it to the
// inference service and hands back the generated text.
package dispatcher

import (
	"context"
	"strings"

	"github.com/bitrise-io/codeguardian/common"
	"github.com/bitrise-io/codeguardian/llm"
	"github.com/bitrise-io/codeguardian/logger"
	"github.com/bitrise-io/codeguardian/prompt"
)

// Operation is what the user asked for. Instruction is only read for
// prompt.CustomInstruction.
type Operation struct {
	Kind        prompt.Kind
	Instruction string
}

// Dispatcher holds no per-call state and is safe for concurrent use.
type Dispatcher struct {
	client   llm.LLM
	settings common.Settings
}

func New(client llm.LLM, settings common.Settings) *Dispatcher {
	return &Dispatcher{
		client:   client,
		settings: settings,
	}
}

// Dispatch sends exactly one request unless the selection is empty or a custom
// instruction is missing, in which case nothing is sent.
func (d *Dispatcher) Dispatch(ctx context.Context, op Operation, selection string) (string, error) {
	if selection == "" {
		return "", ErrEmptySelection
	}
	if op.Kind == prompt.CustomInstruction && strings.TrimSpace(op.Instruction) == "" {
		return "", ErrCancelled
	}

	p, err := prompt.Build(op.Kind, selection, op.Instruction, d.settings)
	if err != nil {
		return "", err
	}

	logger.Infow("Dispatching prompt", "kind", op.Kind.String(), "selection_bytes", len(selection))

	resp := d.client.Prompt(ctx, llm.Request{
		Prompt:    p,
		MaxTokens: d.settings.MaxTokens,
	})
	if resp.Error != nil {
		return "", classify(d.settings.Endpoint, resp.Error)
	}

	return resp.Content, nil
}
