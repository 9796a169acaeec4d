package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitrise-io/codeguardian/dispatcher"
	"github.com/bitrise-io/codeguardian/logger"
	"github.com/bitrise-io/codeguardian/prompt"
)

const (
	ActionExplainCode  = "code-guardian.explainCode"
	ActionFixBug       = "code-guardian.fixBug"
	ActionScanSecurity = "code-guardian.scanSecurity"
	ActionAskCustom    = "code-guardian.askCustom"
)

const documentLanguage = "markdown"

// Dispatcher is the part of dispatcher.Dispatcher the actions use.
type Dispatcher interface {
	Dispatch(ctx context.Context, op dispatcher.Operation, selection string) (string, error)
}

type action struct {
	name          string
	kind          prompt.Kind
	emptyWarning  string
	progressTitle string
	failurePrefix string
}

var actions = []action{
	{
		name:          ActionExplainCode,
		kind:          prompt.Explain,
		emptyWarning:  "Please select some code first!",
		progressTitle: "CodeGuardian is thinking...",
		failurePrefix: "Connection failed",
	},
	{
		name:          ActionFixBug,
		kind:          prompt.FixBug,
		emptyWarning:  "Please select the code to debug first!",
		progressTitle: "CodeGuardian is diagnosing the bug...",
		failurePrefix: "Debugging failed",
	},
	{
		name:          ActionScanSecurity,
		kind:          prompt.SecurityScan,
		emptyWarning:  "Please select some code to scan first!",
		progressTitle: "CodeGuardian is running a security audit...",
		failurePrefix: "Security scan failed",
	},
	{
		name:          ActionAskCustom,
		kind:          prompt.CustomInstruction,
		emptyWarning:  "Please select some code first!",
		progressTitle: "CodeGuardian is running your instruction...",
		failurePrefix: "Instruction failed",
	},
}

var customInput = InputOptions{
	Prompt:      "What do you want to do with this code?",
	Placeholder: "e.g. convert this code to Java, add detailed comments, optimize performance...",
}

// Actions lists the names Activate registers, in registration order.
func Actions() []string {
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, a.name)
	}
	return names
}

// Activate registers every action with the host.
func Activate(host Host, d Dispatcher) {
	for _, a := range actions {
		host.RegisterAction(a.name, a.handler(host, d))
	}
	logger.Debugf("Registered %d actions", len(actions))
}

func (a action) handler(host Host, d Dispatcher) Handler {
	return func(ctx context.Context) error {
		selection, err := host.Selection()
		if errors.Is(err, ErrNoActiveEditor) {
			logger.Debugf("%s: no active editor", a.name)
			return nil
		}
		if err != nil {
			host.ShowError(fmt.Sprintf("Could not read the selection: %v", err))
			return err
		}
		if selection == "" {
			host.ShowWarning(a.emptyWarning)
			return nil
		}

		op := dispatcher.Operation{Kind: a.kind}
		if a.kind == prompt.CustomInstruction {
			instruction, ok := host.PromptInput(ctx, customInput)
			if !ok || instruction == "" {
				logger.Debugf("%s: instruction cancelled", a.name)
				return nil
			}
			op.Instruction = instruction
		}

		var result string
		err = host.WithProgress(ctx, a.progressTitle, func(ctx context.Context) error {
			var dispatchErr error
			result, dispatchErr = d.Dispatch(ctx, op, selection)
			return dispatchErr
		})
		switch {
		case errors.Is(err, dispatcher.ErrCancelled):
			return nil
		case errors.Is(err, dispatcher.ErrEmptySelection):
			host.ShowWarning(a.emptyWarning)
			return nil
		case err != nil:
			host.ShowError(fmt.Sprintf("%s: %v", a.failurePrefix, err))
			return err
		}

		return host.ShowDocument(Document{Content: result, Language: documentLanguage})
	}
}
