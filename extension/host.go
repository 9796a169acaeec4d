package extension

import (
	"context"
	"errors"
)

// ErrNoActiveEditor is returned by Host.Selection when there is nothing to
// read a selection from. Actions return silently in that case.
var ErrNoActiveEditor = errors.New("no active editor")

// Handler runs one registered action.
type Handler func(ctx context.Context) error

// InputOptions configures a single line text prompt.
type InputOptions struct {
	Prompt      string
	Placeholder string
}

// Document is read-only content opened beside the editor.
type Document struct {
	Content  string
	Language string
}

// Host is everything an action needs from the editor it runs in.
type Host interface {
	RegisterAction(name string, handler Handler)
	// Selection returns the selected text of the active editor.
	Selection() (string, error)
	// PromptInput asks for one line of text. ok is false when the user cancels.
	PromptInput(ctx context.Context, opts InputOptions) (value string, ok bool)
	// WithProgress shows a non-cancellable progress indicator while fn runs.
	WithProgress(ctx context.Context, title string, fn func(ctx context.Context) error) error
	ShowWarning(msg string)
	ShowError(msg string)
	ShowDocument(doc Document) error
}
