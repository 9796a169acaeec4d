// Package terminal runs the editor actions from a shell. The selection comes
// from a file, stdin or a git diff, and documents are printed to stdout.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitrise-io/codeguardian/dispatcher"
	"github.com/bitrise-io/codeguardian/extension"
	"github.com/bitrise-io/codeguardian/git"
	"github.com/bitrise-io/codeguardian/logger"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const actionPrefix = "code-guardian."

type commandInfo struct {
	alias string
	short string
}

var commands = map[string]commandInfo{
	extension.ActionExplainCode:  {alias: "explain", short: "Explain the selected code"},
	extension.ActionFixBug:       {alias: "fix", short: "Find the bug in the selected code and propose a fix"},
	extension.ActionScanSecurity: {alias: "scan", short: "Audit the selected code for security vulnerabilities"},
	extension.ActionAskCustom:    {alias: "ask", short: "Run your own instruction against the selected code"},
}

// Streams are the terminal's standard streams and whether each is a TTY.
type Streams struct {
	In             io.Reader
	Out            io.Writer
	Err            io.Writer
	InInteractive  bool
	OutInteractive bool
	ErrInteractive bool
}

// OSStreams returns the process streams.
func OSStreams() Streams {
	return Streams{
		In:             os.Stdin,
		Out:            os.Stdout,
		Err:            os.Stderr,
		InInteractive:  isTerminal(os.Stdin),
		OutInteractive: isTerminal(os.Stdout),
		ErrInteractive: isTerminal(os.Stderr),
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type options struct {
	gitDiff     string
	file        string
	lines       string
	instruction string
	output      string
	raw         bool
}

// Host implements extension.Host by turning every action into a subcommand of parent.
type Host struct {
	parent  *cobra.Command
	streams Streams
	git     *git.Client
	opts    options
}

func New(parent *cobra.Command, streams Streams) *Host {
	return &Host{
		parent:  parent,
		streams: streams,
		git:     git.NewClient(git.NewDefaultRunner("")),
	}
}

// WithGitRunner replaces the runner used for --git-diff.
func (h *Host) WithGitRunner(runner git.Runner) *Host {
	h.git = git.NewClient(runner)
	return h
}

func (h *Host) RegisterAction(name string, handler extension.Handler) {
	use := strings.TrimPrefix(name, actionPrefix)
	info := commands[name]

	cmd := &cobra.Command{
		Use:           use + " [file]",
		Short:         info.short,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				h.opts.file = args[0]
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			err := handler(ctx)
			if dispatcher.IsConnectionRefused(err) {
				h.showConnectionRefusedHint()
			}
			return err
		},
	}
	if info.alias != "" {
		cmd.Aliases = []string{info.alias}
	}

	cmd.Flags().StringVarP(&h.opts.file, "file", "f", "", "File to read the selection from, - for stdin (default stdin)")
	cmd.Flags().StringVarP(&h.opts.lines, "lines", "l", "", "Only select lines START:END of the input (1-based, inclusive)")
	cmd.Flags().StringVar(&h.opts.gitDiff, "git-diff", "", "Select the uncommitted changes against a revision instead of the whole input")
	cmd.Flags().Lookup("git-diff").NoOptDefVal = "HEAD"
	cmd.Flags().StringVarP(&h.opts.output, "output", "o", "", "Write the result to this file instead of stdout")
	cmd.Flags().BoolVar(&h.opts.raw, "raw", false, "Print raw Markdown even when stdout is a terminal")
	if name == extension.ActionAskCustom {
		cmd.Flags().StringVarP(&h.opts.instruction, "instruction", "i", "", "Instruction to run, asked interactively when omitted")
	}

	h.parent.AddCommand(cmd)
}

func (h *Host) Selection() (string, error) {
	var data []byte
	var err error

	switch {
	case h.opts.gitDiff != "":
		var paths []string
		if h.opts.file != "" && h.opts.file != "-" {
			paths = append(paths, h.opts.file)
		}
		var diff string
		diff, err = h.git.Diff(h.opts.gitDiff, paths...)
		data = []byte(diff)
	case h.opts.file == "":
		if h.streams.InInteractive {
			return "", extension.ErrNoActiveEditor
		}
		data, err = io.ReadAll(h.streams.In)
	case h.opts.file == "-":
		data, err = io.ReadAll(h.streams.In)
	default:
		data, err = os.ReadFile(h.opts.file)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read selection: %w", err)
	}

	if h.opts.lines == "" {
		return string(data), nil
	}

	lineRange, err := ParseLineRange(h.opts.lines)
	if err != nil {
		return "", err
	}
	return lineRange.Apply(string(data)), nil
}

func (h *Host) PromptInput(ctx context.Context, opts extension.InputOptions) (string, bool) {
	if h.opts.instruction != "" {
		return h.opts.instruction, true
	}
	if !h.streams.InInteractive {
		logger.Debug("No instruction given and stdin is not a terminal")
		return "", false
	}

	var value string
	input := huh.NewInput().
		Title(opts.Prompt).
		Placeholder(opts.Placeholder).
		Value(&value)

	if err := huh.NewForm(huh.NewGroup(input)).RunWithContext(ctx); err != nil {
		if !errors.Is(err, huh.ErrUserAborted) {
			logger.Warnf("Instruction prompt failed: %v", err)
		}
		return "", false
	}

	value = strings.TrimSpace(value)
	return value, value != ""
}

// WithProgress runs fn detached from ctx cancellation; in-flight requests are
// not cancellable.
func (h *Host) WithProgress(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	ctx = context.WithoutCancel(ctx)

	if !h.streams.ErrInteractive {
		logger.Info(title)
		return fn(ctx)
	}

	spinner, err := pterm.DefaultSpinner.
		WithWriter(h.streams.Err).
		WithRemoveWhenDone(true).
		Start(title)
	if err != nil {
		logger.Debugf("Failed to start spinner: %v", err)
		return fn(ctx)
	}
	defer spinner.Stop()

	return fn(ctx)
}

func (h *Host) ShowWarning(msg string) {
	pterm.Warning.WithWriter(h.streams.Err).Println(msg)
}

func (h *Host) ShowError(msg string) {
	pterm.Error.WithWriter(h.streams.Err).Println(msg)
}

func (h *Host) ShowDocument(doc extension.Document) error {
	if h.opts.output != "" {
		if err := os.WriteFile(h.opts.output, []byte(doc.Content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", h.opts.output, err)
		}
		pterm.Success.WithWriter(h.streams.Err).Printfln("Wrote %s", h.opts.output)
		return nil
	}

	content := doc.Content
	if doc.Language == "markdown" && h.streams.OutInteractive && !h.opts.raw {
		content = render(content)
	}

	_, err := fmt.Fprintln(h.streams.Out, content)
	return err
}

func render(markdown string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		logger.Debugf("Failed to create markdown renderer: %v", err)
		return markdown
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		logger.Debugf("Failed to render markdown: %v", err)
		return markdown
	}
	return out
}

func (h *Host) showConnectionRefusedHint() {
	w := h.streams.Err
	pterm.Fprintln(w)
	pterm.Fprintln(w, "Nothing is listening at the inference endpoint. This usually means:")
	pterm.Fprintln(w, "  • the local inference server has not been started")
	pterm.Fprintln(w, "  • it listens on another host or port (set endpoint in codeguardian.yml or pass --endpoint)")
	pterm.Fprintln(w)
	pterm.Fprintln(w, "Run 'codeguardian health' once the server is up.")
}
