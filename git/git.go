package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bitrise-io/codeguardian/logger"
)

// DefaultDiffAlgorithm is the default algorithm for computing diffs
const DefaultDiffAlgorithm = "minimal"

// Runner defines an interface for running git commands
type Runner interface {
	Run(name string, args ...string) (string, error)
}

// Ensure DefaultRunner implements Runner interface
var _ Runner = (*DefaultRunner)(nil)

// DefaultRunner implements the Runner interface using exec.Command
type DefaultRunner struct {
	RepoPath string
}

// NewDefaultRunner creates a new instance of DefaultRunner
func NewDefaultRunner(repoPath string) *DefaultRunner {
	return &DefaultRunner{
		RepoPath: repoPath,
	}
}

// Run executes a git command and returns its output
func (r *DefaultRunner) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	if r.RepoPath != "" {
		cmd.Dir = r.RepoPath
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("error running command: %s\nstderr: %s", err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Client reads code out of a git working tree
type Client struct {
	runner Runner
}

// NewClient creates a new Git client
func NewClient(runner Runner) *Client {
	return &Client{
		runner: runner,
	}
}

// Diff returns the changes between rev and the working tree, limited to
// paths when any are given.
func (c *Client) Diff(rev string, paths ...string) (string, error) {
	if rev == "" {
		rev = "HEAD"
	}

	args := []string{"diff", "--diff-algorithm=" + DefaultDiffAlgorithm, rev}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}

	logger.Debugf("Running git %s", strings.Join(args, " "))

	diff, err := c.runner.Run("git", args...)
	if err != nil {
		return "", fmt.Errorf("error getting diff against %s: %w", rev, err)
	}
	return diff, nil
}
