package git

import (
	"errors"
	"reflect"
	"testing"
)

// MockRunner is a mock implementation of the Runner interface for testing
type MockRunner struct {
	ReturnOutput string
	ReturnError  error
	CommandRun   string
	ArgsRun      []string
}

// Run implements the Runner interface
func (m *MockRunner) Run(name string, args ...string) (string, error) {
	m.CommandRun = name
	m.ArgsRun = args
	return m.ReturnOutput, m.ReturnError
}

func TestDiff(t *testing.T) {
	mockRunner := &MockRunner{
		ReturnOutput: "mock diff output",
	}

	client := NewClient(mockRunner)
	diff, err := client.Diff("")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if diff != "mock diff output" {
		t.Errorf("Expected 'mock diff output', got %s", diff)
	}

	if mockRunner.CommandRun != "git" {
		t.Errorf("Expected command 'git', got %s", mockRunner.CommandRun)
	}

	expectedArgs := []string{"diff", "--diff-algorithm=minimal", "HEAD"}
	if !reflect.DeepEqual(mockRunner.ArgsRun, expectedArgs) {
		t.Errorf("Expected args %v, got %v", expectedArgs, mockRunner.ArgsRun)
	}
}

func TestDiffWithPaths(t *testing.T) {
	mockRunner := &MockRunner{}

	client := NewClient(mockRunner)
	if _, err := client.Diff("abc123", "main.go", "util.go"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expectedArgs := []string{"diff", "--diff-algorithm=minimal", "abc123", "--", "main.go", "util.go"}
	if !reflect.DeepEqual(mockRunner.ArgsRun, expectedArgs) {
		t.Errorf("Expected args %v, got %v", expectedArgs, mockRunner.ArgsRun)
	}
}

func TestDiffError(t *testing.T) {
	mockRunner := &MockRunner{
		ReturnError: errors.New("not a git repository"),
	}

	client := NewClient(mockRunner)
	if _, err := client.Diff("HEAD"); err == nil {
		t.Error("Expected an error, got nil")
	}
}
