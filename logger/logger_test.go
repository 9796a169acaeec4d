package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitWithWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", &buf)

	Debug("hidden message")
	Infow("dispatching prompt", "kind", "explain")
	Sync()

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("Expected debug output to be filtered, got %s", out)
	}
	if !strings.Contains(out, `"msg":"dispatching prompt"`) {
		t.Errorf("Expected info message in output, got %s", out)
	}
	if !strings.Contains(out, `"kind":"explain"`) {
		t.Errorf("Expected structured field in output, got %s", out)
	}

	// Init only takes effect once
	Init("debug")
	Debug("still hidden")
	Sync()
	if strings.Contains(buf.String(), "still hidden") {
		t.Error("Expected the first initialization to stick")
	}
}
