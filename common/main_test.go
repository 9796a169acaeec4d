package common

import (
	"bytes"
	"os"
	"testing"

	"github.com/bitrise-io/codeguardian/logger"
)

// logOutput collects everything logged by the package under test at warn and above.
var logOutput bytes.Buffer

func TestMain(m *testing.M) {
	logger.InitWithWriter("warn", &logOutput)
	os.Exit(m.Run())
}
