package prompt

import (
	"fmt"

	"github.com/bitrise-io/codeguardian/common"
)

// Build substitutes the selection (and the instruction, for CustomInstruction)
// into the template for kind. Both are inserted verbatim.
func Build(kind Kind, selection, instruction string, settings common.Settings) (string, error) {
	var body string
	switch kind {
	case Explain:
		body = GetExplainPrompt(selection)
	case FixBug:
		body = GetFixBugPrompt(selection)
	case SecurityScan:
		body = GetSecurityScanPrompt(selection)
	case CustomInstruction:
		body = GetCustomPrompt(selection, instruction)
	default:
		return "", fmt.Errorf("unsupported operation kind: %s", kind)
	}

	return body + getLanguage(settings), nil
}

func getLanguage(settings common.Settings) string {
	if settings.Language == "" || settings.Language == common.DefaultLanguage {
		return ""
	}
	return fmt.Sprintf("\nAnswer in %s.", settings.Language)
}
