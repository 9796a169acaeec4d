package prompt

import "fmt"

// Kind selects which template a prompt is built from.
type Kind int

const (
	Explain Kind = iota
	FixBug
	SecurityScan
	CustomInstruction
)

var kindNames = map[Kind]string{
	Explain:           "explain",
	FixBug:            "fix-bug",
	SecurityScan:      "security-scan",
	CustomInstruction: "custom",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Kinds lists every supported kind in display order.
func Kinds() []Kind {
	return []Kind{Explain, FixBug, SecurityScan, CustomInstruction}
}
