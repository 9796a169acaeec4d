package terminal

import (
	"fmt"
	"strconv"
	"strings"
)

// LineRange is a 1-based, inclusive span of lines. End 0 means "to the end".
type LineRange struct {
	Start int
	End   int
}

// ParseLineRange accepts "N", "START:END", "START:" and ":END".
func ParseLineRange(s string) (LineRange, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return LineRange{}, fmt.Errorf("empty line range")
	}
	startStr, endStr, hasColon := strings.Cut(trimmed, ":")

	r := LineRange{Start: 1}
	var err error

	if startStr != "" {
		if r.Start, err = strconv.Atoi(startStr); err != nil {
			return LineRange{}, fmt.Errorf("invalid line range %q: %w", s, err)
		}
	}

	switch {
	case !hasColon:
		r.End = r.Start
	case endStr != "":
		if r.End, err = strconv.Atoi(endStr); err != nil {
			return LineRange{}, fmt.Errorf("invalid line range %q: %w", s, err)
		}
	}

	if r.Start < 1 || (r.End != 0 && r.End < r.Start) {
		return LineRange{}, fmt.Errorf("invalid line range %q", s)
	}
	return r, nil
}

// Apply returns the lines of text inside the range, newlines included.
func (r LineRange) Apply(text string) string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if r.Start > len(lines) {
		return ""
	}

	end := r.End
	if end == 0 || end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[r.Start-1:end], "")
}
