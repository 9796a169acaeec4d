package llm

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when the service answers with something
// other than a JSON object carrying the generated text.
var ErrMalformedResponse = errors.New("malformed response from inference service")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("inference service responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("inference service responded with status %d: %s", e.StatusCode, e.Detail)
}
