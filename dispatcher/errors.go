package dispatcher

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/bitrise-io/codeguardian/llm"
)

var (
	// ErrEmptySelection is returned before any request is made when there is no text to send.
	ErrEmptySelection = errors.New("no code selected")
	// ErrCancelled marks a custom instruction that was never given. Hosts treat it as a no-op.
	ErrCancelled = errors.New("instruction entry cancelled")
)

// ErrorKind classifies a failed dispatch.
type ErrorKind int

const (
	NetworkFailure ErrorKind = iota
	MalformedResponse
	ServiceError
)

func (k ErrorKind) String() string {
	switch k {
	case NetworkFailure:
		return "network failure"
	case MalformedResponse:
		return "malformed response"
	case ServiceError:
		return "service error"
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// DispatchError wraps whatever went wrong talking to the inference service.
type DispatchError struct {
	Kind     ErrorKind
	Endpoint string
	Err      error
}

func (e *DispatchError) Error() string {
	switch e.Kind {
	case NetworkFailure:
		return fmt.Sprintf("could not reach the local inference service at %s, confirm it is running: %v", e.Endpoint, e.Err)
	case MalformedResponse:
		return fmt.Sprintf("unexpected response from the inference service at %s: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("inference service at %s failed: %v", e.Endpoint, e.Err)
	}
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

func classify(endpoint string, err error) *DispatchError {
	kind := NetworkFailure

	var statusErr *llm.StatusError
	switch {
	case errors.Is(err, llm.ErrMalformedResponse):
		kind = MalformedResponse
	case errors.As(err, &statusErr):
		kind = ServiceError
	}

	return &DispatchError{Kind: kind, Endpoint: endpoint, Err: err}
}

// IsKind reports whether err is a DispatchError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var dispatchErr *DispatchError
	return errors.As(err, &dispatchErr) && dispatchErr.Kind == kind
}

// IsConnectionRefused reports whether nothing was listening at the endpoint,
// which almost always means the inference server hasn't been started.
func IsConnectionRefused(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}
