package backend

import (
	"context"
	"errors"
	"fmt"
)

// CommandName is the command the UI invokes to read the backend root.
const CommandName = "get_data_from_fastapi"

// Service errors, matchable with errors.Is on any *Error of the same kind.
var (
	ErrTransport = errors.New("backend transport error")
	ErrDecode    = errors.New("backend decode error")
)

// ErrorKind classifies backend failures.
type ErrorKind string

const (
	// KindTransport covers DNS failures, refused connections, timeouts and cancellation.
	KindTransport ErrorKind = "transport"
	// KindDecode covers bodies that could not be read in full or are not decodable text.
	KindDecode ErrorKind = "decode"
)

// Error is returned by Fetch. It keeps the failure kind and the underlying cause.
type Error struct {
	Kind  ErrorKind
	cause error
}

func newError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return "backend error"
	}
	if e.cause == nil {
		return fmt.Sprintf("backend %s error", e.Kind)
	}
	return fmt.Sprintf("backend %s error: %v", e.Kind, e.cause)
}

// Message is the underlying error's description.
func (e *Error) Message() string {
	if e == nil || e.cause == nil {
		return ""
	}
	return e.cause.Error()
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}

// Service reads the backend service.
type Service interface {
	// Fetch issues one GET to the backend and returns the body text verbatim.
	// The response status is not inspected.
	Fetch(ctx context.Context) (string, error)
}
