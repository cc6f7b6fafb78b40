// Package command routes named invocations from the UI to handler functions.
package command

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"
)

// Errors returned by Register and Invoke; match them with errors.Is.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrDuplicate      = errors.New("command already registered")
	ErrInvalidName    = errors.New("invalid command name")
	ErrNilHandler     = errors.New("nil command handler")
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// Handler runs one command invocation. It returns text for the UI or an error.
type Handler func(ctx context.Context) (string, error)

// PanicError reports a handler panic recovered during Invoke.
type PanicError struct {
	Command string
	Value   any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("command %q panicked: %v", e.Command, e.Value)
}

// Registry maps command names to handlers. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// ValidName reports whether name can be registered.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Register adds a handler under name.
func (r *Registry) Register(name string, h Handler) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if h == nil {
		return fmt.Errorf("%w: %q", ErrNilHandler, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	r.handlers[name] = h
	return nil
}

// MustRegister is Register for startup wiring; it panics on error.
func (r *Registry) MustRegister(name string, h Handler) {
	if err := r.Register(name, h); err != nil {
		panic(err)
	}
}

// Invoke runs the named handler with ctx. A panicking handler yields a *PanicError.
func (r *Registry) Invoke(ctx context.Context, name string) (result string, err error) {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			result, err = "", &PanicError{Command: name, Value: rec}
		}
	}()
	return h(ctx)
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
