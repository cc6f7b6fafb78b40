package backend

import (
	"context"
	"sync/atomic"
)

// MockService implements Service with a fixed result for handler tests.
type MockService struct {
	Body  string
	Err   error
	calls atomic.Int64
}

// NewMockService returns a mock that answers every Fetch with body.
func NewMockService(body string) *MockService {
	return &MockService{Body: body}
}

func (m *MockService) Fetch(ctx context.Context) (string, error) {
	m.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return "", newError(KindTransport, err)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Body, nil
}

// Calls reports how many times Fetch has been invoked.
func (m *MockService) Calls() int64 {
	return m.calls.Load()
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
