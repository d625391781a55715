package testing

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransport is a testify mock implementing transport.Transport.
type MockTransport struct {
	mock.Mock
}

// Name returns the mocked name.
func (m *MockTransport) Name() string {
	args := m.Called()
	return args.String(0)
}

// Available returns the mocked availability.
func (m *MockTransport) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

// Fetch records the call and returns the mocked error.
func (m *MockTransport) Fetch(ctx context.Context, url, dest string) error {
	args := m.Called(ctx, url, dest)
	return args.Error(0)
}
