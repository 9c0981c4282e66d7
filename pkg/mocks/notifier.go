package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a testify mock for notify.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, title, message, trace string) error {
	args := m.Called(ctx, title, message, trace)
	return args.Error(0)
}
