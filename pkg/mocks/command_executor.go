package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCommandExecutor is a testify mock for chain.CommandExecutor.
type MockCommandExecutor struct {
	mock.Mock
}

func (m *MockCommandExecutor) LookPath(file string) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func (m *MockCommandExecutor) Run(ctx context.Context, name string, cmdArgs ...string) (string, error) {
	args := m.Called(ctx, name, cmdArgs)
	return args.String(0), args.Error(1)
}

func (m *MockCommandExecutor) RunWithStdin(ctx context.Context, stdin, name string, cmdArgs ...string) (string, error) {
	args := m.Called(ctx, stdin, name, cmdArgs)
	return args.String(0), args.Error(1)
}
