package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"astroctl/pkg/chain"
)

// MockGateway is a testify mock for chain.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) UploadCode(ctx context.Context, wasmPath string) (uint64, error) {
	args := m.Called(ctx, wasmPath)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockGateway) Instantiate(ctx context.Context, codeID uint64, initMsg any, label, admin string) (string, error) {
	args := m.Called(ctx, codeID, initMsg, label, admin)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Execute(ctx context.Context, contractAddr string, msg any, funds string) (chain.TxResult, error) {
	args := m.Called(ctx, contractAddr, msg, funds)
	return args.Get(0).(chain.TxResult), args.Error(1)
}

func (m *MockGateway) Query(ctx context.Context, contractAddr string, queryMsg, out any) error {
	args := m.Called(ctx, contractAddr, queryMsg, out)
	return args.Error(0)
}
