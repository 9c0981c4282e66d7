package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"astroctl/pkg/config"
)

// executorMock mirrors pkg/mocks.MockCommandExecutor; redeclared here to
// avoid an import cycle with pkg/mocks.
type executorMock struct {
	mock.Mock
}

func (m *executorMock) LookPath(file string) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func (m *executorMock) Run(ctx context.Context, name string, cmdArgs ...string) (string, error) {
	args := m.Called(ctx, name, cmdArgs)
	return args.String(0), args.Error(1)
}

func (m *executorMock) RunWithStdin(ctx context.Context, stdin, name string, cmdArgs ...string) (string, error) {
	args := m.Called(ctx, stdin, name, cmdArgs)
	return args.String(0), args.Error(1)
}

func testNetwork() config.NetworkConfig {
	return config.NetworkConfig{
		ChainID:        "pisco-1",
		Node:           "https://pisco-rpc.example.com:443",
		Binary:         "terrad",
		KeyName:        "deployer",
		KeyringBackend: "test",
	}
}

func newTestClient(t *testing.T) (*Client, *executorMock) {
	t.Helper()
	executor := &executorMock{}
	executor.On("LookPath", "terrad").Return("/usr/local/bin/terrad", nil)
	client, err := NewClient(executor, testNetwork())
	require.NoError(t, err)
	return client, executor
}

func argsStartWith(prefix ...string) any {
	return mock.MatchedBy(func(args []string) bool {
		if len(args) < len(prefix) {
			return false
		}
		for i, p := range prefix {
			if args[i] != p {
				return false
			}
		}
		return true
	})
}

const includedStoreTx = `{
  "txhash": "AAA111",
  "height": "1042",
  "code": 0,
  "raw_log": "",
  "events": [
    {"type": "message", "attributes": [{"key": "action", "value": "store_code"}]},
    {"type": "store_code", "attributes": [{"key": "code_id", "value": "42"}]}
  ]
}`

func TestNewClientRequiresBinaryOnPath(t *testing.T) {
	executor := &executorMock{}
	executor.On("LookPath", "terrad").Return("", errors.New("not found"))

	_, err := NewClient(executor, testNetwork())

	var cerr *ChainError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "init", cerr.Op)
}

func TestUploadCodeExtractsCodeIDFromEvents(t *testing.T) {
	client, executor := newTestClient(t)
	executor.On("Run", mock.Anything, "terrad", argsStartWith("tx", "wasm", "store", "token.wasm")).
		Return(`{"txhash": "AAA111", "code": 0}`, nil).Once()
	executor.On("Run", mock.Anything, "terrad", argsStartWith("q", "tx", "AAA111")).
		Return(includedStoreTx, nil).Once()

	codeID, err := client.UploadCode(context.Background(), "token.wasm")

	require.NoError(t, err)
	assert.Equal(t, uint64(42), codeID)
	executor.AssertExpectations(t)
}

func TestUploadCodeBroadcastRejected(t *testing.T) {
	client, executor := newTestClient(t)
	executor.On("Run", mock.Anything, "terrad", argsStartWith("tx", "wasm", "store")).
		Return(`{"txhash": "AAA111", "code": 13, "raw_log": "insufficient fee"}`, nil).Once()

	_, err := client.UploadCode(context.Background(), "token.wasm")

	var cerr *ChainError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Detail, "insufficient fee")
}

func TestInstantiateExtractsContractAddress(t *testing.T) {
	client, executor := newTestClient(t)
	executor.On("Run", mock.Anything, "terrad", argsStartWith("tx", "wasm", "instantiate", "42")).
		Return(`{"txhash": "BBB222", "code": 0}`, nil).Once()
	executor.On("Run", mock.Anything, "terrad", argsStartWith("q", "tx", "BBB222")).
		Return(`{
  "txhash": "BBB222",
  "height": "1043",
  "code": 0,
  "events": [
    {"type": "instantiate", "attributes": [
      {"key": "_contract_address", "value": "terra1contractxyz"},
      {"key": "code_id", "value": "42"}
    ]}
  ]
}`, nil).Once()

	addr, err := client.Instantiate(context.Background(), 42, map[string]any{"name": "Astroport"}, "astro-token", "terra1admin")

	require.NoError(t, err)
	assert.Equal(t, "terra1contractxyz", addr)
}

func TestExecuteFailedOnChain(t *testing.T) {
	client, executor := newTestClient(t)
	executor.On("Run", mock.Anything, "terrad", argsStartWith("tx", "wasm", "execute")).
		Return(`{"txhash": "CCC333", "code": 0}`, nil).Once()
	executor.On("Run", mock.Anything, "terrad", argsStartWith("q", "tx", "CCC333")).
		Return(`{"txhash": "CCC333", "height": "1044", "code": 5, "raw_log": "unauthorized"}`, nil).Once()

	_, err := client.Execute(context.Background(), "terra1contractxyz", map[string]any{"update_config": struct{}{}}, "")

	var cerr *ChainError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Detail, "unauthorized")
}

func TestQueryDecodesDataEnvelope(t *testing.T) {
	client, executor := newTestClient(t)
	executor.On("Run", mock.Anything, "terrad", argsStartWith("q", "wasm", "contract-state", "smart", "terra1contractxyz")).
		Return(`{"data": {"total_supply": "1000000"}}`, nil).Once()

	var out struct {
		TotalSupply string `json:"total_supply"`
	}
	err := client.Query(context.Background(), "terra1contractxyz", map[string]any{"token_info": struct{}{}}, &out)

	require.NoError(t, err)
	assert.Equal(t, "1000000", out.TotalSupply)
}

func TestWaitForTxHonoursContextDeadline(t *testing.T) {
	client, executor := newTestClient(t)
	executor.On("Run", mock.Anything, "terrad", argsStartWith("tx", "wasm", "store")).
		Return(`{"txhash": "DDD444", "code": 0}`, nil).Once()
	executor.On("Run", mock.Anything, "terrad", argsStartWith("q", "tx", "DDD444")).
		Return("", errors.New("tx not found"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.UploadCode(ctx, "token.wasm")

	var cerr *ChainError
	require.ErrorAs(t, err, &cerr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTxResultAttribute(t *testing.T) {
	result := TxResult{Events: []Event{
		{Type: "wasm", Attributes: map[string]string{"action": "register"}},
	}}

	v, ok := result.Attribute("wasm", "action")
	assert.True(t, ok)
	assert.Equal(t, "register", v)

	_, ok = result.Attribute("wasm", "missing")
	assert.False(t, ok)

	_, ok = result.Attribute("instantiate", "action")
	assert.False(t, ok)
}
