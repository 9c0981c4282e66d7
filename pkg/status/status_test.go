package status

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astroctl/pkg/artifacts"
)

func TestGatherChainHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/status", r.URL.Path)
		_, _ = w.Write([]byte(`{
  "jsonrpc": "2.0",
  "id": -1,
  "result": {
    "node_info": {"network": "pisco-1"},
    "sync_info": {"latest_block_height": "1042", "catching_up": false}
  }
}`))
	}))
	defer server.Close()

	stat := GatherChainHealth(server.URL)

	assert.Equal(t, "Healthy", stat.RPCStatus)
	assert.Equal(t, "pisco-1", stat.ChainID)
	assert.Equal(t, "1042", stat.Height)
	assert.Equal(t, "No", stat.CatchingUp)
}

func TestGatherChainHealthOffline(t *testing.T) {
	stat := GatherChainHealth("http://127.0.0.1:1")

	assert.Equal(t, "Offline", stat.RPCStatus)
	assert.Equal(t, "-", stat.Height)
}

func TestGatherChainHealthEmptyNode(t *testing.T) {
	stat := GatherChainHealth("")

	assert.Equal(t, "Offline", stat.RPCStatus)
}

func TestStatusURL(t *testing.T) {
	assert.Equal(t, "http://localhost:26657/status", statusURL("tcp://localhost:26657"))
	assert.Equal(t, "https://pisco-rpc.example.com:443/status", statusURL("https://pisco-rpc.example.com:443/"))
}

func TestGatherIncludesRecord(t *testing.T) {
	store := artifacts.NewStore(t.TempDir())
	require.NoError(t, store.Save("pisco-1", artifacts.Record{"tokenAddress": "terra1token"}))

	got := Gather("pisco-1", "", store)

	assert.Equal(t, "pisco-1", got.Network)
	assert.Equal(t, "terra1token", got.Record.Get("tokenAddress"))
	assert.Len(t, got.Ports, 3)
}
