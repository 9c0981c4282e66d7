package localnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortBindings(t *testing.T) {
	exposed, bindings, err := portBindings()

	require.NoError(t, err)
	assert.Len(t, exposed, 3)
	assert.Len(t, bindings, 3)

	rpc := bindings["26657/tcp"]
	require.Len(t, rpc, 1)
	assert.Equal(t, "127.0.0.1", rpc[0].HostIP)
	assert.Equal(t, "26657", rpc[0].HostPort)
}
