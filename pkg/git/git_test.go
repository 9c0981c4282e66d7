package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureWorkDir(t *testing.T) {
	workDir := filepath.Join(t.TempDir(), "workspace")
	client := NewClient()

	require.NoError(t, client.EnsureWorkDir(workDir))

	info, err := os.Stat(workDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory.
	assert.NoError(t, client.EnsureWorkDir(workDir))
}

func TestCloneExistingCheckoutIsANoOp(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "contracts")
	require.NoError(t, os.Mkdir(dest, 0o750))

	err := NewClient().Clone("https://github.com/astroport-fi/astroport-core.git", dest)

	assert.NoError(t, err)
}
