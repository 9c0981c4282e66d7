package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"astroctl/pkg/mocks"
)

// ── version output ─────────────────────────────────────────────────

func TestVersionCommand(t *testing.T) {
	// Set version vars
	Version = "1.2.3"
	CommitSHA = "abc1234"
	BuildDate = "2024-01-01"

	// The version command uses fmt.Printf (stdout), not cmd.OutOrStdout()
	// so we capture via os.Pipe
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	rootCmd.SetArgs([]string{"version"})
	err := rootCmd.Execute()
	require.NoError(t, err)

	w.Close()
	os.Stdout = oldStdout
	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	assert.Contains(t, output, "1.2.3")
	assert.Contains(t, output, "abc1234")
	assert.Contains(t, output, "2024-01-01")
	assert.Contains(t, output, runtime.GOOS)
	assert.Contains(t, output, runtime.GOARCH)
}

// ── GetRootCmd ─────────────────────────────────────────────────────

func TestGetRootCmd(t *testing.T) {
	cmd := GetRootCmd()
	assert.NotNil(t, cmd)
	assert.Equal(t, "astroctl", cmd.Use)
}

// ── safeScriptNameRe ───────────────────────────────────────────────

func TestSafeScriptNameRe_Valid(t *testing.T) {
	valid := []string{
		"build_release.sh",
		"my-script",
		"my_script",
		"path/to/script",
		"version.1.0",
		"optimize",
	}
	for _, s := range valid {
		assert.True(t, safeScriptNameRe.MatchString(s), "expected %q to be valid", s)
	}
}

func TestSafeScriptNameRe_Invalid(t *testing.T) {
	invalid := []string{
		"script; rm -rf /",
		"script`whoami`",
		"script $(cmd)",
		"script | cat",
		"script && evil",
		"script name",
		"",
	}
	for _, s := range invalid {
		assert.False(t, safeScriptNameRe.MatchString(s), "expected %q to be invalid", s)
	}
}

// ── fetchExpectedChecksum ──────────────────────────────────────────

func TestFetchExpectedChecksum_Found(t *testing.T) {
	hash := strings.Repeat("ab", 32) // exactly 64 hex chars
	body := hash + "  astroctl-linux-amd64\n" +
		strings.Repeat("cd", 32) + "  astroctl-darwin-arm64\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	got, err := fetchExpectedChecksum(srv.URL, "astroctl-linux-amd64")
	require.NoError(t, err)
	assert.Equal(t, hash, got)
}

func TestFetchExpectedChecksum_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("ab", 32)+"  astroctl-linux-amd64\n")
	}))
	defer srv.Close()

	_, err := fetchExpectedChecksum(srv.URL, "astroctl-windows-amd64")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no checksum found")
}

func TestFetchExpectedChecksum_InvalidHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "shorthash  astroctl-linux-amd64\n")
	}))
	defer srv.Close()

	_, err := fetchExpectedChecksum(srv.URL, "astroctl-linux-amd64")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid checksum length")
}

func TestFetchExpectedChecksum_HTTP404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := fetchExpectedChecksum(srv.URL, "astroctl-linux-amd64")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

// ── model helpers ──────────────────────────────────────────────────

func TestMaxLogScroll(t *testing.T) {
	m := model{height: 40, logs: make([]string, 100)}
	scroll := m.maxLogScroll()
	assert.GreaterOrEqual(t, scroll, 0)
	assert.LessOrEqual(t, scroll, len(m.logs))
}

func TestMaxLogScroll_FewLogs(t *testing.T) {
	m := model{height: 40, logs: []string{"line1"}}
	assert.Equal(t, 0, m.maxLogScroll())
}

func TestPanelWidths(t *testing.T) {
	m := model{width: 100}
	left, right, logW := m.panelWidths()
	assert.Greater(t, left, 0)
	assert.Greater(t, right, 0)
	assert.Greater(t, logW, 0)
	// left + right should roughly total width minus borders
	assert.InDelta(t, 100-3, left+right, 2)
}

func TestAddrShortener(t *testing.T) {
	m := model{width: 80}
	shorten := m.addrShortener()

	// Short values should not be shortened
	assert.Equal(t, "terra1abc", shorten("terra1abc"))

	// Long addresses should be abbreviated
	long := "terra1" + strings.Repeat("a", 58)
	shortened := shorten(long)
	assert.True(t, strings.HasPrefix(shortened, "terra1"))
	assert.Contains(t, shortened, "…")
	assert.Less(t, len(shortened), len(long))
}

func TestAddrShortener_NarrowTerminal(t *testing.T) {
	m := model{width: 20}
	shorten := m.addrShortener()

	long := "terra1" + strings.Repeat("b", 58)
	shortened := shorten(long)
	assert.Contains(t, shortened, "…")
}

func TestAppendLogCapsBuffer(t *testing.T) {
	var logs []string
	for i := 0; i < 150; i++ {
		logs = appendLog(logs, fmt.Sprintf("line %d", i))
	}
	assert.Len(t, logs, 100)
	assert.Equal(t, "line 149", logs[len(logs)-1])
}

// ── fetchContracts ─────────────────────────────────────────────────

func TestFetchContracts(t *testing.T) {
	client := &mocks.MockGitClient{}
	client.On("EnsureWorkDir", "/tmp/ws").Return(nil)
	client.On("Clone", "https://github.com/test/contracts.git", filepath.Join("/tmp/ws", "contracts")).Return(nil)
	client.On("Checkout", filepath.Join("/tmp/ws", "contracts"), "v1.2.0").Return(nil)

	dest, err := fetchContracts(client, "/tmp/ws", "https://github.com/test/contracts.git", "v1.2.0")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/ws", "contracts"), dest)
	client.AssertExpectations(t)
}

func TestFetchContracts_CloneFails(t *testing.T) {
	client := &mocks.MockGitClient{}
	client.On("EnsureWorkDir", mock.Anything).Return(nil)
	client.On("Clone", mock.Anything, mock.Anything).Return(errors.New("remote unreachable"))

	_, err := fetchContracts(client, "/tmp/ws", "https://github.com/test/contracts.git", "main")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cloning contracts")
	client.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything)
}

// ── command tree structure ─────────────────────────────────────────

func TestCommandTree(t *testing.T) {
	root := GetRootCmd()

	// Verify key subcommands exist
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["version"], "version command should exist")
	assert.True(t, names["update"], "update command should exist")
	assert.True(t, names["deploy"], "deploy command should exist")
	assert.True(t, names["status"], "status command should exist")
	assert.True(t, names["keys"], "keys command should exist")
	assert.True(t, names["localnet"], "localnet command should exist")
	assert.True(t, names["fetch"], "fetch command should exist")
	assert.True(t, names["build"], "build command should exist")
	assert.True(t, names["dash"], "dash command should exist")
	assert.True(t, names["query"], "query command should exist")
	assert.True(t, names["execute"], "execute command should exist")
}
