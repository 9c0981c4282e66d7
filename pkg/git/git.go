package git

import (
	"fmt"
	"os"
	"os/exec"

	"astroctl/pkg/ui"
)

// GitClient defines the interface for git operations against the contracts
// repository. Consumers should accept this interface to enable testing with mocks.
type GitClient interface {
	Clone(url string, dest string) error
	Checkout(repoPath string, ref string) error
	EnsureWorkDir(path string) error
}

// DefaultClient is the real git implementation.
type DefaultClient struct{}

// Compile-time check that DefaultClient implements GitClient.
var _ GitClient = (*DefaultClient)(nil)

// NewClient returns a new default git client.
func NewClient() *DefaultClient {
	return &DefaultClient{}
}

// Clone clones the contracts repository to dest. An existing checkout is
// left untouched.
func (g *DefaultClient) Clone(url string, dest string) error {
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		return nil
	}

	spinner, _ := ui.Spin(fmt.Sprintf("%s Cloning %s...", ui.GitEmoji, url))

	cmd := exec.Command("git", "clone", "--depth", "1", url, dest) // #nosec G204
	output, err := cmd.CombinedOutput()
	if err != nil {
		spinner.Fail(fmt.Sprintf("Failed to clone %s", url))
		return fmt.Errorf("git clone error: %v\n%s", err, string(output))
	}

	spinner.Success(fmt.Sprintf("Cloned %s", dest))
	return nil
}

// Checkout switches the checkout at repoPath to ref (branch or tag).
func (g *DefaultClient) Checkout(repoPath string, ref string) error {
	spinner, _ := ui.Spin(fmt.Sprintf("%s Checking out '%s' in %s...", ui.GitEmoji, ref, repoPath))

	fetch := exec.Command("git", "-C", repoPath, "fetch", "--depth", "1", "origin", ref) // #nosec G204
	if output, err := fetch.CombinedOutput(); err != nil {
		spinner.Fail(fmt.Sprintf("Failed to fetch '%s'", ref))
		return fmt.Errorf("git fetch error: %v\n%s", err, string(output))
	}

	cmd := exec.Command("git", "-C", repoPath, "checkout", ref) // #nosec G204
	output, err := cmd.CombinedOutput()
	if err != nil {
		spinner.Fail(fmt.Sprintf("Failed to checkout '%s'", ref))
		return fmt.Errorf("git checkout error: %v\n%s", err, string(output))
	}

	spinner.Success(fmt.Sprintf("Checked out '%s' in %s", ref, repoPath))
	return nil
}

// EnsureWorkDir creates the workspace directory if it doesn't exist.
func (g *DefaultClient) EnsureWorkDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", path, err)
		}
	}
	return nil
}
