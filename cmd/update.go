//go:build !windows

package cmd

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"astroctl/pkg/ui"

	"github.com/spf13/cobra"
)

const releaseBaseURL = "https://github.com/astroport-fi/astroctl/releases/latest/download"

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update astroctl to the latest version",
	Long:  `Downloads the latest astroctl binary for your OS and architecture from GitHub Releases, verifies its checksum and replaces the current executable.`,
	Run: func(cmd *cobra.Command, args []string) {
		goos := runtime.GOOS
		goarch := runtime.GOARCH

		binaryName := fmt.Sprintf("astroctl-%s-%s", goos, goarch)
		url := fmt.Sprintf("%s/%s", releaseBaseURL, binaryName)
		checksumsURL := fmt.Sprintf("%s/checksums.txt", releaseBaseURL)

		ui.Info.Println(fmt.Sprintf("Downloading latest astroctl for %s/%s...", goos, goarch))

		spinner, _ := ui.Spin(fmt.Sprintf("Downloading %s", url))

		expected, err := fetchExpectedChecksum(checksumsURL, binaryName)
		if err != nil {
			if spinner != nil {
				_ = spinner.Stop()
			}
			ui.Error.Println(fmt.Sprintf("Failed to fetch release checksums: %s", err.Error()))
			os.Exit(1)
		}

		resp, err := http.Get(url)
		if err != nil {
			if spinner != nil {
				_ = spinner.Stop()
			}
			ui.Error.Println(fmt.Sprintf("Failed to download update: %s", err.Error()))
			os.Exit(1)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if spinner != nil {
				_ = spinner.Stop()
			}
			ui.Error.Println(fmt.Sprintf("Failed to download update: HTTP %d", resp.StatusCode))
			os.Exit(1)
		}

		// Write to a temp file in the same directory as the executable
		execPath, err := os.Executable()
		if err != nil {
			if spinner != nil {
				_ = spinner.Stop()
			}
			ui.Error.Println(fmt.Sprintf("Failed to determine executable path: %s", err.Error()))
			os.Exit(1)
		}
		execPath, err = filepath.EvalSymlinks(execPath)
		if err != nil {
			if spinner != nil {
				_ = spinner.Stop()
			}
			ui.Error.Println(fmt.Sprintf("Failed to resolve executable path: %s", err.Error()))
			os.Exit(1)
		}

		execDir := filepath.Dir(execPath)
		tmpFile, err := os.CreateTemp(execDir, "astroctl-update-*")
		if err != nil {
			if spinner != nil {
				_ = spinner.Stop()
			}
			ui.Error.Println(fmt.Sprintf("Failed to create temp file: %s", err.Error()))
			os.Exit(1)
		}
		tmpPath := tmpFile.Name()

		hasher := sha256.New()
		_, err = io.Copy(io.MultiWriter(tmpFile, hasher), resp.Body)
		tmpFile.Close()
		if err != nil {
			os.Remove(tmpPath)
			if spinner != nil {
				_ = spinner.Stop()
			}
			ui.Error.Println(fmt.Sprintf("Failed to write update: %s", err.Error()))
			os.Exit(1)
		}

		actual := hex.EncodeToString(hasher.Sum(nil))
		if actual != expected {
			os.Remove(tmpPath)
			if spinner != nil {
				_ = spinner.Stop()
			}
			ui.Error.Println(fmt.Sprintf("Checksum mismatch: expected %s, got %s", expected, actual))
			os.Exit(1)
		}

		if err := os.Chmod(tmpPath, 0755); err != nil {
			os.Remove(tmpPath)
			if spinner != nil {
				_ = spinner.Stop()
			}
			ui.Error.Println(fmt.Sprintf("Failed to set permissions: %s", err.Error()))
			os.Exit(1)
		}

		// Atomic swap: rename current binary out of the way, then move new one in
		oldPath := execPath + ".old"
		if err := os.Rename(execPath, oldPath); err != nil {
			os.Remove(tmpPath)
			if spinner != nil {
				_ = spinner.Stop()
			}
			ui.Error.Println(fmt.Sprintf("Failed to replace binary: %s", err.Error()))
			os.Exit(1)
		}

		if err := os.Rename(tmpPath, execPath); err != nil {
			// Try to restore the old binary
			_ = os.Rename(oldPath, execPath)
			if spinner != nil {
				_ = spinner.Stop()
			}
			ui.Error.Println(fmt.Sprintf("Failed to replace binary: %s", err.Error()))
			os.Exit(1)
		}

		// Best-effort cleanup of the old binary
		_ = os.Remove(oldPath)

		if spinner != nil {
			_ = spinner.Stop()
		}

		ui.Success.Println("astroctl has been updated to the latest version!")
		os.Exit(0)
	},
}

// fetchExpectedChecksum downloads a checksums.txt in the standard
// "<sha256>  <filename>" format and returns the hash recorded for binaryName.
func fetchExpectedChecksum(url, binaryName string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, url)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		if fields[1] != binaryName {
			continue
		}
		if len(fields[0]) != 64 {
			return "", fmt.Errorf("invalid checksum length for %s: %q", binaryName, fields[0])
		}
		return fields[0], nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no checksum found for %s", binaryName)
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
