package wasm

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"astroctl/pkg/validate"
)

// Locate returns the path of a contract binary under dir. The name is the
// contract name without extension, e.g. "astroport_token".
func Locate(dir, name string) (string, error) {
	if err := validate.ContractName(name); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name+".wasm")
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("contract binary %s not found in %s: %w", name, dir, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("contract binary %s is a directory", path)
	}
	return path, nil
}

// Checksum returns the hex sha256 digest of the file at path.
func Checksum(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// List returns the contract names (without extension) present in dir, sorted.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading wasm dir %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".wasm") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".wasm"))
	}
	sort.Strings(names)
	return names, nil
}
