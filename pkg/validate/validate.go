// Package validate provides reusable input validation functions for CLI arguments
// and configuration values. All validators return an error describing the violation
// or nil if the input is acceptable.
package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// bech32AddressRe matches a bech32 account or contract address: a lowercase
// human-readable prefix, the separator "1", then 38-58 data characters.
var bech32AddressRe = regexp.MustCompile(`^[a-z]{2,16}1[a-z0-9]{38,58}$`)

// coinRe matches a single coin string such as "1000uluna".
var coinRe = regexp.MustCompile(`^[0-9]+[a-z][a-z0-9/]{2,127}$`)

// safeSegmentRe matches path segments and identifiers that are safe for use
// in shell commands and file names (alphanumeric, hyphens, underscores, dots).
var safeSegmentRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Address validates that s is a well-formed bech32 address.
func Address(s string) error {
	if !bech32AddressRe.MatchString(s) {
		return fmt.Errorf("invalid address %q: must be bech32 (prefix, separator '1', data part)", s)
	}
	return nil
}

// Coins validates a comma-separated list of coin strings such as
// "1000uluna,500uusd". An empty string is valid (no funds attached).
func Coins(s string) error {
	if s == "" {
		return nil
	}
	for _, coin := range strings.Split(s, ",") {
		if !coinRe.MatchString(coin) {
			return fmt.Errorf("invalid coin %q: must be amount followed by denom, e.g. 1000uluna", coin)
		}
	}
	return nil
}

// NetworkName validates that s is safe to use as a file name and CLI argument.
// Membership in the configured network set is checked separately.
func NetworkName(s string) error {
	if !safeSegmentRe.MatchString(s) {
		return fmt.Errorf("invalid network name %q: only alphanumerics, dots, hyphens and underscores are allowed", s)
	}
	return nil
}

// KeyName validates a keyring key name before it is passed to the daemon.
func KeyName(s string) error {
	if !safeSegmentRe.MatchString(s) || strings.HasPrefix(s, "-") {
		return fmt.Errorf("invalid key name %q", s)
	}
	return nil
}

// ContractName validates a contract binary name (no extension, no path).
func ContractName(s string) error {
	if !safeSegmentRe.MatchString(s) || strings.Contains(s, string(filepath.Separator)) {
		return fmt.Errorf("invalid contract name %q", s)
	}
	return nil
}

// WorkspacePath validates a workspace directory path. It allows absolute and
// relative paths but rejects obviously dangerous patterns.
func WorkspacePath(s string) error {
	if s == "" {
		return fmt.Errorf("workspace path must not be empty")
	}

	cleaned := filepath.Clean(s)

	if strings.ContainsRune(cleaned, 0) {
		return fmt.Errorf("workspace path contains null bytes")
	}

	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return fmt.Errorf("cannot resolve workspace path: %w", err)
	}

	systemDirs := []string{"/", "/etc", "/usr", "/bin", "/sbin", "/var", "/boot", "/dev", "/proc", "/sys"}
	for _, d := range systemDirs {
		if abs == d {
			return fmt.Errorf("workspace path must not be a system directory: %s", abs)
		}
	}

	return nil
}
