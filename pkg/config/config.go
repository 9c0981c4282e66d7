package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// safeNameRe matches values that are passed to the chain daemon as CLI
// arguments (chain ids, key names, binary names). Anything outside this set
// risks argument injection.
var safeNameRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// bech32AddrRe loosely matches a bech32 account address (hrp + "1" + data).
var bech32AddrRe = regexp.MustCompile(`^[a-z]{2,16}1[a-z0-9]{38,58}$`)

// NetworkConfig describes one deployment target.
type NetworkConfig struct {
	ChainID        string `yaml:"chain-id"`
	Node           string `yaml:"node"`
	Binary         string `yaml:"binary"`
	KeyName        string `yaml:"key-name"`
	KeyringBackend string `yaml:"keyring-backend"`
	GasPrices      string `yaml:"gas-prices"`
	GasAdjustment  string `yaml:"gas-adjustment"`
	Admin          string `yaml:"admin"`
}

// TokenParams configures the protocol token instantiation.
type TokenParams struct {
	Name          string `yaml:"name"`
	Symbol        string `yaml:"symbol"`
	Decimals      uint8  `yaml:"decimals"`
	InitialSupply string `yaml:"initial-supply"`
}

// MultisigParams configures the treasury multisig instantiation.
type MultisigParams struct {
	Owners    []string `yaml:"owners"`
	Threshold int      `yaml:"threshold"`
}

// GeneratorParams configures the generator instantiation.
type GeneratorParams struct {
	TokensPerBlock string `yaml:"tokens-per-block"`
	StartBlock     uint64 `yaml:"start-block"`
}

// VestingAccount is one recipient of vested tokens, registered after
// deployment through the token contract.
type VestingAccount struct {
	Address   string            `yaml:"address"`
	Schedules []VestingSchedule `yaml:"schedules"`
}

// VestingSchedule releases tokens linearly between two points in time. A
// schedule without an end point unlocks its start amount immediately.
type VestingSchedule struct {
	StartTime   uint64 `yaml:"start-time"`
	StartAmount string `yaml:"start-amount"`
	EndTime     uint64 `yaml:"end-time"`
	EndAmount   string `yaml:"end-amount"`
}

// Config represents the structure of an astroctl.yaml configuration file.
type Config struct {
	DefaultNetwork  string                   `yaml:"default-network"`
	Networks        map[string]NetworkConfig `yaml:"networks"`
	ArtifactsDir    string                   `yaml:"artifacts-dir"`
	WasmDir         string                   `yaml:"wasm-dir"`
	WebhookURL      string                   `yaml:"webhook-url"`
	ContractsURL    string                   `yaml:"contracts-url"`
	ContractsBranch string                   `yaml:"contracts-branch"`
	Token           TokenParams              `yaml:"token"`
	Multisig        MultisigParams           `yaml:"multisig"`
	Generator       GeneratorParams          `yaml:"generator"`
	VestingAccounts []VestingAccount         `yaml:"vesting-accounts"`
}

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = "astroctl.yaml"

// DefaultContractsURL is the default git clone URL for the contracts repo.
const DefaultContractsURL = "https://github.com/astroport-fi/astroport-core.git"

// DefaultBranch is the default git branch to checkout.
const DefaultBranch = "main"

// DefaultBinary is the chain daemon used when a network does not name one.
const DefaultBinary = "terrad"

// DefaultKeyringBackend is the keyring backend used when unset.
const DefaultKeyringBackend = "os"

// DefaultArtifactsDir holds the per-network deployment records.
const DefaultArtifactsDir = "artifacts"

// DefaultWasmDir holds the optimized contract binaries.
const DefaultWasmDir = "artifacts/wasm"

// Loaded holds the currently loaded configuration (populated after Load).
var Loaded *Config

// Load reads and parses the config file at the given path.
// If the file does not exist and the path is the default, an empty config is returned without error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304 -- config file path is intentionally user-specified via CLI flag
	if err != nil {
		if os.IsNotExist(err) && path == DefaultConfigFile {
			// Default config file is optional
			Loaded = cfg
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation error in %s: %w", path, err)
	}

	Loaded = cfg
	return cfg, nil
}

// Validate checks that all configured values are safe and well-formed.
func (c *Config) Validate() error {
	if c.ContractsURL != "" && !strings.HasPrefix(c.ContractsURL, "https://") {
		return fmt.Errorf("contracts-url must use https:// scheme, got: %s", c.ContractsURL)
	}
	if c.ContractsBranch != "" {
		if !regexp.MustCompile(`^[a-zA-Z0-9._/-]+$`).MatchString(c.ContractsBranch) {
			return fmt.Errorf("contracts-branch contains invalid characters: %s", c.ContractsBranch)
		}
		if strings.HasPrefix(c.ContractsBranch, "-") {
			return fmt.Errorf("contracts-branch must not start with a hyphen: %s", c.ContractsBranch)
		}
	}

	for name, net := range c.Networks {
		if !safeNameRe.MatchString(name) {
			return fmt.Errorf("network name contains invalid characters: %s", name)
		}
		if err := net.validate(name); err != nil {
			return err
		}
	}

	if c.DefaultNetwork != "" {
		if _, ok := c.Networks[c.DefaultNetwork]; !ok {
			return fmt.Errorf("default-network %q is not defined under networks", c.DefaultNetwork)
		}
	}

	for i, owner := range c.Multisig.Owners {
		if !bech32AddrRe.MatchString(owner) {
			return fmt.Errorf("multisig.owners[%d] is not a valid bech32 address: %s", i, owner)
		}
	}
	if c.Multisig.Threshold < 0 || c.Multisig.Threshold > len(c.Multisig.Owners) {
		return fmt.Errorf("multisig.threshold %d out of range for %d owners", c.Multisig.Threshold, len(c.Multisig.Owners))
	}

	for i, va := range c.VestingAccounts {
		if !bech32AddrRe.MatchString(va.Address) {
			return fmt.Errorf("vesting-accounts[%d].address is not a valid bech32 address: %s", i, va.Address)
		}
		if len(va.Schedules) == 0 {
			return fmt.Errorf("vesting-accounts[%d] has no schedules", i)
		}
		for j, s := range va.Schedules {
			if err := s.validate(); err != nil {
				return fmt.Errorf("vesting-accounts[%d].schedules[%d]: %w", i, j, err)
			}
		}
	}

	return nil
}

// uintAmountRe matches a token amount: an unsigned 128-bit integer rendered
// as a decimal string.
var uintAmountRe = regexp.MustCompile(`^[0-9]{1,39}$`)

func (s VestingSchedule) validate() error {
	if !uintAmountRe.MatchString(s.StartAmount) {
		return fmt.Errorf("start-amount is not an unsigned integer: %q", s.StartAmount)
	}
	if s.EndTime == 0 && s.EndAmount == "" {
		return nil
	}
	if s.EndTime == 0 || s.EndAmount == "" {
		return fmt.Errorf("end-time and end-amount must be set together")
	}
	if !uintAmountRe.MatchString(s.EndAmount) {
		return fmt.Errorf("end-amount is not an unsigned integer: %q", s.EndAmount)
	}
	if s.EndTime <= s.StartTime {
		return fmt.Errorf("end-time %d is not after start-time %d", s.EndTime, s.StartTime)
	}
	return nil
}

func (n NetworkConfig) validate(name string) error {
	// Values that end up as daemon CLI arguments must not carry shell or
	// flag injection payloads.
	for _, entry := range []struct {
		field, value string
	}{
		{"chain-id", n.ChainID},
		{"binary", n.Binary},
		{"key-name", n.KeyName},
		{"keyring-backend", n.KeyringBackend},
	} {
		if entry.value != "" {
			if !safeNameRe.MatchString(entry.value) {
				return fmt.Errorf("networks.%s.%s contains invalid characters: %s", name, entry.field, entry.value)
			}
			if strings.HasPrefix(entry.value, "-") {
				return fmt.Errorf("networks.%s.%s must not start with a hyphen: %s", name, entry.field, entry.value)
			}
		}
	}

	if n.Node != "" {
		if !strings.HasPrefix(n.Node, "http://") && !strings.HasPrefix(n.Node, "https://") && !strings.HasPrefix(n.Node, "tcp://") {
			return fmt.Errorf("networks.%s.node must use http://, https:// or tcp:// scheme, got: %s", name, n.Node)
		}
	}

	if n.Admin != "" && !bech32AddrRe.MatchString(n.Admin) {
		return fmt.Errorf("networks.%s.admin is not a valid bech32 address: %s", name, n.Admin)
	}

	return nil
}

// Network returns the named network with defaults applied.
func (c *Config) Network(name string) (NetworkConfig, error) {
	if c == nil || len(c.Networks) == 0 {
		return NetworkConfig{}, fmt.Errorf("no networks configured")
	}
	net, ok := c.Networks[name]
	if !ok {
		return NetworkConfig{}, fmt.Errorf("unknown network: %s", name)
	}
	if net.Binary == "" {
		net.Binary = DefaultBinary
	}
	if net.KeyringBackend == "" {
		net.KeyringBackend = DefaultKeyringBackend
	}
	return net, nil
}

// GetDefaultNetwork returns the configured default network name, if any.
func (c *Config) GetDefaultNetwork() string {
	if c != nil && c.DefaultNetwork != "" {
		return c.DefaultNetwork
	}
	return ""
}

// GetArtifactsDir returns the configured artifacts directory, falling back to default.
func (c *Config) GetArtifactsDir() string {
	if c != nil && c.ArtifactsDir != "" {
		return c.ArtifactsDir
	}
	return DefaultArtifactsDir
}

// GetWasmDir returns the configured wasm directory, falling back to default.
func (c *Config) GetWasmDir() string {
	if c != nil && c.WasmDir != "" {
		return c.WasmDir
	}
	return DefaultWasmDir
}

// GetContractsURL returns the configured contracts repo URL, falling back to default.
func (c *Config) GetContractsURL() string {
	if c != nil && c.ContractsURL != "" {
		return c.ContractsURL
	}
	return DefaultContractsURL
}

// GetContractsBranch returns the configured contracts branch, falling back to default.
func (c *Config) GetContractsBranch() string {
	if c != nil && c.ContractsBranch != "" {
		return c.ContractsBranch
	}
	return DefaultBranch
}
