package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "astroctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
default-network: pisco-1
networks:
  pisco-1:
    chain-id: pisco-1
    node: https://pisco-rpc.example.com:443
    key-name: deployer
    admin: terra1zdpgj8am5nqqvht927k3etljyl6a52kwqup0je
artifacts-dir: deployments
token:
  name: Astroport
  symbol: ASTRO
  decimals: 6
  initial-supply: "1000000000000000"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "pisco-1", cfg.GetDefaultNetwork())
	assert.Equal(t, "deployments", cfg.GetArtifactsDir())
	assert.Equal(t, "ASTRO", cfg.Token.Symbol)

	net, err := cfg.Network("pisco-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultBinary, net.Binary, "binary should default")
	assert.Equal(t, DefaultKeyringBackend, net.KeyringBackend)
}

func TestLoadMissingDefaultConfigIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(DefaultConfigFile)

	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, DefaultContractsURL, cfg.GetContractsURL())
	assert.Equal(t, DefaultBranch, cfg.GetContractsBranch())
}

func TestLoadMissingExplicitConfigIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestValidateRejectsNonHTTPSContractsURL(t *testing.T) {
	cfg := &Config{ContractsURL: "http://example.com/repo.git"}

	err := cfg.Validate()

	assert.ErrorContains(t, err, "https://")
}

func TestValidateRejectsInjectionProneValues(t *testing.T) {
	cases := map[string]*Config{
		"chain id with semicolon": {Networks: map[string]NetworkConfig{
			"testnet": {ChainID: "pisco-1; rm -rf /"},
		}},
		"key name with space": {Networks: map[string]NetworkConfig{
			"testnet": {KeyName: "deployer key"},
		}},
		"binary starting with hyphen": {Networks: map[string]NetworkConfig{
			"testnet": {Binary: "--help"},
		}},
		"branch starting with hyphen": {ContractsBranch: "-evil"},
		"node with bad scheme": {Networks: map[string]NetworkConfig{
			"testnet": {Node: "file:///etc/passwd"},
		}},
	}

	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateRejectsUnknownDefaultNetwork(t *testing.T) {
	cfg := &Config{
		DefaultNetwork: "mainnet",
		Networks:       map[string]NetworkConfig{"testnet": {}},
	}

	assert.ErrorContains(t, cfg.Validate(), "default-network")
}

func TestValidateMultisig(t *testing.T) {
	cfg := &Config{Multisig: MultisigParams{
		Owners:    []string{"terra1zdpgj8am5nqqvht927k3etljyl6a52kwqup0je"},
		Threshold: 2,
	}}

	assert.ErrorContains(t, cfg.Validate(), "threshold")

	cfg.Multisig.Threshold = 1
	assert.NoError(t, cfg.Validate())

	cfg.Multisig.Owners = []string{"not-an-address"}
	assert.Error(t, cfg.Validate())
}

func TestValidateVestingAccounts(t *testing.T) {
	linear := VestingSchedule{StartTime: 100, StartAmount: "0", EndTime: 200, EndAmount: "500"}
	valid := "terra1zdpgj8am5nqqvht927k3etljyl6a52kwqup0je"

	cases := []struct {
		name    string
		account VestingAccount
		wantErr string
	}{
		{"valid linear schedule", VestingAccount{Address: valid, Schedules: []VestingSchedule{linear}}, ""},
		{"valid instant unlock", VestingAccount{Address: valid, Schedules: []VestingSchedule{{StartTime: 100, StartAmount: "500"}}}, ""},
		{"bad address", VestingAccount{Address: "bogus", Schedules: []VestingSchedule{linear}}, "bech32"},
		{"no schedules", VestingAccount{Address: valid}, "no schedules"},
		{"non-numeric amount", VestingAccount{Address: valid, Schedules: []VestingSchedule{{StartTime: 100, StartAmount: "12.5"}}}, "unsigned integer"},
		{"end before start", VestingAccount{Address: valid, Schedules: []VestingSchedule{{StartTime: 200, StartAmount: "0", EndTime: 100, EndAmount: "500"}}}, "not after"},
		{"end time without amount", VestingAccount{Address: valid, Schedules: []VestingSchedule{{StartTime: 100, StartAmount: "0", EndTime: 200}}}, "set together"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{VestingAccounts: []VestingAccount{tc.account}}
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestNetworkUnknown(t *testing.T) {
	cfg := &Config{Networks: map[string]NetworkConfig{"testnet": {}}}

	_, err := cfg.Network("mainnet")

	assert.ErrorContains(t, err, "unknown network")
}
