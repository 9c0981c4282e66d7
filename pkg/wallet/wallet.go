package wallet

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"astroctl/pkg/chain"
)

// bip39SeedIterations and bip39SeedLength are fixed by the BIP39 standard.
const (
	bip39SeedIterations = 2048
	bip39SeedLength     = 64
)

// NormalizeMnemonic lowercases and collapses whitespace so the same phrase
// always produces the same seed regardless of how it was pasted.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

// ValidateMnemonic checks the phrase has a standard BIP39 word count.
func ValidateMnemonic(mnemonic string) error {
	words := len(strings.Fields(mnemonic))
	switch words {
	case 12, 15, 18, 21, 24:
		return nil
	default:
		return fmt.Errorf("mnemonic has %d words, expected 12, 15, 18, 21 or 24", words)
	}
}

// Seed derives the BIP39 seed for a mnemonic and optional passphrase.
func Seed(mnemonic, passphrase string) ([]byte, error) {
	normalized := NormalizeMnemonic(mnemonic)
	if err := ValidateMnemonic(normalized); err != nil {
		return nil, err
	}
	salt := []byte("mnemonic" + passphrase)
	return pbkdf2.Key([]byte(normalized), salt, bip39SeedIterations, bip39SeedLength, sha512.New), nil
}

// Fingerprint returns a short hex digest of the BIP39 seed. Two operators
// can compare fingerprints to confirm they hold the same deployer key
// without revealing the mnemonic.
func Fingerprint(mnemonic, passphrase string) (string, error) {
	seed, err := Seed(mnemonic, passphrase)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(seed)
	return hex.EncodeToString(digest[:8]), nil
}

// ImportKey recovers a key into the chain daemon's keyring from a mnemonic
// passed on stdin and returns the key's address.
func ImportKey(ctx context.Context, executor chain.CommandExecutor, binary, name, keyringBackend, mnemonic string) (string, error) {
	normalized := NormalizeMnemonic(mnemonic)
	if err := ValidateMnemonic(normalized); err != nil {
		return "", err
	}

	output, err := executor.RunWithStdin(ctx, normalized+"\n", binary,
		"keys", "add", name,
		"--recover",
		"--keyring-backend", keyringBackend,
		"--output", "json",
	)
	if err != nil {
		return "", fmt.Errorf("importing key %s: %w", name, err)
	}

	var reply struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal([]byte(output), &reply); err != nil {
		return "", fmt.Errorf("parsing keyring reply for %s: %w", name, err)
	}
	if reply.Address == "" {
		return "", fmt.Errorf("keyring reply for %s has no address", name)
	}
	return reply.Address, nil
}
