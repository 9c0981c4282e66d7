package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"astroctl/pkg/chain"
	"astroctl/pkg/ui"
	"astroctl/pkg/validate"
	"astroctl/pkg/wallet"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage deployer keys",
	Long:  `Manages the deployer key used to sign deployment transactions. Mnemonics are read from stdin and are never echoed or persisted by astroctl itself.`,
}

var keysImportCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Import a key from a mnemonic into the chain daemon keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validate.KeyName(args[0]); err != nil {
			return err
		}

		_, net, err := targetNetwork()
		if err != nil {
			return err
		}

		mnemonic, err := readMnemonic(cmd)
		if err != nil {
			return err
		}

		executor := chain.DefaultExecutor{}
		if _, err := executor.LookPath(net.Binary); err != nil {
			return fmt.Errorf("chain binary %s not found in PATH: %w", net.Binary, err)
		}

		spinner, _ := ui.Spin(fmt.Sprintf("Importing key %s into %s keyring...", args[0], net.KeyringBackend))
		address, err := wallet.ImportKey(cmd.Context(), executor, net.Binary, args[0], net.KeyringBackend, mnemonic)
		if err != nil {
			spinner.Fail("Key import failed")
			return err
		}
		spinner.Success("Key imported")

		ui.Success.Printf("%s Key %s imported with address %s\n", ui.KeyEmoji, args[0], address)
		return nil
	},
}

var keysFingerprintCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "Print a short fingerprint of a mnemonic without importing it",
	Long:  `Derives a short fingerprint from a mnemonic read on stdin. Use it to verify that two copies of a mnemonic match without ever displaying the mnemonic itself.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mnemonic, err := readMnemonic(cmd)
		if err != nil {
			return err
		}

		fp, err := wallet.Fingerprint(mnemonic, "")
		if err != nil {
			return err
		}

		ui.Info.Printf("%s Fingerprint: %s\n", ui.KeyEmoji, fp)
		return nil
	},
}

func readMnemonic(cmd *cobra.Command) (string, error) {
	fmt.Fprintln(cmd.OutOrStdout(), "Enter mnemonic:")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading mnemonic: %w", err)
		}
		return "", fmt.Errorf("no mnemonic provided on stdin")
	}

	mnemonic := wallet.NormalizeMnemonic(scanner.Text())
	if err := wallet.ValidateMnemonic(mnemonic); err != nil {
		return "", err
	}
	return mnemonic, nil
}

func init() {
	keysCmd.AddCommand(keysImportCmd)
	keysCmd.AddCommand(keysFingerprintCmd)
	rootCmd.AddCommand(keysCmd)
}
