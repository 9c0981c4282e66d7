package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"astroctl/pkg/ui"
	"astroctl/pkg/validate"
	"astroctl/pkg/wasm"
)

// safeScriptNameRe allows plain script names and relative paths. Anything
// with shell metacharacters or whitespace is rejected before execution.
var safeScriptNameRe = regexp.MustCompile(`^[a-zA-Z0-9._/-]+$`)

var buildWorkspace string

var buildCmd = &cobra.Command{
	Use:   "build [script-name]",
	Short: "Build the contract wasm binaries",
	Long:  `Runs a build script from the contracts workspace to produce optimized wasm binaries. Defaults to build_release.sh, the script shipped with the contract sources.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scriptName := "build_release.sh"
		if len(args) == 1 {
			scriptName = args[0]
		}

		if !safeScriptNameRe.MatchString(scriptName) {
			return fmt.Errorf("invalid script name %q", scriptName)
		}
		if err := validate.WorkspacePath(buildWorkspace); err != nil {
			return err
		}

		contractsDir := filepath.Join(buildWorkspace, "contracts")
		scriptPath := filepath.Join(contractsDir, scriptName)
		if _, err := os.Stat(scriptPath); err != nil {
			return fmt.Errorf("build script %s not found, run 'astroctl fetch' first: %w", scriptPath, err)
		}

		ui.Info.Printf("%s Building contracts with %s...\n", ui.ChainEmoji, scriptName)

		// #nosec G204 -- scriptName is validated against safeScriptNameRe above
		c := exec.CommandContext(cmd.Context(), "/bin/bash", scriptPath)
		c.Dir = contractsDir
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr

		if err := c.Run(); err != nil {
			return fmt.Errorf("build script failed: %w", err)
		}

		artifactsDir := filepath.Join(contractsDir, "artifacts")
		built, err := wasm.List(artifactsDir)
		if err != nil {
			return err
		}

		ui.Success.Printf("%s Contracts built, wasm binaries are in %s\n", ui.SuccessEmoji, artifactsDir)
		for _, name := range built {
			ui.Info.Printf("  %s\n", name)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildWorkspace, "workspace", ".", "Directory containing the fetched contract sources")
	rootCmd.AddCommand(buildCmd)
}
