package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"astroctl/pkg/config"
	"astroctl/pkg/env"
	"astroctl/pkg/git"
	"astroctl/pkg/ui"
	"astroctl/pkg/validate"
)

var (
	fetchWorkspace string
	fetchBranch    string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the contract sources",
	Long:  `Clones the contract repository into the workspace directory, or checks out the requested branch if the clone already exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validate.WorkspacePath(fetchWorkspace); err != nil {
			return err
		}
		if !env.CheckPrerequisites("").HasGit {
			return fmt.Errorf("git is required to fetch contract sources")
		}

		url := config.Loaded.GetContractsURL()
		branch := fetchBranch
		if branch == "" {
			branch = config.Loaded.GetContractsBranch()
		}

		ui.Info.Printf("%s Fetching %s (%s) into %s\n", ui.GitEmoji, url, branch, fetchWorkspace)

		dest, err := fetchContracts(git.NewClient(), fetchWorkspace, url, branch)
		if err != nil {
			return err
		}

		ui.Success.Printf("%s Contract sources ready at %s\n", ui.SuccessEmoji, dest)
		return nil
	},
}

// fetchContracts clones (or reuses) the contracts repo under workspace and
// checks out the requested ref, returning the checkout path.
func fetchContracts(client git.GitClient, workspace, url, branch string) (string, error) {
	if err := client.EnsureWorkDir(workspace); err != nil {
		return "", err
	}

	dest := filepath.Join(workspace, "contracts")
	if err := client.Clone(url, dest); err != nil {
		return "", fmt.Errorf("cloning contracts: %w", err)
	}
	if err := client.Checkout(dest, branch); err != nil {
		return "", fmt.Errorf("checking out %s: %w", branch, err)
	}
	return dest, nil
}

func init() {
	fetchCmd.Flags().StringVar(&fetchWorkspace, "workspace", ".", "Directory to fetch contract sources into")
	fetchCmd.Flags().StringVar(&fetchBranch, "branch", "", "Branch or tag to check out (defaults to the configured branch)")
	rootCmd.AddCommand(fetchCmd)
}
