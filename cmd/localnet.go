package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"astroctl/pkg/env"
	"astroctl/pkg/localnet"
	"astroctl/pkg/ui"
)

var localnetImage string

var localnetCmd = &cobra.Command{
	Use:   "localnet",
	Short: "Manage the local development chain",
	Long:  `Manages a single-validator wasm chain running in a local container, suitable for testing deployments before touching a public network.`,
}

var localnetUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Start the local chain container",
	RunE: func(cmd *cobra.Command, args []string) error {
		prereqs := env.CheckPrerequisites("")
		if _, err := prereqs.Engine(); err != nil {
			return fmt.Errorf("a container engine is required to run the local chain: %w", err)
		}

		c, err := localnet.New()
		if err != nil {
			return err
		}

		if err := c.Up(cmd.Context(), localnetImage); err != nil {
			return err
		}

		ui.Success.Printf("%s Local chain %s is up (RPC on localhost:26657)\n", ui.RocketEmoji, localnet.LocalChainID)
		ui.Info.Printf("%s Deploy against it with: astroctl deploy --network localnet\n", ui.InfoEmoji)
		return nil
	},
}

var localnetDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop and remove the local chain container",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := localnet.New()
		if err != nil {
			return err
		}

		spinner, _ := ui.Spin("Stopping local chain...")
		if err := c.Down(cmd.Context()); err != nil {
			spinner.Fail("Failed to stop local chain")
			return err
		}
		spinner.Success("Local chain stopped")
		return nil
	},
}

var localnetStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the local chain container state",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := localnet.New()
		if err != nil {
			return err
		}

		state := c.State(cmd.Context())
		switch state {
		case "running":
			ui.Success.Printf("%s Container %s is running\n", ui.SuccessEmoji, localnet.ContainerName)
		case "absent":
			ui.Info.Printf("%s Container %s does not exist, start it with 'astroctl localnet up'\n", ui.InfoEmoji, localnet.ContainerName)
		default:
			ui.Warn.Printf("Container %s is %s\n", localnet.ContainerName, state)
		}
		return nil
	},
}

var localnetBuildTag string

var localnetBuildCmd = &cobra.Command{
	Use:   "build <dir>",
	Short: "Build a custom local chain image from a Dockerfile",
	Long:  `Builds a custom local chain image from a directory holding a Dockerfile, e.g. one whose genesis is pre-seeded with the deployer account. Start it with 'astroctl localnet up --image <tag>'.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := localnet.New()
		if err != nil {
			return err
		}
		return c.BuildImage(cmd.Context(), args[0], localnetBuildTag)
	},
}

func init() {
	localnetUpCmd.Flags().StringVar(&localnetImage, "image", localnet.DefaultImage, "Container image to run the local chain with")
	localnetBuildCmd.Flags().StringVar(&localnetBuildTag, "tag", "astroctl-localnet:dev", "Tag for the built image")
	localnetCmd.AddCommand(localnetUpCmd)
	localnetCmd.AddCommand(localnetDownCmd)
	localnetCmd.AddCommand(localnetStatusCmd)
	localnetCmd.AddCommand(localnetBuildCmd)
	rootCmd.AddCommand(localnetCmd)
}
