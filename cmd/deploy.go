package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"astroctl/pkg/artifacts"
	"astroctl/pkg/chain"
	"astroctl/pkg/config"
	"astroctl/pkg/deploy"
	"astroctl/pkg/notify"
	"astroctl/pkg/ui"
)

var deployTimeout time.Duration

var deployCmd = &cobra.Command{
	Use:       "deploy [plan]",
	Short:     "Run a deployment plan against the target network",
	Long:      `Runs the named deployment plan (core, tokenomics or all) against the target network. Steps whose outputs are already recorded in the network's artifact file are skipped, so rerunning after a failure resumes where the previous run stopped.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: deploy.PlanNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		planName := "all"
		if len(args) == 1 {
			planName = args[0]
		}

		network, net, err := targetNetwork()
		if err != nil {
			return err
		}

		gateway, err := chain.NewClient(chain.DefaultExecutor{}, net)
		if err != nil {
			return err
		}

		var notifier notify.Notifier = notify.Nop{}
		if config.Loaded.WebhookURL != "" {
			notifier = notify.NewWebhookNotifier(config.Loaded.WebhookURL)
		}

		params := deploy.ParamsFromConfig(config.Loaded, net)
		plan, err := deploy.PlanByName(planName, params)
		if err != nil {
			return err
		}

		store := artifacts.NewStore(config.Loaded.GetArtifactsDir())
		runner := deploy.NewRunner(store, gateway, notifier, network, printStepEvent)

		ui.Info.Printf("%s Deploying plan %s to %s (chain id %s)\n", ui.RocketEmoji, plan.Name, network, net.ChainID)

		ctx, cancel := context.WithTimeout(cmd.Context(), deployTimeout)
		defer cancel()

		record, err := runner.Run(ctx, plan)
		if record != nil {
			renderRecordTable(network, record)
		}
		if err != nil {
			return fmt.Errorf("deployment halted: %w", err)
		}

		ui.Success.Printf("%s Plan %s complete on %s\n", ui.RocketEmoji, plan.Name, network)
		return nil
	},
}

func printStepEvent(event deploy.Event) {
	switch event.Status {
	case deploy.StatusSkipped:
		ui.Info.Printf("%s %s already deployed, skipping\n", ui.InfoEmoji, event.Step)
	case deploy.StatusRunning:
		ui.Info.Printf("%s %s running...\n", ui.ChainEmoji, event.Step)
	case deploy.StatusCompleted:
		ui.Success.Printf("%s %s completed\n", ui.SuccessEmoji, event.Step)
	case deploy.StatusFailed:
		ui.Error.Printf("%s %s failed: %v\n", ui.ErrorEmoji, event.Step, event.Err)
	}
}

func init() {
	deployCmd.Flags().DurationVar(&deployTimeout, "timeout", 20*time.Minute, "Overall deployment timeout")
	rootCmd.AddCommand(deployCmd)
}
