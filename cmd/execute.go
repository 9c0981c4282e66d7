package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"astroctl/pkg/chain"
	"astroctl/pkg/ui"
	"astroctl/pkg/validate"
)

var executeFunds string

var executeCmd = &cobra.Command{
	Use:   "execute <contract-address> <msg-json>",
	Short: "Execute a message on a deployed contract",
	Long:  `Executes a message on a deployed contract on the target network, signing with the configured deployer key. Useful for one-off admin operations outside a deployment plan.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validate.Address(args[0]); err != nil {
			return err
		}
		if err := validate.Coins(executeFunds); err != nil {
			return err
		}

		var msg json.RawMessage
		if err := json.Unmarshal([]byte(args[1]), &msg); err != nil {
			return fmt.Errorf("message must be valid JSON: %w", err)
		}

		_, net, err := targetNetwork()
		if err != nil {
			return err
		}
		gateway, err := chain.NewClient(chain.DefaultExecutor{}, net)
		if err != nil {
			return err
		}

		result, err := gateway.Execute(cmd.Context(), args[0], msg, executeFunds)
		if err != nil {
			return err
		}

		ui.Success.Printf("%s Executed in tx %s at height %d\n", ui.SuccessEmoji, result.TxHash, result.Height)
		return nil
	},
}

func init() {
	executeCmd.Flags().StringVar(&executeFunds, "funds", "", "Coins to send with the message, e.g. 1000uluna")
	rootCmd.AddCommand(executeCmd)
}
