package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"astroctl/pkg/chain"
	"astroctl/pkg/validate"
)

var queryCmd = &cobra.Command{
	Use:   "query <contract-address> <query-json>",
	Short: "Run a smart query against a deployed contract",
	Long:  `Runs a smart query against a deployed contract on the target network and prints the JSON reply, e.g. astroctl query terra1... '{"config":{}}'.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validate.Address(args[0]); err != nil {
			return err
		}

		var queryMsg json.RawMessage
		if err := json.Unmarshal([]byte(args[1]), &queryMsg); err != nil {
			return fmt.Errorf("query must be valid JSON: %w", err)
		}

		_, net, err := targetNetwork()
		if err != nil {
			return err
		}
		gateway, err := chain.NewClient(chain.DefaultExecutor{}, net)
		if err != nil {
			return err
		}

		var reply json.RawMessage
		if err := gateway.Query(cmd.Context(), args[0], queryMsg, &reply); err != nil {
			return err
		}

		pretty, err := json.MarshalIndent(reply, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
