package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"astroctl/pkg/config"
	"astroctl/pkg/ui"
	"astroctl/pkg/validate"
)

var (
	configFile  string
	networkFlag string
)

var rootCmd = &cobra.Command{
	Use:   "astroctl",
	Short: "astroctl deploys and operates the Astroport protocol contracts",
	Long:  `A fast and flexible CLI to orchestrate the idempotent deployment of the Astroport token, staking, factory, generator and vesting contracts against any CosmWasm network.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			ui.Error.Println("Failed to load config: " + err.Error())
			os.Exit(1)
		}
		config.Loaded = cfg

		if networkFlag != "" {
			if err := validate.NetworkName(networkFlag); err != nil {
				ui.Error.Println("Invalid network: " + err.Error())
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", config.DefaultConfigFile, "Path to the astroctl.yaml configuration file")
	rootCmd.PersistentFlags().StringVar(&networkFlag, "network", "", "Target network (defaults to default-network from config)")
}

// targetNetwork resolves the network to act on: the --network flag if set,
// otherwise the configured default.
func targetNetwork() (string, config.NetworkConfig, error) {
	name := networkFlag
	if name == "" {
		name = config.Loaded.GetDefaultNetwork()
	}
	net, err := config.Loaded.Network(name)
	if err != nil {
		return "", config.NetworkConfig{}, err
	}
	return name, net, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ui.PrintBanner()
	if err := rootCmd.Execute(); err != nil {
		ui.Error.Println(err.Error())
		os.Exit(1)
	}
}

// GetRootCmd returns the root cobra command
func GetRootCmd() *cobra.Command {
	return rootCmd
}
