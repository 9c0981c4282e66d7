package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"astroctl/pkg/artifacts"
	"astroctl/pkg/config"
	"astroctl/pkg/status"
	"astroctl/pkg/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show network health and the deployment record",
	Long:  `Shows chain health, local port usage and the per-network deployment record in a lightweight non-interactive output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		network, net, err := targetNetwork()
		if err != nil {
			return err
		}

		store := artifacts.NewStore(config.Loaded.GetArtifactsDir())
		st := status.Gather(network, net.Node, store)

		renderChainTable(st.Chain)
		renderPortTable(st.Ports)
		renderRecordTable(st.Network, st.Record)
		return nil
	},
}

func renderChainTable(chain status.ChainStat) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"RPC", "Chain ID", "Height", "Catching Up"})
	t.AppendRow(table.Row{chain.RPCStatus, chain.ChainID, chain.Height, chain.CatchingUp})

	ui.Info.Println("Chain")
	t.Render()
	fmt.Println()
}

func renderPortTable(ports []status.PortStat) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Service", "Port", "State"})

	for _, p := range ports {
		state := "Available"
		if p.InUse {
			state = "In Use"
		}
		t.AppendRow(table.Row{p.Name, p.Port, state})
	}

	ui.Info.Println("Local Ports")
	t.Render()
	fmt.Println()
}

func renderRecordTable(network string, record artifacts.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Resource", "Value"})

	for _, key := range record.Keys() {
		t.AppendRow(table.Row{key, record.Get(key)})
	}

	ui.Info.Printf("%s Deployment record for %s\n", ui.GlobeEmoji, network)
	if t.Length() == 0 {
		fmt.Println("Nothing deployed yet.")
	} else {
		t.Render()
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
