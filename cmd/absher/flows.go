package main

import (
	"github.com/spf13/cobra"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/cli"
)

var flowsCmd = &cobra.Command{
	Use:   "flows [flow-id]",
	Short: "List the service catalog or graph one flow",
	Long: `Without arguments, lists every flow grouped by menu section.
With a flow id, prints a Mermaid diagram (graph TD) of its steps.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := cli.LoadCatalog(cfg)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return cli.PrintGraph(cmd.OutOrStdout(), cat, args[0])
		}
		return cli.PrintFlows(cmd.OutOrStdout(), cat)
	},
}

func init() {
	rootCmd.AddCommand(flowsCmd)
}
