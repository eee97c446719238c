package main

import (
	"github.com/spf13/cobra"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Hosts one session behind a JSON API with Server-Sent Events.
The OpenAPI document is served at /openapi.yaml and Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTPPort, _ = cmd.Flags().GetInt("port")
		}
		debug, _ := cmd.Flags().GetBool("debug")
		return cli.Serve(cmd.Context(), cfg, debug)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
