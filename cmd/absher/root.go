package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "absher",
	Short: "AbsherAi is a scripted assistant for Ministry of Interior e-services",
	Long: `AbsherAi simulates the dialogue of Saudi government e-services in Arabic.
Name a service, answer its questions, and receive a simulated result.
Without a subcommand it starts the interactive chat.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	addConfigFlags(rootCmd)
}

// addConfigFlags registers the persistent flags (available to all commands).
func addConfigFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Config file (default absher.yaml when present)")
	cmd.PersistentFlags().String("flows", "", "Directory of flow files (overrides the built-in catalog)")
	cmd.PersistentFlags().String("catalog", "", "Catalog YAML file")
	cmd.PersistentFlags().String("redis", "", "Redis address for transcripts")
	cmd.PersistentFlags().String("session", "", "Fixed transcript session id")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// loadConfig reads the layered configuration, then applies explicit flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	overrides := map[string]*string{
		"flows":   &cfg.FlowsDir,
		"catalog": &cfg.CatalogFile,
		"redis":   &cfg.Redis.Addr,
		"session": &cfg.SessionID,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	return cfg, nil
}
