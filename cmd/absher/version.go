package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	absherai "github.com/Shahad-Alharbi-creater/AbsherAi"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of absher",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "absher version %s\n", strings.TrimSpace(absherai.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
