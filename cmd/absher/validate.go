package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/cli"
	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog for consistency",
	Long:  `Loads the configured catalog and reports empty sections, blank steps and flows shadowed by earlier ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := cli.LoadCatalog(cfg)
		if err != nil {
			return err
		}
		if err := validator.ValidateCatalog(cat); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Catalog is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
