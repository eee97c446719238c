package main

import (
	"github.com/spf13/cobra"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/cli"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat in the terminal",
	Long: `Starts a chat session on Stdin/Stdout.
Type a service name or a choice number. Type /mic to speak (when a listen
command is configured) and exit or خروج to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")
		plain, _ := cmd.Flags().GetBool("plain")
		return cli.RunChat(cmd.Context(), cfg, cli.ChatOptions{
			Debug:  debug,
			Plain:  plain,
			Input:  cmd.InOrStdin(),
			Output: cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().Bool("plain", false, "Disable the banner and markdown rendering")

	rootCmd.RunE = chatCmd.RunE
	rootCmd.Flags().Bool("plain", false, "Disable the banner and markdown rendering")
}
