package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/procwise/procwise/internal/cli"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive modeling session",
	Long: `Starts the conversational loop on the terminal. Describe a business
process in plain language; once a model is accepted, further messages
refine it. Use /show to review the current model and /reset to start over.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")
		debug, _ := cmd.Flags().GetBool("debug")
		plain, _ := cmd.Flags().GetBool("plain")

		err := cli.RunChat(cli.ChatOptions{
			ConfigPath: configPath,
			SessionID:  sessionID,
			Fresh:      fresh,
			Debug:      debug,
			Plain:      plain,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("session", "s", "", "Session ID to resume (default: a fresh random ID)")
	chatCmd.Flags().Bool("fresh", false, "Discard any stored process for the session before starting")
	chatCmd.Flags().Bool("debug", false, "Enable debug logging to stderr")
	chatCmd.Flags().Bool("plain", false, "Print raw markdown instead of rendered output")
}
