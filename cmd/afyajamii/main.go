// Package main provides the afyajamii binary: a terminal client for the
// AfyaJamii maternal-health service. It authenticates a user, submits
// vital-sign readings for risk scoring, chats with the AI assistant and
// replays prior submissions and conversations.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

func main() {
	app, err := NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.Log.Sync()

	if err := rootCmd(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "afyajamii",
		Short:   "AfyaJamii maternal-health client",
		Long:    "Terminal client for the AfyaJamii maternal-health service:\nsubmit vitals for AI risk assessment, chat with the assistant,\nand review your health history.",
		Version: Version,

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		loginCmd(app),
		signupCmd(app),
		logoutCmd(app),
		whoamiCmd(app),
		vitalsCmd(app),
		chatCmd(app),
		historyCmd(app),
	)
	return cmd
}
