package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/juliet3570/afyajamii-client/internal/history"
	"github.com/juliet3570/afyajamii-client/internal/platform/shutdown"
)

func historyCmd(app *App) *cobra.Command {
	var (
		limit      int
		bestEffort bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past vitals submissions and conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := shutdown.NotifyContext(cmd.Context())
			defer stop()

			policy := history.JoinFailFast
			if bestEffort {
				policy = history.JoinBestEffort
			}

			agg := history.NewAggregator(app.API, app.Sessions, policy, app.Log)
			res, err := agg.Load(ctx, limit)
			if err != nil {
				return err
			}

			renderHistory(os.Stdout, res)

			if res.VitalsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", res.VitalsErr)
			}
			if res.ConversationsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", res.ConversationsErr)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "records per list (default from config)")
	cmd.Flags().BoolVar(&bestEffort, "best-effort", false, "show whichever list loaded when the other fails")

	// The config default applies when --limit is not set; the aggregator
	// falls back to its own default for anything non-positive.
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("limit") {
			limit = app.Config.HistoryLimit
		}
	}
	return cmd
}
