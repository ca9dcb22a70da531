package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juliet3570/afyajamii-client/internal/chat"
	"github.com/juliet3570/afyajamii-client/internal/platform/shutdown"
)

func chatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [question]",
		Short: "Ask the AI assistant",
		Long:  "Ask the AI assistant a single question, or start an interactive\nsession when no question is given.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := shutdown.NotifyContext(cmd.Context())
			defer stop()

			exchange := chat.NewExchange(app.API, app.Sessions, app.Log)

			if len(args) > 0 {
				return ask(ctx, exchange, strings.Join(args, " "))
			}

			fmt.Println("Chat with AfyaJamii AI. Empty line or Ctrl-C to quit.")
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("you> ")
				if !scanner.Scan() {
					fmt.Println()
					return scanner.Err()
				}
				question := strings.TrimSpace(scanner.Text())
				if question == "" {
					return nil
				}
				if err := ask(ctx, exchange, question); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					// Report and keep the session going; the failed
					// question stays in the transcript.
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				}
			}
		},
	}
}

func ask(ctx context.Context, exchange *chat.Exchange, question string) error {
	reply, err := exchange.Send(ctx, question)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyQuestion) {
			return nil
		}
		return err
	}

	fmt.Print("ai>  ")
	renderMarkup(os.Stdout, reply.Content)
	fmt.Println()
	if ts := formatTimestamp(reply.Timestamp); ts != "" {
		fmt.Printf("     (%s)\n", ts)
	}
	return nil
}
