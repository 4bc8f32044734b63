package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/quickexplain/internal/client"
	"github.com/at-ishikawa/quickexplain/internal/explain"
)

func newExplainCommand() *cobra.Command {
	var (
		serverURL   string
		contextText string
		timeout     time.Duration
	)

	command := &cobra.Command{
		Use:   "explain <text>",
		Short: "Send selected text to a running relay and print the explanation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			relay := client.New(serverURL, timeout)
			defer func() {
				_ = relay.Close()
			}()

			req := explain.Request{
				Text:    strings.Join(args, " "),
				Context: contextText,
			}
			slog.Default().Debug("sending explain request", "server", serverURL, "text", req.Text)
			result, err := relay.Explain(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("relay.Explain() > %w", err)
			}
			printExplanation(cmd.OutOrStdout(), result.Explanation)
			return nil
		},
	}
	command.Flags().StringVar(&serverURL, "server", "http://localhost:8000", "relay base URL")
	command.Flags().StringVar(&contextText, "context", "", "surrounding text used for disambiguation")
	command.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	return command
}

func isFallback(explanation string) bool {
	return explanation == explain.FallbackNoChoices || explanation == explain.FallbackNoContent
}

func printExplanation(w io.Writer, explanation string) {
	if isFallback(explanation) {
		_, _ = color.New(color.FgYellow).Fprintln(w, explanation)
		return
	}
	_, _ = color.New(color.FgGreen).Fprintln(w, explanation)
}
