package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/quickexplain/internal/config"
	"github.com/at-ishikawa/quickexplain/internal/logging"
)

var (
	configFile string
	envFile    string
	debugMode  bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "quickexplain",
		Short:         "Explain selected text through a QuickExplain relay",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(debugMode)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file path (default .env)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newExplainCommand())
	rootCmd.AddCommand(newConfigCommand())
	return rootCmd
}

func setupLogger(debugMode bool) {
	level := "info"
	if debugMode {
		level = "debug"
	}
	slog.SetDefault(logging.New(config.LogConfig{Level: level, Format: "text"}, os.Stderr))
}
