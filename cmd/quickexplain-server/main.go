package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/quickexplain/internal/bootstrap"
	"github.com/at-ishikawa/quickexplain/internal/config"
	"github.com/at-ishikawa/quickexplain/internal/explain"
	"github.com/at-ishikawa/quickexplain/internal/inference/openrouter"
	"github.com/at-ishikawa/quickexplain/internal/logging"
	"github.com/at-ishikawa/quickexplain/internal/server"
)

var (
	configFile string
	envFile    string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "quickexplain-server",
		Short:         "QuickExplain HTTP relay to OpenRouter",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	addConfigFlags(rootCmd.Flags())
	return rootCmd
}

func addConfigFlags(flags *pflag.FlagSet) {
	flags.StringVar(&configFile, "config", "", "config file path")
	flags.StringVar(&envFile, "env-file", "", "dotenv file path (default .env)")
}

func run(ctx context.Context) error {
	// the API key is checked here, before anything listens
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	logger := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(logger)
	app := bootstrap.New(logger)

	openrouterClient := openrouter.NewClient(cfg.OpenRouter, logger, cfg.Log.DebugPayloads)
	app.AddShutdownHook(func(ctx context.Context) error {
		return openrouterClient.Close()
	})

	service := explain.NewService(openrouterClient, cfg.OpenRouter.Temperature, logger)
	handler := server.NewExplainHandler(service, logger)
	router := server.NewRouter(handler, cfg.Server, logger)
	srv := server.NewServer(router, cfg.Server.Port, cfg.OpenRouter.Timeout(), logger)
	app.AddShutdownHook(srv.Shutdown)

	logger.Info("relay configured",
		"model", openrouterClient.GetModel(),
		"upstream", cfg.OpenRouter.BaseURL,
		"allowed_origins", cfg.Server.CORS.AllowedOrigins,
	)
	return app.Run(ctx, func(ctx context.Context) error {
		return srv.Start()
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile, envFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
