package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/quickexplain/internal/config"
)

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Validate the relay configuration and print it with the API key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			defer func() {
				_ = encoder.Close()
			}()
			if err := encoder.Encode(cfg.Redacted()); err != nil {
				return fmt.Errorf("encoder.Encode() > %w", err)
			}
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile, envFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
