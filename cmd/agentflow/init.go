package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/metalagman/agentflow/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default agentflow config",
		Long:  "Write a default agentflow config with the built-in agents, model and fetch settings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}
			path, err := writeDefaultConfig(workDir, viper.GetString("config"), force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

// writeDefaultConfig writes the default config and returns its path.
func writeDefaultConfig(workDir, path string, force bool) (string, error) {
	path = resolveConfigPath(workDir, path)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("config %s already exists, use --force to overwrite", path)
	}
	data, err := config.EncodeYAML(config.Default())
	if err != nil {
		return "", fmt.Errorf("encode default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	log.Info().Str("path", path).Msg("installing default config")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
