package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/metalagman/agentflow/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var defaultConfigPath = filepath.Join(".agentflow", "config.yaml")

var (
	debug   bool
	rootCmd = &cobra.Command{
		Use:           "agentflow",
		Short:         "agentflow runs role-based agent task pipelines backed by a language model",
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return fmt.Errorf("bind config flag: %w", err)
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logging.Init(debug)
		return loadDotEnv(".env")
	}
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(agentsCmd())
	rootCmd.AddCommand(tasksCmd())
	rootCmd.AddCommand(uiCmd())
	return rootCmd.Execute()
}

// loadDotEnv loads path into the environment without overriding set variables.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
}
