package main

import (
	"path/filepath"

	"github.com/metalagman/agentflow/internal/config"
	"github.com/spf13/viper"
)

func resolveConfigPath(workDir, path string) string {
	if path == "" {
		path = defaultConfigPath
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	return path
}

func loadConfig(workDir string) (config.Config, error) {
	return config.Load(resolveConfigPath(workDir, viper.GetString("config")))
}
