package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestResolveConfigPath_RelativeJoinsWorkDir(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	got := resolveConfigPath(workDir, "")
	want := filepath.Join(workDir, defaultConfigPath)
	if got != want {
		t.Fatalf("resolve config path = %q, want %q", got, want)
	}

	abs := filepath.Join(workDir, "elsewhere.yaml")
	if got := resolveConfigPath("/ignored", abs); got != abs {
		t.Fatalf("resolve absolute path = %q, want %q", got, abs)
	}
}

func TestLoadConfig_UsesYAML(t *testing.T) {
	workDir := t.TempDir()
	if err := writeTestFile(filepath.Join(workDir, defaultConfigPath), `model:
  provider: openai
  model: gpt-4o
  timeout: 15s
pipeline:
  reset_on_miss: true
agents:
  - name: Dana
    role: QA Tester
tasks:
  - name: Accessibility Review
    instruction: Review the page for accessibility issues.
`); err != nil {
		t.Fatalf("write yaml config: %v", err)
	}

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("config", defaultConfigPath)

	cfg, err := loadConfig(workDir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Model.Provider != "openai" || cfg.Model.Model != "gpt-4o" {
		t.Fatalf("model = %+v, want openai/gpt-4o", cfg.Model)
	}
	if cfg.Model.Timeout != 15*time.Second {
		t.Fatalf("model.timeout = %s, want 15s", cfg.Model.Timeout)
	}
	if !cfg.Pipeline.ResetOnMiss {
		t.Fatalf("pipeline.reset_on_miss = false, want true")
	}
	if len(cfg.Agents) != 1 || cfg.Agents[0].Name != "Dana" {
		t.Fatalf("agents = %+v, want only Dana", cfg.Agents)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("config", defaultConfigPath)

	cfg, err := loadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.Agents) != 3 {
		t.Fatalf("agents = %d, want 3 defaults", len(cfg.Agents))
	}
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	t.Parallel()

	if err := loadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("load missing .env: %v", err)
	}
}

func TestLoadDotEnv_SetsVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := writeTestFile(path, "AGENTFLOW_TEST_KEY=from-dotenv\n"); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("AGENTFLOW_TEST_KEY") })

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	if got := os.Getenv("AGENTFLOW_TEST_KEY"); got != "from-dotenv" {
		t.Fatalf("AGENTFLOW_TEST_KEY = %q, want %q", got, "from-dotenv")
	}
}

func writeTestFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
