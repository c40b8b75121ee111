// Package config provides configuration loading and management for agentflow.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Model providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Content extractors.
const (
	ExtractorParagraphs  = "paragraphs"
	ExtractorReadability = "readability"
)

// Config is the root configuration.
type Config struct {
	Model    ModelConfig    `json:"model"    mapstructure:"model"    yaml:"model"`
	Fetch    FetchConfig    `json:"fetch"    mapstructure:"fetch"    yaml:"fetch"`
	Pipeline PipelineConfig `json:"pipeline" mapstructure:"pipeline" yaml:"pipeline"`
	Agents   []AgentConfig  `json:"agents"   mapstructure:"agents"   yaml:"agents"`
	Tasks    []TaskConfig   `json:"tasks"    mapstructure:"tasks"    yaml:"tasks,omitempty"`
	UI       UIConfig       `json:"ui"       mapstructure:"ui"       yaml:"ui"`
}

// ModelConfig describes the text generation backend.
type ModelConfig struct {
	Provider  string        `json:"provider"              mapstructure:"provider"    yaml:"provider"`
	Model     string        `json:"model"                 mapstructure:"model"       yaml:"model"`
	BaseURL   string        `json:"base_url,omitempty"    mapstructure:"base_url"    yaml:"base_url,omitempty"`
	APIKey    string        `json:"api_key,omitempty"     mapstructure:"api_key"     yaml:"api_key,omitempty"`
	APIKeyEnv string        `json:"api_key_env,omitempty" mapstructure:"api_key_env" yaml:"api_key_env,omitempty"`
	Timeout   time.Duration `json:"timeout,omitempty"     mapstructure:"timeout"     yaml:"timeout,omitempty"`
}

// FetchConfig describes how web pages are retrieved and reduced to text.
// A negative CacheSize disables the page cache; cached pages expire after CacheTTL.
type FetchConfig struct {
	Timeout   time.Duration `json:"timeout,omitempty"    mapstructure:"timeout"    yaml:"timeout,omitempty"`
	UserAgent string        `json:"user_agent,omitempty" mapstructure:"user_agent" yaml:"user_agent,omitempty"`
	Extractor string        `json:"extractor,omitempty"  mapstructure:"extractor"  yaml:"extractor,omitempty"`
	CacheSize int           `json:"cache_size,omitempty" mapstructure:"cache_size" yaml:"cache_size,omitempty"`
	CacheTTL  time.Duration `json:"cache_ttl,omitempty"  mapstructure:"cache_ttl"  yaml:"cache_ttl,omitempty"`
	MaxBytes  int64         `json:"max_bytes,omitempty"  mapstructure:"max_bytes"  yaml:"max_bytes,omitempty"`
}

// PipelineConfig tunes executor behaviour.
type PipelineConfig struct {
	// ResetOnMiss clears the carried result when a task resolves to no agent.
	ResetOnMiss bool `json:"reset_on_miss" mapstructure:"reset_on_miss" yaml:"reset_on_miss"`
}

// AgentConfig seeds one agent.
type AgentConfig struct {
	Name string `json:"name" mapstructure:"name" yaml:"name"`
	Role string `json:"role" mapstructure:"role" yaml:"role"`
}

// TaskConfig adds or overrides one task catalog entry.
type TaskConfig struct {
	Name        string `json:"name"        mapstructure:"name"        yaml:"name"`
	Instruction string `json:"instruction" mapstructure:"instruction" yaml:"instruction"`
}

// UIConfig configures the web UI.
type UIConfig struct {
	Addr string `json:"addr,omitempty" mapstructure:"addr" yaml:"addr,omitempty"`
}

// Validate checks values that the schema cannot express.
func (c Config) Validate() error {
	switch c.Model.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown model provider %q", c.Model.Provider)
	}
	if strings.TrimSpace(c.Model.Model) == "" {
		return fmt.Errorf("model.model is required")
	}
	switch c.Fetch.Extractor {
	case ExtractorParagraphs, ExtractorReadability:
	default:
		return fmt.Errorf("unknown fetch extractor %q", c.Fetch.Extractor)
	}
	for i, a := range c.Agents {
		if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Role) == "" {
			return fmt.Errorf("agents[%d]: name and role are required", i)
		}
	}
	for i, t := range c.Tasks {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("tasks[%d]: name is required", i)
		}
	}
	return nil
}
