package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EncodeYAML renders cfg as a YAML document loadable by the CLI.
// Durations are written in their string form so the schema accepts them.
func EncodeYAML(cfg Config) ([]byte, error) {
	agents := make([]map[string]any, 0, len(cfg.Agents))
	for _, a := range cfg.Agents {
		agents = append(agents, map[string]any{"name": a.Name, "role": a.Role})
	}
	doc := map[string]any{
		"model": map[string]any{
			"provider":    cfg.Model.Provider,
			"model":       cfg.Model.Model,
			"api_key_env": cfg.Model.APIKeyEnv,
			"timeout":     cfg.Model.Timeout.String(),
		},
		"fetch": map[string]any{
			"timeout":    cfg.Fetch.Timeout.String(),
			"user_agent": cfg.Fetch.UserAgent,
			"extractor":  cfg.Fetch.Extractor,
			"cache_size": cfg.Fetch.CacheSize,
			"cache_ttl":  cfg.Fetch.CacheTTL.String(),
			"max_bytes":  cfg.Fetch.MaxBytes,
		},
		"pipeline": map[string]any{
			"reset_on_miss": cfg.Pipeline.ResetOnMiss,
		},
		"agents": agents,
		"ui": map[string]any{
			"addr": cfg.UI.Addr,
		},
	}
	if cfg.Model.BaseURL != "" {
		doc["model"].(map[string]any)["base_url"] = cfg.Model.BaseURL
	}
	if len(cfg.Tasks) > 0 {
		tasks := make([]map[string]any, 0, len(cfg.Tasks))
		for _, t := range cfg.Tasks {
			tasks = append(tasks, map[string]any{"name": t.Name, "instruction": t.Instruction})
		}
		doc["tasks"] = tasks
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal config yaml: %w", err)
	}
	return out, nil
}
