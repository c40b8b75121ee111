package config

import "time"

const (
	defaultGeminiModel  = "gemini-1.5-flash-latest"
	defaultOpenAIModel  = "gpt-4o-mini"
	defaultModelTimeout = 60 * time.Second
	defaultFetchTimeout = 30 * time.Second
	defaultUserAgent    = "Mozilla/5.0 (compatible; agentflow/1.0)"
	defaultCacheSize    = 32
	defaultCacheTTL     = 5 * time.Minute
	defaultMaxBytes     = 5 << 20
	defaultUIAddr       = ":8501"
)

// DefaultAgents are registered when the configuration lists none.
func DefaultAgents() []AgentConfig {
	return []AgentConfig{
		{Name: "Alice", Role: "Business Analyst"},
		{Name: "Bob", Role: "Developer"},
		{Name: "Charlie", Role: "QA Tester"},
	}
}

// Default returns a fully populated configuration.
func Default() Config {
	cfg := Config{
		Model: ModelConfig{
			Provider:  ProviderGemini,
			APIKeyEnv: "GEMINI_API_KEY",
		},
		Agents: DefaultAgents(),
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields in place.
func (c *Config) ApplyDefaults() {
	if c.Model.Provider == "" {
		c.Model.Provider = ProviderGemini
	}
	if c.Model.Model == "" {
		switch c.Model.Provider {
		case ProviderOpenAI:
			c.Model.Model = defaultOpenAIModel
		default:
			c.Model.Model = defaultGeminiModel
		}
	}
	if c.Model.Timeout <= 0 {
		c.Model.Timeout = defaultModelTimeout
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = defaultFetchTimeout
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = defaultUserAgent
	}
	if c.Fetch.Extractor == "" {
		c.Fetch.Extractor = ExtractorParagraphs
	}
	if c.Fetch.CacheSize == 0 {
		c.Fetch.CacheSize = defaultCacheSize
	}
	if c.Fetch.CacheTTL <= 0 {
		c.Fetch.CacheTTL = defaultCacheTTL
	}
	if c.Fetch.MaxBytes <= 0 {
		c.Fetch.MaxBytes = defaultMaxBytes
	}
	if len(c.Agents) == 0 {
		c.Agents = DefaultAgents()
	}
	if c.UI.Addr == "" {
		c.UI.Addr = defaultUIAddr
	}
}
