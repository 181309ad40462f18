// Package config loads playground settings from an optional YAML file with
// environment variable overrides. Environment always wins so deployments can
// keep secrets out of the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used when neither file nor environment sets a value.
const (
	DefaultPort        = 8080
	DefaultModel       = "nvidia/llama-3.3-nemotron-super-49b-v1"
	DefaultTemperature = 0.6
	DefaultTopP        = 0.95
	DefaultMaxTokens   = 4096
	DefaultRedisTTL    = 24 * time.Hour
	DefaultRedisPrefix = "playground"
)

// Config is the full playground configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Agent    AgentConfig    `yaml:"agent"`
	LLM      LLMConfig      `yaml:"llm"`
	Search   SearchConfig   `yaml:"search"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	MCP      MCPConfig      `yaml:"mcp"`
}

// AgentConfig selects how the assistant is assembled. Mode "assistant" runs a
// single agent holding every tool; "concierge" routes through specialist
// agents; "race" runs the assistant on both providers in parallel and
// answers with whichever replies first.
type AgentConfig struct {
	Mode string `yaml:"mode"`
}

// ServerConfig covers the HTTP listener.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LLMConfig selects the model provider and generation parameters.
type LLMConfig struct {
	// Provider is "nvidia" or "anthropic".
	Provider        string  `yaml:"provider"`
	Model           string  `yaml:"model"`
	NvidiaAPIKey    string  `yaml:"nvidia_api_key"`
	AnthropicAPIKey string  `yaml:"anthropic_api_key"`
	Temperature     float64 `yaml:"temperature"`
	TopP            float64 `yaml:"top_p"`
	MaxTokens       int     `yaml:"max_tokens"`
}

// SearchConfig holds the Serper web search credentials.
type SearchConfig struct {
	SerperAPIKey string `yaml:"serper_api_key"`
}

// RedisConfig enables redis-backed conversation memory when Addr is set.
type RedisConfig struct {
	Addr   string        `yaml:"addr"`
	Prefix string        `yaml:"prefix"`
	TTL    time.Duration `yaml:"ttl"`
}

// DatabaseConfig enables postgres-backed booking storage when URL is set.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// MCPConfig registers tools from an MCP server when ServerURL is set.
type MCPConfig struct {
	ServerURL string `yaml:"server_url"`
}

// Load reads the YAML file at path (skipped when path is empty or missing),
// applies environment overrides, and fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("AGENT_MODE"); v != "" {
		c.Agent.Mode = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("NVIDIA_API_KEY"); v != "" {
		c.LLM.NvidiaAPIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.LLM.AnthropicAPIKey = v
	}
	if v := os.Getenv("SERPER_API_KEY"); v != "" {
		c.Search.SerperAPIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("MCP_SERVER_URL"); v != "" {
		c.MCP.ServerURL = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Agent.Mode == "" {
		c.Agent.Mode = "assistant"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "nvidia"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = DefaultTemperature
	}
	if c.LLM.TopP == 0 {
		c.LLM.TopP = DefaultTopP
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = DefaultMaxTokens
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = DefaultRedisPrefix
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = DefaultRedisTTL
	}
}

// Validate checks that the selected provider has credentials.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "nvidia":
		if c.LLM.NvidiaAPIKey == "" {
			return fmt.Errorf("NVIDIA_API_KEY is required for the nvidia provider")
		}
	case "anthropic":
		if c.LLM.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	default:
		return fmt.Errorf("unknown llm provider %q (use nvidia or anthropic)", c.LLM.Provider)
	}
	switch c.Agent.Mode {
	case "assistant", "concierge":
	case "race":
		if c.LLM.NvidiaAPIKey == "" || c.LLM.AnthropicAPIKey == "" {
			return fmt.Errorf("race mode needs both NVIDIA_API_KEY and ANTHROPIC_API_KEY")
		}
	default:
		return fmt.Errorf("unknown agent mode %q (use assistant, concierge, or race)", c.Agent.Mode)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
