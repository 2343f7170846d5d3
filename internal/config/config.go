// Package config loads runtime settings from an optional YAML file,
// QBANK_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/qbank-ai/qbank/internal/llm"
)

// Config is the full runtime configuration.
type Config struct {
	LLM    LLMConfig    `mapstructure:"llm"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Limits LimitsConfig `mapstructure:"limits"`
}

type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	SecretsFile string        `mapstructure:"secrets_file"`
	BlockNone   bool          `mapstructure:"block_none"`
}

type ServerConfig struct {
	Addr          string `mapstructure:"addr"`
	Mode          string `mapstructure:"mode"`
	RatePerMinute int    `mapstructure:"rate_per_minute"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// LimitsConfig bounds the total number of questions per request.
type LimitsConfig struct {
	MinTotal int `mapstructure:"min_total"`
	MaxTotal int `mapstructure:"max_total"`
}

const envPrefix = "QBANK"

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", llm.ProviderGemini)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", 120*time.Second)
	v.SetDefault("llm.max_tokens", 0)
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.secrets_file", "secrets.toml")
	v.SetDefault("llm.block_none", true)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.rate_per_minute", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("limits.min_total", 1)
	v.SetDefault("limits.max_total", 50)
}

// Load reads configuration. When path is empty, qbank.yaml is looked up in
// the working directory and its absence is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("qbank")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Limits.MinTotal < 1 {
		return fmt.Errorf("limits.min_total must be at least 1, got %d", c.Limits.MinTotal)
	}
	if c.Limits.MaxTotal < c.Limits.MinTotal {
		return fmt.Errorf("limits.max_total (%d) is below limits.min_total (%d)", c.Limits.MaxTotal, c.Limits.MinTotal)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	switch c.LLM.Provider {
	case llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderOpenRouter, llm.ProviderAnthropic, llm.ProviderMock:
	default:
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}
	return nil
}

// ProviderConfig builds the llm.Config for the selected provider with
// apiKey applied.
func (c *Config) ProviderConfig(apiKey string) llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.LLM.Provider
	out.Timeout = c.LLM.Timeout
	out.Gemini.BlockNone = c.LLM.BlockNone
	out.SetModel(c.LLM.Model)
	out.SetAPIKey(apiKey)

	if c.LLM.BaseURL != "" {
		switch c.LLM.Provider {
		case llm.ProviderOpenAI:
			out.OpenAI.BaseURL = c.LLM.BaseURL
		case llm.ProviderOpenRouter:
			out.OpenRouter.BaseURL = c.LLM.BaseURL
		}
	}
	return out
}
