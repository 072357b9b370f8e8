// Package config loads compass settings from an optional YAML file,
// COMPASS_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/compass/internal/llm"
)

// EnvPrefix is prepended to every environment variable, e.g. COMPASS_DB
// or COMPASS_LLM_PROVIDER.
const EnvPrefix = "COMPASS"

// Config is the resolved application configuration.
type Config struct {
	// DBPath is the event-log database. Empty means the default location.
	DBPath string

	Log LogConfig
	LLM LLMConfig

	// File is the config file that was read, if any.
	File string
}

// LogConfig controls the diagnostics log.
type LogConfig struct {
	File   string // empty disables diagnostics logging
	Level  string // debug, info, warn, error
	Format string // console or json
}

// LLMConfig wraps the provider settings. Enabled is false when no provider
// was configured and none could be discovered from vendor API key
// variables.
type LLMConfig struct {
	llm.Config
	Enabled bool
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	// File is an explicit config file path. When set it must exist.
	File string

	// Flags, when non-nil, are bound over file and env values. Only the
	// flags named in flagKeys are consulted.
	Flags *pflag.FlagSet
}

// flag name → config key
var flagKeys = map[string]string{
	"db":           "db",
	"log-file":     "log.file",
	"log-level":    "log.level",
	"llm-provider": "llm.provider",
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
}

// Load resolves the configuration.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := DefaultConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		DBPath: v.GetString("db"),
		File:   v.ConfigFileUsed(),
		Log: LogConfig{
			File:   v.GetString("log.file"),
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		LLM: loadLLM(v),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadLLM(v *viper.Viper) LLMConfig {
	c := llm.Config{
		Provider: v.GetString("llm.provider"),
		Anthropic: llm.AnthropicConfig{
			APIKey:  v.GetString("llm.anthropic.api_key"),
			Model:   v.GetString("llm.anthropic.model"),
			BaseURL: v.GetString("llm.anthropic.base_url"),
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  v.GetString("llm.openai.api_key"),
			Model:   v.GetString("llm.openai.model"),
			BaseURL: v.GetString("llm.openai.base_url"),
		},
		Gemini: llm.GeminiConfig{
			APIKey:  v.GetString("llm.gemini.api_key"),
			Model:   v.GetString("llm.gemini.model"),
			BaseURL: v.GetString("llm.gemini.base_url"),
		},
		OpenRouter: llm.OpenRouterConfig{
			APIKey:  v.GetString("llm.openrouter.api_key"),
			Model:   v.GetString("llm.openrouter.model"),
			BaseURL: v.GetString("llm.openrouter.base_url"),
		},
		Retry: llm.RetryConfig{
			MaxAttempts: v.GetInt("llm.retry.max_attempts"),
			InitialWait: v.GetDuration("llm.retry.initial_wait"),
			MaxWait:     v.GetDuration("llm.retry.max_wait"),
			Multiplier:  v.GetFloat64("llm.retry.multiplier"),
		},
		Timeout: v.GetDuration("llm.timeout"),
	}
	if c.Provider != "" {
		return LLMConfig{Config: c, Enabled: true}
	}

	// No explicit provider: fall back to the vendors' own key variables,
	// keeping any retry and timeout settings.
	discovered, ok := llm.DiscoverConfig()
	if !ok {
		return LLMConfig{Config: c}
	}
	discovered.Retry = c.Retry
	discovered.Timeout = c.Timeout
	return LLMConfig{Config: discovered, Enabled: true}
}

func (c *Config) validate() error {
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative, got %s", c.LLM.Timeout)
	}
	return nil
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/compass, falling back to
// ~/.config/compass.
func DefaultConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "compass"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "compass"), nil
}

// DefaultLogPath returns $XDG_STATE_HOME/compass/compass.log, falling back
// to ~/.local/state/compass/compass.log.
func DefaultLogPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "compass", "compass.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "compass", "compass.log"), nil
}
