package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for the config file when --config is not given.
const DefaultPath = ".scholarsync/config.yaml"

// Config holds all ScholarSync configuration.
type Config struct {
	Name string `yaml:"name"`

	// Completion gateway
	LLM LLMConfig `yaml:"llm"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name: "ScholarSync",

		LLM: LLMConfig{
			Provider: ProviderGemini,
		},

		UI: UIConfig{
			Theme:         ThemeAuto,
			CurrentUserID: "2",
			GraphTick:     "30ms",
		},

		Logging: LoggingConfig{
			Level:     "info",
			DebugMode: false,
			Dir:       filepath.Join(".scholarsync", "logs"),
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults. Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process environment.
// Variables already set are left untouched. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// Generic key keeps the configured provider.
	if key := os.Getenv("API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	// Provider-specific keys select their provider; Gemini wins if both are set.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = ProviderOpenAI
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = ProviderGemini
	}

	if model := os.Getenv("SCHOLARSYNC_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if url := os.Getenv("SCHOLARSYNC_BASE_URL"); url != "" {
		c.LLM.BaseURL = url
	}

	if v := os.Getenv("SCHOLARSYNC_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			if dark {
				c.UI.Theme = ThemeDark
			} else {
				c.UI.Theme = ThemeLight
			}
		}
	}
}

// Validate validates the configuration.
// A missing API key is allowed: the gateway answers with a placeholder instead.
func (c *Config) Validate() error {
	if !isValidProvider(c.LLM.Provider) {
		return fmt.Errorf("invalid LLM provider: %s (valid: %v)", c.LLM.Provider, ValidProviders)
	}

	switch c.UI.Theme {
	case "", ThemeAuto, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("invalid theme: %s (valid: auto, light, dark)", c.UI.Theme)
	}

	return nil
}

// Redacted returns a copy safe for printing, with the API key masked.
func (c *Config) Redacted() *Config {
	out := *c
	out.LLM.APIKey = redact(c.LLM.APIKey)
	if c.Logging.Categories != nil {
		out.Logging.Categories = make(map[string]bool, len(c.Logging.Categories))
		for k, v := range c.Logging.Categories {
			out.Logging.Categories[k] = v
		}
	}
	return &out
}

func redact(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
