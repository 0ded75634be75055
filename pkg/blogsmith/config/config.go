// Package config loads service settings from a YAML or JSON file, with
// API-key material supplied only through the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values applied when the file omits a field.
const (
	DefaultAddr      = ":8000"
	DefaultLogLevel  = "info"
	DefaultProvider  = "openai"
	DefaultAPIKeyEnv = "OPENAI_API_KEY"
)

// Settings is the full service configuration, constructed once at process
// start and passed by reference into the request handlers.
type Settings struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr" json:"addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	LLM    LLMSettings    `yaml:"llm" json:"llm"`
	RunLog RunLogSettings `yaml:"run_log" json:"run_log"`

	// Tracing enables OTel span creation for pipeline runs.
	Tracing bool `yaml:"tracing" json:"tracing"`
}

// LLMSettings configures the language-model client.
type LLMSettings struct {
	// Provider is "openai" (or any OpenAI-compatible endpoint via
	// BaseURL) or "mock" for local runs without an API key.
	Provider string `yaml:"provider" json:"provider"`
	Model    string `yaml:"model" json:"model"`
	// APIKeyEnv names the environment variable holding the key.
	// The key itself never appears in config files.
	APIKeyEnv string `yaml:"api_key_env" json:"api_key_env"`
	BaseURL   string `yaml:"base_url" json:"base_url"`
}

// RunLogSettings configures the generation audit log.
type RunLogSettings struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Path is the SQLite database file. Empty with Enabled=true keeps
	// records in memory only.
	Path string `yaml:"path" json:"path"`
}

// Load reads settings from a file, auto-detecting the format by
// extension (.yaml, .yml, .json), and applies defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var s Settings
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension: %s", ext)
	}

	s.applyDefaults()
	return &s, nil
}

// Default returns settings with all defaults applied, for running without
// a config file.
func Default() *Settings {
	s := &Settings{}
	s.applyDefaults()
	return s
}

func (s *Settings) applyDefaults() {
	if s.Addr == "" {
		s.Addr = DefaultAddr
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if s.LLM.Provider == "" {
		s.LLM.Provider = DefaultProvider
	}
	if s.LLM.APIKeyEnv == "" {
		s.LLM.APIKeyEnv = DefaultAPIKeyEnv
	}
}

// APIKey resolves the configured key from the environment.
func (s *Settings) APIKey() string {
	return os.Getenv(s.LLM.APIKeyEnv)
}

// SlogLevel maps LogLevel to a slog level string understood by
// slog.Level.UnmarshalText. Unknown values fall back to info.
func (s *Settings) SlogLevel() string {
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error":
		return strings.ToLower(s.LogLevel)
	default:
		return "info"
	}
}
