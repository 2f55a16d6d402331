package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for lifedash.
type Config struct {
	General   GeneralConfig   `json:"general" yaml:"general"`
	Database  DatabaseConfig  `json:"database" yaml:"database"`
	Provider  ProviderConfig  `json:"provider" yaml:"provider"`
	Assistant AssistantConfig `json:"assistant" yaml:"assistant"`
	Telegram  TelegramConfig  `json:"telegram" yaml:"telegram"`
}

type GeneralConfig struct {
	Currency string `json:"currency" yaml:"currency"` // symbol used when rendering amounts
	LogLevel string `json:"logLevel" yaml:"logLevel"`
	LogFile  string `json:"logFile,omitempty" yaml:"logFile,omitempty"`
}

type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// ProviderConfig points at a llama.cpp-compatible completion server.
type ProviderConfig struct {
	APIBase        string `json:"apiBase" yaml:"apiBase"`
	Model          string `json:"model,omitempty" yaml:"model,omitempty"`
	TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds"`
}

type AssistantConfig struct {
	HistoryTurns       int     `json:"historyTurns" yaml:"historyTurns"` // exchange pairs kept in context
	ProposalMaxTokens  int     `json:"proposalMaxTokens" yaml:"proposalMaxTokens"`
	SummaryMaxTokens   int     `json:"summaryMaxTokens" yaml:"summaryMaxTokens"`
	Temperature        float64 `json:"temperature" yaml:"temperature"`
	SummaryTemperature float64 `json:"summaryTemperature" yaml:"summaryTemperature"`
	Verbose            bool    `json:"verbose" yaml:"verbose"` // log raw model output for diagnosis
}

// TelegramConfig enables send-only expiry reminders through a bot.
type TelegramConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Token   string `json:"token,omitempty" yaml:"token,omitempty"`
	ChatID  int64  `json:"chatId,omitempty" yaml:"chatId,omitempty"`
}

// DefaultConfigDir returns the default config directory (~/.lifedash).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lifedash"
	}
	return filepath.Join(home, ".lifedash")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// Load reads a config file (JSON or YAML by extension), expands environment
// variables and ~ paths, and validates the result.
func Load(path string) (*Config, error) {
	path = ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	// Substitute environment variables: ${VAR} and ${VAR:-default}
	data = []byte(ExpandEnvVars(string(data)))

	cfg := Defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	cfg.Database.Path = ExpandPath(cfg.Database.Path)
	cfg.General.LogFile = ExpandPath(cfg.General.LogFile)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns in config strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-(.*?))?\}`)

// ExpandEnvVars replaces ${VAR} with the environment variable value.
// Supports default values: ${VAR:-default} uses "default" when VAR is unset or empty.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultVal := ""
		hasDefault := len(groups) >= 3 && groups[2] != ""
		if hasDefault {
			defaultVal = groups[2]
		}

		val, exists := os.LookupEnv(varName)
		if !exists || val == "" {
			if hasDefault {
				return defaultVal
			}
			return match // Keep original if no env var and no default
		}
		return val
	})
}

func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks that the config has valid values.
func Validate(cfg *Config) error {
	var errs []string

	switch cfg.General.LogLevel {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		errs = append(errs, "general.logLevel must be one of: debug, info, warn, error")
	}
	if cfg.Database.Path == "" {
		errs = append(errs, "database.path must not be empty")
	}
	if cfg.Provider.APIBase == "" {
		errs = append(errs, "provider.apiBase must not be empty")
	}
	if cfg.Provider.TimeoutSeconds < 1 {
		errs = append(errs, "provider.timeoutSeconds must be >= 1")
	}
	if cfg.Assistant.HistoryTurns < 1 {
		errs = append(errs, "assistant.historyTurns must be >= 1")
	}
	if cfg.Assistant.ProposalMaxTokens < 1 || cfg.Assistant.SummaryMaxTokens < 1 {
		errs = append(errs, "assistant max token limits must be >= 1")
	}
	if cfg.Assistant.Temperature < 0 || cfg.Assistant.Temperature > 2 {
		errs = append(errs, "assistant.temperature must be between 0 and 2")
	}
	if cfg.Telegram.Enabled && cfg.Telegram.Token == "" {
		errs = append(errs, "telegram.token is required when telegram is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ExpandPath resolves ~/ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
