package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"lifedash/internal/assistant"
	"lifedash/internal/config"
	"lifedash/internal/provider"
	"lifedash/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version    = "0.3.0"
	logger     *slog.Logger
	configPath string // overridable via --config flag
)

func main() {
	// A .env beside the binary may carry TELEGRAM_TOKEN and friends for
	// ${VAR} expansion in the config file. Missing files are fine.
	_ = godotenv.Load()

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:     "lifedash",
		Short:   "lifedash: personal finance and life tracker with a local AI assistant",
		Long:    "lifedash tracks expenses, documents, tasks, leave, salary allowances, and loans in a local SQLite file, and answers questions about them through a local LLM.",
		Version: version,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: ~/.lifedash/config.json)")

	root.AddCommand(initCmd())
	root.AddCommand(assistantCmd())
	root.AddCommand(expenseCmd())
	root.AddCommand(taskCmd())
	root.AddCommand(docCmd())
	root.AddCommand(leaveCmd())
	root.AddCommand(salaryCmd())
	root.AddCommand(loanCmd())
	root.AddCommand(dashboardCmd())
	root.AddCommand(remindCmd())
	root.AddCommand(backupCmd())
	root.AddCommand(restoreCmd())
	root.AddCommand(doctorCmd())
	root.AddCommand(statusCmd())
	root.AddCommand(configCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfigPath returns the config path from --config flag or default.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the config file, falling back to defaults when absent, and
// rebuilds the process logger at the configured level and destination.
func loadConfig() *config.Config {
	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Debug("config not found, using defaults", "path", cfgPath, "err", err)
		cfg = config.Defaults()
	}
	logger = buildLogger(cfg)
	return cfg
}

func buildLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.General.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if cfg.Assistant.Verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if cfg.General.LogFile != "" {
		f, err := os.OpenFile(config.ExpandPath(cfg.General.LogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Warn("cannot open log file, logging to stderr", "path", cfg.General.LogFile, "err", err)
		} else {
			w = f
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func openStore(cfg *config.Config) (*store.Store, error) {
	return store.Open(config.ExpandPath(cfg.Database.Path), logger)
}

func newGenerator(cfg *config.Config) *provider.Llama {
	return provider.NewLlama(provider.LlamaConfig{
		APIBase: cfg.Provider.APIBase,
		Model:   cfg.Provider.Model,
		Timeout: time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		Logger:  logger,
	})
}

func newPipeline(cfg *config.Config, st *store.Store) *assistant.Pipeline {
	registry := assistant.NewRegistry(st, cfg.General.Currency, logger)
	return assistant.NewPipeline(newGenerator(cfg), registry, logger, assistant.Options{
		ProposalMaxTokens:  cfg.Assistant.ProposalMaxTokens,
		SummaryMaxTokens:   cfg.Assistant.SummaryMaxTokens,
		Temperature:        cfg.Assistant.Temperature,
		SummaryTemperature: cfg.Assistant.SummaryTemperature,
	})
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize config and database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir := config.DefaultConfigDir()
			cfgPath := resolveConfigPath()
			if err := os.MkdirAll(cfgDir, 0o755); err != nil {
				return err
			}
			cfg := config.Defaults()
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("config already exists at %s", cfgPath)
			}
			if err := config.Save(cfgPath, cfg); err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			logger.Info("initialized", "config", cfgPath, "database", config.ExpandPath(cfg.Database.Path))
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show system status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			cfg, err := config.Load(cfgPath)
			if err != nil {
				logger.Info("config", "path", cfgPath, "loaded", false)
				cfg = config.Defaults()
			} else {
				logger.Info("config", "path", cfgPath, "loaded", true)
			}

			st, err := openStore(cfg)
			if err != nil {
				logger.Info("database", "path", cfg.Database.Path, "open", false, "err", err)
			} else {
				logger.Info("database", "path", cfg.Database.Path, "open", true)
				st.Close()
			}

			gen := newGenerator(cfg)
			if err := gen.Healthy(cmd.Context()); err != nil {
				logger.Info("provider", "name", gen.Name(), "healthy", false, "err", err)
			} else {
				logger.Info("provider", "name", gen.Name(), "healthy", true)
			}
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and modify configuration",
		Long:  "Get, set, and list configuration values. Changes are saved to the config file.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get [path]",
		Short: "Get a config value (e.g. provider.apiBase)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			val, err := config.GetByPath(cfg, args[0])
			if err != nil {
				return err
			}
			data, _ := json.MarshalIndent(val, "", "  ")
			fmt.Println(string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [path] [value]",
		Short: "Set a config value (e.g. general.currency €)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := config.SetByPath(cfg, args[0], args[1]); err != nil {
				return fmt.Errorf("set value: %w", err)
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			if err := config.Save(cfgPath, cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			logger.Info("config updated", "path", args[0], "value", args[1], "file", cfgPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all config values",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			data, _ := json.MarshalIndent(config.Sanitize(cfg), "", "  ")
			fmt.Println(string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(resolveConfigPath())
		},
	})

	return cmd
}
