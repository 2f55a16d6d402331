package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lifedash/internal/config"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run diagnostic checks on your lifedash installation",
		Long: `Verifies that lifedash's configuration, database, model server, and
log destination are correctly set up. Reports pass/fail for each check.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			fmt.Printf("lifedash doctor v%s\n", version)
			fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

			passed := 0
			failed := 0
			warned := 0

			// 1. Config file exists
			if _, err := os.Stat(cfgPath); err != nil {
				printFail("Config file", fmt.Sprintf("not found at %s", cfgPath))
				failed++
				fmt.Printf("\nRun 'lifedash init' to create a default configuration.\n")
				return nil
			}
			printPass("Config file", cfgPath)
			passed++

			// 2. Config loads and validates
			cfg, err := config.Load(cfgPath)
			if err != nil {
				printFail("Config validation", err.Error())
				failed++
				fmt.Printf("\n%d passed, %d failed\n", passed, failed)
				return nil
			}
			printPass("Config validation", "valid")
			passed++

			// 3. Database writable
			dbPath := config.ExpandPath(cfg.Database.Path)
			if err := checkDatabase(dbPath); err != nil {
				printFail("Database", err.Error())
				failed++
			} else {
				printPass("Database", dbPath)
				passed++
			}

			// 4. Model server reachable
			gen := newGenerator(cfg)
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			if err := gen.Healthy(ctx); err != nil {
				printWarn("Model server", fmt.Sprintf("%s unreachable: %v", cfg.Provider.APIBase, err))
				warned++
			} else {
				printPass("Model server", cfg.Provider.APIBase)
				passed++
			}
			cancel()

			// 5. Telegram configured consistently
			if cfg.Telegram.Enabled {
				if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
					printWarn("Telegram", "enabled but token or chatId missing")
					warned++
				} else {
					printPass("Telegram", "configured")
					passed++
				}
			}

			// 6. Log file writable
			if cfg.General.LogFile != "" {
				logPath := config.ExpandPath(cfg.General.LogFile)
				if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
					printWarn("Log file", fmt.Sprintf("cannot create log directory: %v", err))
					warned++
				} else {
					printPass("Log file", logPath)
					passed++
				}
			}

			fmt.Printf("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
			fmt.Printf("Results: %d passed, %d warnings, %d failed\n", passed, warned, failed)
			if failed > 0 {
				fmt.Printf("\nPlease fix the failed checks before using lifedash.\n")
				return fmt.Errorf("%d check(s) failed", failed)
			}
			if warned > 0 {
				fmt.Printf("\nlifedash should work but consider fixing the warnings.\n")
			} else {
				fmt.Printf("\nAll checks passed! lifedash is ready to run.\n")
			}
			return nil
		},
	}
}

func checkDatabase(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("cannot create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("cannot open: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("cannot ping: %w", err)
	}

	// Try a write.
	if _, err := db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS _doctor_test (id INTEGER PRIMARY KEY)"); err != nil {
		return fmt.Errorf("not writable: %w", err)
	}
	db.ExecContext(ctx, "DROP TABLE IF EXISTS _doctor_test")

	return nil
}

func printPass(check, detail string) {
	fmt.Printf("  [PASS] %-20s %s\n", check, detail)
}

func printFail(check, detail string) {
	fmt.Printf("  [FAIL] %-20s %s\n", check, detail)
}

func printWarn(check, detail string) {
	fmt.Printf("  [WARN] %-20s %s\n", check, detail)
}
