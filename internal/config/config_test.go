package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := Validate(Defaults()); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{
		"general": {"currency": "€", "logLevel": "debug"},
		"database": {"path": "` + filepath.Join(dir, "test.db") + `"},
		"assistant": {"historyTurns": 3}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.General.Currency != "€" {
		t.Errorf("expected currency €, got %q", cfg.General.Currency)
	}
	if cfg.Assistant.HistoryTurns != 3 {
		t.Errorf("expected 3 history turns, got %d", cfg.Assistant.HistoryTurns)
	}
	// Unset fields keep defaults.
	if cfg.Provider.APIBase != "http://localhost:8080" {
		t.Errorf("expected default apiBase, got %q", cfg.Provider.APIBase)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "general:\n  logLevel: warn\nprovider:\n  apiBase: http://127.0.0.1:9090\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.General.LogLevel != "warn" {
		t.Errorf("expected logLevel warn, got %q", cfg.General.LogLevel)
	}
	if cfg.Provider.APIBase != "http://127.0.0.1:9090" {
		t.Errorf("expected overridden apiBase, got %q", cfg.Provider.APIBase)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("LIFEDASH_TEST_TOKEN", "secret123")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"set variable", `{"token": "${LIFEDASH_TEST_TOKEN}"}`, `{"token": "secret123"}`},
		{"unset with default", `"${LIFEDASH_TEST_UNSET:-fallback}"`, `"fallback"`},
		{"unset without default", `"${LIFEDASH_TEST_UNSET}"`, `"${LIFEDASH_TEST_UNSET}"`},
		{"no variables", `plain text`, `plain text`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandEnvVars(tt.input); got != tt.want {
				t.Errorf("ExpandEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Defaults()
	cfg.General.LogLevel = "loud"
	cfg.Assistant.HistoryTurns = 0
	cfg.Telegram.Enabled = true

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"logLevel", "historyTurns", "telegram.token"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error mentioning %q, got: %v", want, err)
		}
	}
}

func TestGetSetByPath(t *testing.T) {
	cfg := Defaults()
	if err := SetByPath(cfg, "assistant.historyTurns", "4"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if cfg.Assistant.HistoryTurns != 4 {
		t.Errorf("expected 4, got %d", cfg.Assistant.HistoryTurns)
	}

	val, err := GetByPath(cfg, "provider.apiBase")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if val != "http://localhost:8080" {
		t.Errorf("expected default apiBase, got %v", val)
	}
}
