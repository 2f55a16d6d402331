package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"lifedash/internal/domain"
)

const (
	settingSalary = "salary"
	settingLeave  = "leave"
)

// Settings are stored as JSON blobs in a key/value table so setup can evolve
// without schema migrations.

func (s *Store) getSetting(ctx context.Context, key string, dst any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("corrupt setting %q: %w", key, err)
	}
	return true, nil
}

func (s *Store) putSetting(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(raw),
	)
	return err
}

// SalarySettings returns the stored salary setup, or sensible defaults when
// setup has not been run yet.
func (s *Store) SalarySettings(ctx context.Context) (domain.SalarySettings, error) {
	cfg := domain.SalarySettings{
		MonthlyBase:     5000.0,
		TotalFiscalDays: 22.0,
		OverseasRatePct: 20.0,
	}
	_, err := s.getSetting(ctx, settingSalary, &cfg)
	return cfg, err
}

func (s *Store) SaveSalarySettings(ctx context.Context, cfg domain.SalarySettings) error {
	return s.putSetting(ctx, settingSalary, cfg)
}

func (s *Store) LeaveSettings(ctx context.Context) (domain.LeaveSettings, error) {
	cfg := domain.LeaveSettings{
		AnnualDays: 12.0,
	}
	_, err := s.getSetting(ctx, settingLeave, &cfg)
	return cfg, err
}

func (s *Store) SaveLeaveSettings(ctx context.Context, cfg domain.LeaveSettings) error {
	return s.putSetting(ctx, settingLeave, cfg)
}
