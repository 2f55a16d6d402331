package assistant

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestValidateReadOnly(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"plain select", "SELECT * FROM expenses", false},
		{"lowercase select", "select sum(amount) from expenses", false},
		{"cte select", "WITH t AS (SELECT 1) SELECT * FROM t", false},
		{"trailing semicolon", "SELECT 1;", false},
		{"empty", "   ", true},
		{"delete", "DELETE FROM expenses", true},
		{"update via cte", "WITH t AS (SELECT 1) UPDATE expenses SET amount = 0", true},
		{"drop", "DROP TABLE expenses", true},
		{"pragma", "PRAGMA writable_schema = 1", true},
		{"stacked statements", "SELECT 1; DELETE FROM expenses", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateReadOnly(tt.query)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateReadOnly(%q) error = %v, wantErr %v", tt.query, err, tt.wantErr)
			}
		})
	}
}

func decodeEnvelope(t *testing.T, raw string) queryEnvelope {
	t.Helper()
	var env queryEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("result is not a valid envelope: %v\n%s", err, raw)
	}
	return env
}

func TestRunQueryRejection(t *testing.T) {
	store := &stubStore{}
	env := decodeEnvelope(t, runQuery(context.Background(), store, "DELETE FROM expenses"))
	if env.Status != statusError {
		t.Errorf("status = %q, want error", env.Status)
	}
	if store.queryCalls != 0 {
		t.Errorf("forbidden statement reached the store")
	}
}

func TestRunQuerySuccess(t *testing.T) {
	store := &stubStore{
		columns: []string{"category", "amount"},
		rows:    [][]any{{"food", 12.5}, {"transport", nil}},
	}
	env := decodeEnvelope(t, runQuery(context.Background(), store, "SELECT category, amount FROM expenses"))
	if env.Status != statusSuccess {
		t.Fatalf("status = %q", env.Status)
	}
	rows, ok := env.Data.([]any)
	if !ok || len(rows) != 2 {
		t.Fatalf("data = %#v", env.Data)
	}
	second := rows[1].(map[string]any)
	if second["amount"] != "NULL" {
		t.Errorf("nil cell rendered as %v, want \"NULL\"", second["amount"])
	}
}

func TestRunQueryNoRows(t *testing.T) {
	store := &stubStore{columns: []string{"id"}, rows: nil}
	env := decodeEnvelope(t, runQuery(context.Background(), store, "SELECT id FROM tasks WHERE done = 1"))
	if env.Status != statusNoResults {
		t.Errorf("status = %q, want no_results", env.Status)
	}
}

func TestRunQueryAggregateZero(t *testing.T) {
	tests := []struct {
		name   string
		column string
		cell   any
		want   string
	}{
		{"null sum", "SUM(amount)", nil, statusNoResults},
		{"zero count", "COUNT(*)", int64(0), statusNoResults},
		{"aliased total", "total_spent", nil, statusNoResults},
		{"real aggregate value", "SUM(amount)", 88.2, statusSuccess},
		{"non-aggregate null", "note", nil, statusSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{columns: []string{tt.column}, rows: [][]any{{tt.cell}}}
			env := decodeEnvelope(t, runQuery(context.Background(), store, "SELECT x FROM expenses"))
			if env.Status != tt.want {
				t.Errorf("status = %q, want %q", env.Status, tt.want)
			}
		})
	}
}

func TestRunQueryStoreError(t *testing.T) {
	store := &stubStore{queryErr: errSQL("no such table: expnses")}
	env := decodeEnvelope(t, runQuery(context.Background(), store, "SELECT * FROM expnses"))
	if env.Status != statusError {
		t.Fatalf("status = %q", env.Status)
	}
	if !strings.Contains(env.Message, "no such table") {
		t.Errorf("message = %q", env.Message)
	}
	if env.Query != "SELECT * FROM expnses" {
		t.Errorf("query echo = %q", env.Query)
	}
}

type errSQL string

func (e errSQL) Error() string { return string(e) }
