package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// queryEnvelope is the structured result every SQL tool call produces. The
// summarization pass receives it verbatim, so its shape is part of the
// model-facing protocol.
type queryEnvelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Query   string `json:"query"`
}

const (
	statusSuccess   = "success"
	statusNoResults = "no_results"
	statusError     = "error"
)

// dangerousSQL matches statements that mutate or restructure data even when
// they begin with an allowed keyword, e.g. a CTE wrapping a DELETE.
var dangerousSQL = regexp.MustCompile(`(?i)\b(INSERT|UPDATE|DELETE|DROP|ALTER|CREATE|TRUNCATE|REPLACE|ATTACH|DETACH|PRAGMA|VACUUM)\b`)

// aggregateColumn recognizes lone aggregate result columns so an empty-table
// SUM does not read as a found value of zero.
var aggregateColumn = regexp.MustCompile(`(?i)(SUM|COUNT|AVG|TOTAL|MIN|MAX)`)

// validateReadOnly rejects anything that is not a plain SELECT. The database
// handle the assistant runs against has full rights, so this gate is the only
// thing keeping model-generated SQL read-only.
func validateReadOnly(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fmt.Errorf("empty query")
	}
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return errors.New("Only safe SELECT queries are permitted for data analysis.")
	}
	if m := dangerousSQL.FindString(trimmed); m != "" {
		return fmt.Errorf("statement contains forbidden keyword %s", strings.ToUpper(m))
	}
	if strings.Count(trimmed, ";") > 1 || (strings.Contains(trimmed, ";") && !strings.HasSuffix(trimmed, ";")) {
		return fmt.Errorf("multiple statements are not allowed")
	}
	return nil
}

// sqlQueryTool runs a read-only SELECT against the tracker database and wraps
// the outcome in the status envelope.
func sqlQueryTool(store Store) *ToolSpec {
	return &ToolSpec{
		Name: toolSQLQuery,
		Description: "Use for complex data analysis, calculating totals (SUM/COUNT), or filtering logs. " +
			"CRITICAL RULE: When using SUM, COUNT, or AVG, you MUST assign an alias using the 'AS' keyword (e.g., 'SELECT SUM(amount) AS total_amount'). " +
			"DATE FILTERING FORMAT: Use SUBSTR(date, 1, 7) = 'YYYY-MM' for month filtering, or SUBSTR(date, 1, 4) = 'YYYY' for year filtering. " +
			"IMPORTANT PLACEHOLDERS: For current time, use '{{CURRENT_YEAR}}' or '{{CURRENT_MONTH}}' (format MM). For relative time, use '{{CURRENT_YEAR-N}}' or '{{CURRENT_MONTH+N}}'. " +
			"Example Month Query: WHERE SUBSTR(date, 1, 7) = '{{CURRENT_YEAR}}-{{CURRENT_MONTH}}'. " +
			"Use this tool for all queries involving TOTAL DAYS OF LEAVE, expenses analysis, or counting tasks. " +
			"Use this tool for queries involving: SOONEST, LATEST, HIGHEST, LOWEST, AVG. " +
			"Available Tables & Columns: " +
			"1. leave_logs (id, date, days, description) - Use SUM(days) for total leave. " +
			"2. expenses (id, date, category, description, amount) - Use SUM(amount) for totals. " +
			"3. tasks (id, task, done) " +
			"4. documents (id, name, expiry_date) - Use ORDER BY expiry_date ASC LIMIT 1 for 'soonest'. " +
			"5. allowance_logs (id, date, start_date, end_date, overseas_days, overtime_days, allowance_amount, overtime_amount, total_earned) " +
			"6. loans_master (id, description, total_amount, monthly_payment, start_date, duration_months, due_day, status) - Use this for general loan terms. " +
			"7. loan_payments (id, loan_id, payment_date, amount_paid) - Use with SUM(amount_paid) and JOIN on loans_master for balances.",
		Schema: Schema{
			"query": {
				Type:        ArgString,
				Description: "The full, safe SQL SELECT query to run against the database.",
				Required:    true,
			},
		},
		Run: func(ctx context.Context, args map[string]any) (string, error) {
			return runQuery(ctx, store, args["query"].(string)), nil
		},
	}
}

// runQuery never returns an error: SQL failures are data for the summarizer,
// encoded as an error envelope, not pipeline aborts.
func runQuery(ctx context.Context, store Store, query string) string {
	if err := validateReadOnly(query); err != nil {
		return marshalEnvelope(queryEnvelope{
			Status:  statusError,
			Message: err.Error(),
			Query:   query,
		})
	}

	columns, rows, err := store.Query(ctx, query)
	if err != nil {
		return marshalEnvelope(queryEnvelope{
			Status:  statusError,
			Message: err.Error(),
			Query:   query,
		})
	}

	if len(rows) == 0 {
		return marshalEnvelope(queryEnvelope{
			Status:  statusNoResults,
			Message: "The query ran successfully but matched no rows.",
			Query:   query,
		})
	}

	// A lone aggregate over an empty table yields one row with NULL or zero.
	// That is "nothing found", not a result of 0.
	if len(rows) == 1 && len(columns) == 1 && aggregateColumn.MatchString(columns[0]) {
		if isZeroAggregate(rows[0][0]) {
			return marshalEnvelope(queryEnvelope{
				Status:  statusNoResults,
				Data:    map[string]any{columns[0]: 0.0},
				Message: "The aggregate matched no underlying rows.",
				Query:   query,
			})
		}
	}

	data := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]any, len(columns))
		for i, col := range columns {
			rec[col] = cellValue(row[i])
		}
		data = append(data, rec)
	}

	return marshalEnvelope(queryEnvelope{
		Status: statusSuccess,
		Data:   data,
		Query:  query,
	})
}

func isZeroAggregate(v any) bool {
	switch n := v.(type) {
	case nil:
		return true
	case int64:
		return n == 0
	case float64:
		return n == 0
	default:
		return false
	}
}

func cellValue(v any) any {
	switch c := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(c)
	default:
		return c
	}
}

func marshalEnvelope(env queryEnvelope) string {
	raw, err := json.Marshal(env)
	if err != nil {
		return errorPayload(err.Error())
	}
	return string(raw)
}
