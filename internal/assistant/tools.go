package assistant

import (
	"context"
	"fmt"
	"strings"

	"lifedash/internal/finance"
)

// Tool names are part of the model-facing protocol. Renaming one silently
// breaks every prompt that references it.
const (
	toolConversation   = "respond_conversationally"
	toolSalary         = "query_salary_allowance"
	toolDocumentExpiry = "query_document_expiry"
	toolSQLQuery       = "execute_sql_query"
)

// conversationTool echoes the model's own reply back to the user. It is the
// only tool whose output skips the summarization pass.
func conversationTool() *ToolSpec {
	return &ToolSpec{
		Name:        toolConversation,
		Description: "Use this tool ONLY for simple greetings, acknowledgments (like Hi, Thanks, Bye), or questions completely unrelated to financial or tracking data.",
		Schema: Schema{
			"response": {
				Type:        ArgString,
				Description: "A simple greeting or brief, direct answer to the user's non-data query.",
				Required:    true,
			},
		},
		Run: func(ctx context.Context, args map[string]any) (string, error) {
			return args["response"].(string), nil
		},
	}
}

// salaryAllowanceTool computes the overseas allowance and overtime pay from
// the saved salary settings, with an optional base salary override.
func salaryAllowanceTool(store Store, currency string) *ToolSpec {
	return &ToolSpec{
		Name:        toolSalary,
		Description: "Calculates projected salary/allowance based on days worked.",
		Schema: Schema{
			"days_overseas": {
				Type:        ArgInteger,
				Description: "Total days worked overseas (positive integer).",
				Required:    true,
				Min:         intPtr(0),
			},
			"days_overtime": {
				Type:        ArgInteger,
				Description: "Total overtime days worked (weekends, positive integer).",
				Required:    true,
				Min:         intPtr(0),
			},
			"base_salary": {
				Type:        ArgNumber,
				Description: "Optional override for monthly base salary.",
			},
		},
		Run: func(ctx context.Context, args map[string]any) (string, error) {
			settings, err := store.SalarySettings(ctx)
			if err != nil {
				return "", fmt.Errorf("loading salary settings: %w", err)
			}
			base := settings.MonthlyBase
			if override, ok := args["base_salary"].(float64); ok {
				base = override
			}
			overseas := float64(args["days_overseas"].(int))
			overtime := float64(args["days_overtime"].(int))

			allowance, overtimePay := finance.Allowance(
				base, settings.TotalFiscalDays, overseas, overtime, settings.OverseasRatePct)
			total := allowance + overtimePay

			return fmt.Sprintf(
				"Based on a monthly salary of %s%.2f, working %.0f overseas days and %.0f overtime days yields a total allowance of %s%.2f (Allowance: %s%.2f, Overtime: %s%.2f).",
				currency, base, overseas, overtime,
				currency, total, currency, allowance, currency, overtimePay,
			), nil
		},
	}
}

// documentExpiryTool lists documents expiring in a given year, optionally
// narrowed to one month.
func documentExpiryTool(store Store) *ToolSpec {
	return &ToolSpec{
		Name:        toolDocumentExpiry,
		Description: "Checks which documents are expiring in a specific month AND year. Use for simple date filtering, not ranking (soonest/latest).",
		Schema: Schema{
			"target_year": {
				Type:        ArgInteger,
				Description: "The year to check for expiry (e.g., 2026).",
				Required:    true,
			},
			"target_month": {
				Type:        ArgInteger,
				Description: "The month (1-12) to check. If omitted, the entire year is checked.",
				Min:         intPtr(1),
				Max:         intPtr(12),
			},
		},
		Run: func(ctx context.Context, args map[string]any) (string, error) {
			year := args["target_year"].(int)
			month := 0
			if m, ok := args["target_month"].(int); ok {
				month = m
			}

			docs, err := store.DocumentsExpiring(ctx, year, month)
			if err != nil {
				return fmt.Sprintf("ERROR: Could not query database for expiry: %v", err), nil
			}

			if len(docs) == 0 {
				period := fmt.Sprintf("in the year %d", year)
				if month > 0 {
					period = fmt.Sprintf("in %d/%d", month, year)
				}
				return fmt.Sprintf("No documents found expiring %s.", period), nil
			}

			entries := make([]string, 0, len(docs))
			for _, d := range docs {
				entries = append(entries, fmt.Sprintf("%s on %s", d.Name, d.ExpiryDate))
			}
			return "Documents expiring in the requested period: " + strings.Join(entries, ", "), nil
		},
	}
}

func intPtr(n int) *int { return &n }
