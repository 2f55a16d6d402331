package assistant

import (
	"context"
	"strings"
	"testing"
)

func TestRegistryIsClosed(t *testing.T) {
	reg := NewRegistry(&stubStore{}, "$", testLogger())

	specs := reg.Specs()
	if len(specs) != 4 {
		t.Fatalf("registry holds %d tools, want 4", len(specs))
	}
	wantOrder := []string{toolConversation, toolSalary, toolDocumentExpiry, toolSQLQuery}
	for i, want := range wantOrder {
		if specs[i].Name != want {
			t.Errorf("specs[%d] = %q, want %q", i, specs[i].Name, want)
		}
	}

	if _, ok := reg.Lookup("run_shell_command"); ok {
		t.Error("lookup of unregistered name succeeded")
	}
	if _, ok := reg.Lookup(toolSQLQuery); !ok {
		t.Error("lookup of registered name failed")
	}
}

func TestSalaryAllowanceTool(t *testing.T) {
	store := &stubStore{}
	tool := salaryAllowanceTool(store, "$")

	args, err := tool.Schema.Validate(map[string]any{"days_overseas": float64(10), "days_overtime": float64(2)})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	out, err := tool.Run(context.Background(), args)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// 5000/22 daily: 10 days at 20% = 454.55, 2 overtime days = 454.55.
	if !strings.Contains(out, "Allowance: $454.55") || !strings.Contains(out, "Overtime: $454.55") {
		t.Errorf("output = %q", out)
	}
	if store.salaryCalls != 1 {
		t.Errorf("salary settings loaded %d times", store.salaryCalls)
	}
}

func TestSalaryAllowanceToolBaseOverride(t *testing.T) {
	tool := salaryAllowanceTool(&stubStore{}, "$")
	args, err := tool.Schema.Validate(map[string]any{
		"days_overseas": float64(11),
		"days_overtime": float64(0),
		"base_salary":   float64(2200),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	out, err := tool.Run(context.Background(), args)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// 2200/22 daily: 11 days at 20% = 220.00.
	if !strings.Contains(out, "Allowance: $220.00") {
		t.Errorf("output = %q", out)
	}
}

func TestDocumentExpiryToolRejectsBadMonth(t *testing.T) {
	tool := documentExpiryTool(&stubStore{})
	_, err := tool.Schema.Validate(map[string]any{"target_year": float64(2026), "target_month": float64(13)})
	if err == nil || !strings.Contains(err.Error(), "above maximum") {
		t.Errorf("month 13 accepted: %v", err)
	}
}

func TestDocumentExpiryToolWholeYear(t *testing.T) {
	store := &stubStore{}
	tool := documentExpiryTool(store)
	args, err := tool.Schema.Validate(map[string]any{"target_year": float64(2026)})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	out, err := tool.Run(context.Background(), args)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "in the year 2026") {
		t.Errorf("output = %q", out)
	}
	if store.docCalls != 1 {
		t.Errorf("documents queried %d times", store.docCalls)
	}
}
