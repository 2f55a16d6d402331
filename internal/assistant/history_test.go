package assistant

import (
	"testing"

	"lifedash/internal/domain"
)

func TestTrimHistory(t *testing.T) {
	turn := func(i int) domain.Turn {
		return domain.Turn{Role: domain.RoleUser, Content: string(rune('a' + i))}
	}
	full := []domain.Turn{turn(0), turn(1), turn(2), turn(3), turn(4), turn(5)}

	got := TrimHistory(full, 2)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got[0].Content != "c" || got[3].Content != "f" {
		t.Errorf("kept wrong window: %v", got)
	}

	if got := TrimHistory(full[:3], 2); len(got) != 3 {
		t.Errorf("short history trimmed: %v", got)
	}
	if got := TrimHistory(full, 0); got != nil {
		t.Errorf("zero turns should empty history, got %v", got)
	}
}
