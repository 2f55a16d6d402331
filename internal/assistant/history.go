package assistant

import "lifedash/internal/domain"

// TrimHistory bounds the conversation window to the last turns exchanges,
// two entries each, dropping the oldest first. A non-positive turns empties
// the history entirely.
func TrimHistory(history []domain.Turn, turns int) []domain.Turn {
	if turns <= 0 {
		return nil
	}
	max := turns * 2
	if len(history) <= max {
		return history
	}
	return history[len(history)-max:]
}
