package store

import (
	"context"
	"fmt"

	"lifedash/internal/domain"
)

func (s *Store) AddTask(ctx context.Context, text string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO tasks (task, done) VALUES (?, 0)`, text)
	return err
}

func (s *Store) CompleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET done = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no task with id %d", id)
	}
	return nil
}

// ListTasks returns tasks, open ones first. Completed tasks are included only
// when includeDone is set.
func (s *Store) ListTasks(ctx context.Context, includeDone bool) ([]domain.Task, error) {
	query := `SELECT id, task, done FROM tasks`
	if !includeDone {
		query += ` WHERE done = 0`
	}
	query += ` ORDER BY done ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Task
	for rows.Next() {
		var t domain.Task
		var done int
		if err := rows.Scan(&t.ID, &t.Task, &done); err != nil {
			return nil, err
		}
		t.Done = done != 0
		out = append(out, t)
	}
	return out, rows.Err()
}
