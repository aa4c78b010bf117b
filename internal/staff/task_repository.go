package staff

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskRepository defines the interface for task log persistence.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) (string, error)
	ListByEmail(ctx context.Context, email string) ([]Task, error)
}

// SQLiteTaskRepository implements TaskRepository using SQLite.
type SQLiteTaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite-backed task repository.
func NewTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

// Create inserts a new task entry and returns its generated ID.
func (r *SQLiteTaskRepository) Create(ctx context.Context, task *Task) (string, error) {
	if task.ID == "" {
		task.ID = "tsk-" + uuid.NewString()[:8]
	}
	if task.Date.IsZero() {
		task.Date = time.Now().UTC()
	}

	now := time.Now().UTC().Format(time.RFC3339)
	task.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, email, title, hours_worked, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID, task.Email, task.Title, task.HoursWorked,
		task.Date.UTC().Format(time.RFC3339), now,
	)
	if err != nil {
		return "", fmt.Errorf("inserting task: %w", err)
	}

	return task.ID, nil
}

// ListByEmail returns all tasks for an owner, newest first.
func (r *SQLiteTaskRepository) ListByEmail(ctx context.Context, email string) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, title, hours_worked, date, created_at
		 FROM tasks WHERE email = ? ORDER BY date DESC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var date, createdAt string
		if err := rows.Scan(&t.ID, &t.Email, &t.Title, &t.HoursWorked, &date, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		t.Date, _ = time.Parse(time.RFC3339, date)           //nolint:errcheck // format is controlled
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}
