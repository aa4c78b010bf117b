package staff

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates an in-memory SQLite database with the staff schema applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT,
			designation TEXT,
			bank_account TEXT,
			photo TEXT,
			role TEXT NOT NULL DEFAULT '',
			verified INTEGER NOT NULL DEFAULT 0,
			salary REAL NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		) STRICT;

		CREATE INDEX idx_users_role ON users(role);
		CREATE INDEX idx_users_role_verified ON users(role, verified);

		CREATE TABLE tasks (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			title TEXT NOT NULL,
			hours_worked REAL NOT NULL DEFAULT 0,
			date TEXT NOT NULL,
			created_at TEXT NOT NULL
		) STRICT;

		CREATE INDEX idx_tasks_email_date ON tasks(email, date DESC);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating test schema: %v", err)
	}

	return db
}
