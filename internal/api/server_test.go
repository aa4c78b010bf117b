package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/staffsphere/staffsphere-core/internal/audit"
	"github.com/staffsphere/staffsphere-core/internal/auth"
	"github.com/staffsphere/staffsphere-core/internal/infrastructure/config"
	"github.com/staffsphere/staffsphere-core/internal/infrastructure/logging"
	"github.com/staffsphere/staffsphere-core/internal/staff"
)

const testSecret = "test-secret-key-at-least-32-characters-long"

// testServer creates a Server with repositories backed by in-memory SQLite.
func testServer(t *testing.T) (*Server, staff.UserRepository, staff.TaskRepository) {
	t.Helper()

	db := setupTestDB(t)
	users := staff.NewUserRepository(db)
	tasks := staff.NewTaskRepository(db)
	auditRepo := audit.NewSQLiteRepository(db)

	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	srv, err := New(Deps{
		Config: config.APIConfig{
			Host: "127.0.0.1",
			Port: 0,
			Timeouts: config.APITimeoutConfig{
				Read:  5,
				Write: 5,
				Idle:  5,
			},
		},
		Security: config.SecurityConfig{
			JWT: config.JWTConfig{
				Secret:         testSecret,
				AccessTokenTTL: 15,
			},
		},
		Logger:  log,
		Users:   users,
		Tasks:   tasks,
		Audit:   auditRepo,
		Version: "test",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	return srv, users, tasks
}

// setupTestDB creates an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

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

		CREATE TABLE tasks (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			title TEXT NOT NULL,
			hours_worked REAL NOT NULL DEFAULT 0,
			date TEXT NOT NULL,
			created_at TEXT NOT NULL
		) STRICT;
		CREATE INDEX idx_tasks_email_date ON tasks(email, date DESC);

		CREATE TABLE audit_logs (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			entity_type TEXT NOT NULL,
			entity_id TEXT,
			actor_email TEXT,
			details TEXT,
			created_at TEXT NOT NULL
		) STRICT;
	`

	if _, execErr := db.Exec(schema); execErr != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", execErr)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// issueTestToken signs a token for the given email with the test secret.
func issueTestToken(t *testing.T, email string) string {
	t.Helper()

	token, err := auth.IssueToken(map[string]any{"email": email}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("issuing test token: %v", err)
	}
	return token
}

// seedUser inserts an account with the given email and role.
func seedUser(t *testing.T, users staff.UserRepository, email string, role staff.Role) string {
	t.Helper()

	id, err := users.Insert(context.Background(), &staff.User{Email: email, Role: role})
	if err != nil {
		t.Fatalf("seeding user %s: %v", email, err)
	}
	return id
}

// authedRequest builds a request carrying a bearer token for the given email.
func authedRequest(t *testing.T, method, target, email string, body *string) *http.Request {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(*body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, email))
	return req
}

// ─── Liveness and Health Tests ─────────────────────────────────────

func TestRoot_Liveness(t *testing.T) {
	srv, _, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "StaffSphere is sitting" {
		t.Errorf("body = %q, want %q", w.Body.String(), "StaffSphere is sitting")
	}
}

func TestHealth(t *testing.T) {
	srv, _, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
	if resp["version"] != "test" {
		t.Errorf("version = %v, want test", resp["version"])
	}
}

func TestHealth_ContentType(t *testing.T) {
	srv, _, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	ct := w.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}
}

// ─── Middleware Tests ──────────────────────────────────────────────

func TestRequestID_Generated(t *testing.T) {
	srv, _, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header to be set")
	}
}

func TestRequestID_PreservesClient(t *testing.T) {
	srv, _, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "client-123" {
		t.Errorf("X-Request-ID = %q, want %q", got, "client-123")
	}
}

func TestCORS_Preflight(t *testing.T) {
	srv, _, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("ACAO = %q, want %q", got, "http://localhost:3000")
	}
}

func TestNotFound(t *testing.T) {
	srv, _, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// ─── Server Lifecycle Tests ────────────────────────────────────────

func TestNew_MissingDeps(t *testing.T) {
	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")
	db := setupTestDB(t)
	users := staff.NewUserRepository(db)
	tasks := staff.NewTaskRepository(db)
	security := config.SecurityConfig{JWT: config.JWTConfig{Secret: testSecret, AccessTokenTTL: 15}}

	tests := []struct {
		name string
		deps Deps
	}{
		{"missing logger", Deps{Users: users, Tasks: tasks, Security: security}},
		{"missing users", Deps{Logger: log, Tasks: tasks, Security: security}},
		{"missing tasks", Deps{Logger: log, Users: users, Security: security}},
		{"missing secret", Deps{Logger: log, Users: users, Tasks: tasks}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.deps); err == nil {
				t.Error("New() should fail")
			}
		})
	}
}

func TestServer_StartAndClose(t *testing.T) {
	srv, _, _ := testServer(t)
	srv.cfg.Port = 19080

	ctx, cancel := context.WithCancel(context.Background())

	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	// Wait for server to be ready
	time.Sleep(100 * time.Millisecond)

	addr := fmt.Sprintf("127.0.0.1:%d", srv.cfg.Port)
	resp, err := http.Get("http://" + addr + "/health")
	if err != nil {
		t.Fatalf("health check failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("health check status = %d, want 200", resp.StatusCode)
	}

	cancel()
	if err := srv.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	if _, err = http.Get("http://" + addr + "/health"); err == nil {
		t.Error("server still responding after Close()")
	}
}

func TestServer_HealthCheck_NotStarted(t *testing.T) {
	srv, _, _ := testServer(t)

	if err := srv.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck should fail before Start()")
	}
}
