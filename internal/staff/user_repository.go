package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRepository defines the interface for staff account persistence.
type UserRepository interface {
	Insert(ctx context.Context, user *User) (string, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRoleByID(ctx context.Context, id string, role Role) (UpdateResult, error)
	UpdateRoleByEmail(ctx context.Context, email string, role Role) (UpdateResult, error)
	UpdateVerifiedByEmail(ctx context.Context, email string, verified bool) (UpdateResult, error)
	UpdateSalaryByEmail(ctx context.Context, email string, salary float64) (UpdateResult, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	ListVerifiedByRoles(ctx context.Context, roles []Role, verified bool) ([]User, error)
	CountByRole(ctx context.Context, role Role) (int, error)
}

// SQLiteUserRepository implements UserRepository using SQLite.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed user repository.
func NewUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

const userColumns = "id, email, name, designation, bank_account, photo, role, verified, salary, created_at, updated_at"

// Insert creates a new staff account and returns its generated ID.
// The role is validated against the closed set; a duplicate email returns
// ErrEmailExists without touching the existing record.
func (r *SQLiteUserRepository) Insert(ctx context.Context, user *User) (string, error) {
	if !IsValidRole(user.Role) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, user.Role)
	}

	if user.ID == "" {
		user.ID = "usr-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	user.UpdatedAt = user.CreatedAt

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, designation, bank_account, photo, role, verified, salary, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, nullString(user.Name), nullString(user.Designation),
		nullString(user.BankAccount), nullString(user.Photo),
		string(user.Role), boolToInt(user.Verified), user.Salary, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrEmailExists
		}
		return "", fmt.Errorf("inserting user: %w", err)
	}

	return user.ID, nil
}

// GetByEmail retrieves a user by their email address.
func (r *SQLiteUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
}

// GetByID retrieves a user by their unique ID.
func (r *SQLiteUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

// List returns all users ordered by creation date.
func (r *SQLiteUserRepository) List(ctx context.Context) ([]User, error) {
	return r.listUsers(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at ASC")
}

// UpdateRoleByID changes a user's role. Unknown IDs return ErrUserNotFound.
func (r *SQLiteUserRepository) UpdateRoleByID(ctx context.Context, id string, role Role) (UpdateResult, error) {
	if !IsValidRole(role) {
		return UpdateResult{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return r.update(ctx,
		"UPDATE users SET role = ?, updated_at = ? WHERE id = ?",
		string(role), nowRFC3339(), id,
	)
}

// UpdateRoleByEmail changes a user's role. Unknown emails return ErrUserNotFound.
func (r *SQLiteUserRepository) UpdateRoleByEmail(ctx context.Context, email string, role Role) (UpdateResult, error) {
	if !IsValidRole(role) {
		return UpdateResult{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return r.update(ctx,
		"UPDATE users SET role = ?, updated_at = ? WHERE email = ?",
		string(role), nowRFC3339(), email,
	)
}

// UpdateVerifiedByEmail sets a user's verification flag.
func (r *SQLiteUserRepository) UpdateVerifiedByEmail(ctx context.Context, email string, verified bool) (UpdateResult, error) {
	return r.update(ctx,
		"UPDATE users SET verified = ?, updated_at = ? WHERE email = ?",
		boolToInt(verified), nowRFC3339(), email,
	)
}

// UpdateSalaryByEmail sets a user's salary unconditionally. The monotonic
// non-decrease business rule lives in the API layer, which reads the current
// salary first; the store itself stays policy-free.
func (r *SQLiteUserRepository) UpdateSalaryByEmail(ctx context.Context, email string, salary float64) (UpdateResult, error) {
	return r.update(ctx,
		"UPDATE users SET salary = ?, updated_at = ? WHERE email = ?",
		salary, nowRFC3339(), email,
	)
}

// DeleteByID removes a staff account and returns the deleted row count.
func (r *SQLiteUserRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("deleting user: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	return rows, nil
}

// ListByRole returns all users with the given role, ordered by creation date.
func (r *SQLiteUserRepository) ListByRole(ctx context.Context, role Role) ([]User, error) {
	return r.listUsers(ctx,
		"SELECT "+userColumns+" FROM users WHERE role = ? ORDER BY created_at ASC",
		string(role),
	)
}

// ListVerifiedByRoles returns users whose role is in the given set and whose
// verification flag matches.
func (r *SQLiteUserRepository) ListVerifiedByRoles(ctx context.Context, roles []Role, verified bool) ([]User, error) {
	if len(roles) == 0 {
		return []User{}, nil
	}

	placeholders := strings.Repeat("?,", len(roles))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(roles)+1)
	for _, role := range roles {
		args = append(args, string(role))
	}
	args = append(args, boolToInt(verified))

	return r.listUsers(ctx,
		"SELECT "+userColumns+" FROM users WHERE role IN ("+placeholders+") AND verified = ? ORDER BY created_at ASC",
		args...,
	)
}

// CountByRole returns the number of accounts with the given role.
func (r *SQLiteUserRepository) CountByRole(ctx context.Context, role Role) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role = ?", string(role),
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

// update runs an UPDATE statement and maps zero affected rows to ErrUserNotFound.
func (r *SQLiteUserRepository) update(ctx context.Context, query string, args ...any) (UpdateResult, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("updating user: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return UpdateResult{}, ErrUserNotFound
	}
	return UpdateResult{Matched: rows, Modified: rows}, nil
}

// getUser executes a query and scans a single user result.
func (r *SQLiteUserRepository) getUser(ctx context.Context, query string, args ...any) (*User, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	return scanUserFrom(row)
}

// listUsers executes a query and scans all user results.
func (r *SQLiteUserRepository) listUsers(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUserFrom(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	if users == nil {
		users = []User{}
	}
	return users, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanUserFrom scans a user from any scanner (Row or Rows).
func scanUserFrom(s scanner) (*User, error) {
	var u User
	var name, designation, bankAccount, photo sql.NullString
	var role string
	var verified int
	var createdAt, updatedAt string

	err := s.Scan(&u.ID, &u.Email, &name, &designation, &bankAccount, &photo,
		&role, &verified, &u.Salary, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	u.Role = Role(role)
	u.Verified = verified != 0
	if name.Valid {
		u.Name = name.String
	}
	if designation.Valid {
		u.Designation = designation.String
	}
	if bankAccount.Valid {
		u.BankAccount = bankAccount.String
	}
	if photo.Valid {
		u.Photo = photo.String
	}

	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	u.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &u, nil
}

// Helper functions.

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "unique constraint"))
}
