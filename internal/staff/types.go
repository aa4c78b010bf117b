package staff

import (
	"errors"
	"time"
)

// Role represents an authorisation tier in the system.
type Role string

const (
	// RoleUnset is a registered account with no privileged access.
	// New registrations land here until an admin promotes them.
	RoleUnset Role = ""

	// RoleEmployee can log tasks.
	RoleEmployee Role = "employee"

	// RoleHR can list employees and set their verification flag.
	RoleHR Role = "hr"

	// RoleAdmin has full control: account listing, promotion, deletion,
	// salary updates, and the verified roster.
	RoleAdmin Role = "admin"
)

// ValidRoles is the closed set of assignable roles.
var ValidRoles = []Role{RoleUnset, RoleEmployee, RoleHR, RoleAdmin}

// IsValidRole returns true if the role is in the closed set.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User represents a staff account. Email is the unique natural key; every
// authorization decision re-reads the role by email.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	Designation string    `json:"designation,omitempty"`
	BankAccount string    `json:"bankAccount,omitempty"`
	Photo       string    `json:"photo,omitempty"`
	Role        Role      `json:"role,omitempty"`
	Verified    bool      `json:"verified"`
	Salary      float64   `json:"salary"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Task represents a single logged unit of work.
type Task struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Title       string    `json:"task"`
	HoursWorked float64   `json:"hoursWorked"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UpdateResult reports how many records an update matched and modified.
// The field names mirror the wire payload the dashboard already consumes.
type UpdateResult struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}

// Sentinel errors for store operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidRole  = errors.New("invalid role")
)
