package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/staffsphere/staffsphere-core/internal/staff"
)

// handleListEmployees returns every account holding the employee role.
func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.users.ListByRole(r.Context(), staff.RoleEmployee)
	if err != nil {
		s.logger.Error("list employees failed", "error", err)
		writeInternalError(w, "failed to list employees")
		return
	}

	writeJSON(w, http.StatusOK, employees)
}

// handleVerifyEmployee sets an employee's verification flag.
//
// Query parameters:
//   - email: target account
//   - isVerified: "true" or "false" (strconv.ParseBool forms accepted)
func (s *Server) handleVerifyEmployee(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	email := q.Get("email")
	if email == "" {
		writeBadRequest(w, "email query parameter is required")
		return
	}

	verified, err := strconv.ParseBool(q.Get("isVerified"))
	if err != nil {
		writeBadRequest(w, "isVerified must be true or false")
		return
	}

	result, err := s.users.UpdateVerifiedByEmail(r.Context(), email, verified)
	if err != nil {
		if errors.Is(err, staff.ErrUserNotFound) {
			writeNotFound(w, "user not found")
			return
		}
		s.logger.Error("verify employee failed", "email", email, "error", err)
		writeInternalError(w, "failed to update verification")
		return
	}

	identity := identityFromContext(r.Context())
	s.logger.Info("employee verification updated", "email", email, "verified", verified, "updated_by", identity.Email)
	s.auditLog("verify", "user", email, identity.Email, map[string]any{
		"verified": verified,
	})

	writeJSON(w, http.StatusOK, result)
}

// handleMakeHR promotes the given account to the hr role.
func (s *Server) handleMakeHR(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeBadRequest(w, "email query parameter is required")
		return
	}

	result, err := s.users.UpdateRoleByEmail(r.Context(), email, staff.RoleHR)
	if err != nil {
		if errors.Is(err, staff.ErrUserNotFound) {
			writeNotFound(w, "user not found")
			return
		}
		s.logger.Error("promote to hr failed", "email", email, "error", err)
		writeInternalError(w, "failed to update role")
		return
	}

	identity := identityFromContext(r.Context())
	s.logger.Info("user promoted to hr", "email", email, "promoted_by", identity.Email)
	s.auditLog("promote", "user", email, identity.Email, map[string]any{
		"role": staff.RoleHR,
	})

	writeJSON(w, http.StatusOK, result)
}

// handleUpdateSalary sets an account's salary, subject to the monotonic
// rule: a salary never decreases. A request below the current salary is
// acknowledged but performs no write (matchedCount 1, modifiedCount 0).
//
// Query parameters:
//   - email: target account
//   - newSalary: decimal number
func (s *Server) handleUpdateSalary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	email := q.Get("email")
	if email == "" {
		writeBadRequest(w, "email query parameter is required")
		return
	}

	newSalary, err := strconv.ParseFloat(q.Get("newSalary"), 64)
	if err != nil {
		writeBadRequest(w, "newSalary must be a number")
		return
	}

	user, err := s.users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, staff.ErrUserNotFound) {
			writeNotFound(w, "user not found")
			return
		}
		s.logger.Error("salary lookup failed", "email", email, "error", err)
		writeInternalError(w, "failed to update salary")
		return
	}

	if newSalary < user.Salary {
		writeJSON(w, http.StatusOK, staff.UpdateResult{Matched: 1, Modified: 0})
		return
	}

	result, err := s.users.UpdateSalaryByEmail(r.Context(), email, newSalary)
	if err != nil {
		s.logger.Error("salary update failed", "email", email, "error", err)
		writeInternalError(w, "failed to update salary")
		return
	}

	identity := identityFromContext(r.Context())
	s.logger.Info("salary updated", "email", email, "updated_by", identity.Email)
	s.auditLog("salary", "user", email, identity.Email, map[string]any{
		"previous": user.Salary,
		"new":      newSalary,
	})

	writeJSON(w, http.StatusOK, result)
}

// handleVerifiedList returns verified employees and hr staff, the roster
// payroll runs against.
func (s *Server) handleVerifiedList(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListVerifiedByRoles(r.Context(), []staff.Role{staff.RoleEmployee, staff.RoleHR}, true)
	if err != nil {
		s.logger.Error("verified list failed", "error", err)
		writeInternalError(w, "failed to list verified staff")
		return
	}

	writeJSON(w, http.StatusOK, users)
}
