package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staffsphere/staffsphere-core/internal/staff"
)

// registerRequest is the staff account registration payload.
type registerRequest struct {
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Designation string     `json:"designation"`
	BankAccount string     `json:"bankAccount"`
	Photo       string     `json:"photo"`
	Role        staff.Role `json:"role"`
	Salary      float64    `json:"salary"`
}

// handleListUsers returns every staff account.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.logger.Error("list users failed", "error", err)
		writeInternalError(w, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// handleRoleFlag returns a handler answering "does this email hold this
// role". The caller may only ask about their own email; asking about anyone
// else is rejected before the store is consulted, so the response never
// leaks whether the other account exists.
func (s *Server) handleRoleFlag(role staff.Role, key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := chi.URLParam(r, "target")
		identity := identityFromContext(r.Context())
		if identity == nil || identity.Email != email {
			writeForbidden(w)
			return
		}

		holds := false
		user, err := s.users.GetByEmail(r.Context(), email)
		if err == nil {
			holds = user.Role == role
		} else if !errors.Is(err, staff.ErrUserNotFound) {
			s.logger.Error("role flag lookup failed", "email", email, "error", err)
			writeInternalError(w, "failed to check role")
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{key: holds})
	}
}

// handleRegister creates a staff account, or acknowledges an existing one.
//
// Registration is idempotent by email: re-registering an existing address
// performs no write and reports a null insertedId, matching what the
// dashboard expects on repeat sign-ins.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Email == "" {
		writeBadRequest(w, "email is required")
		return
	}

	if !staff.IsValidRole(req.Role) {
		writeBadRequest(w, "invalid role: must be empty, employee, hr, or admin")
		return
	}

	if _, err := s.users.GetByEmail(r.Context(), req.Email); err == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":    "user already exists",
			"insertedId": nil,
		})
		return
	} else if !errors.Is(err, staff.ErrUserNotFound) {
		s.logger.Error("registration lookup failed", "email", req.Email, "error", err)
		writeInternalError(w, "failed to register user")
		return
	}

	user := &staff.User{
		Email:       req.Email,
		Name:        req.Name,
		Designation: req.Designation,
		BankAccount: req.BankAccount,
		Photo:       req.Photo,
		Role:        req.Role,
		Salary:      req.Salary,
	}

	id, err := s.users.Insert(r.Context(), user)
	if err != nil {
		// Lost the race with a concurrent registration for the same email.
		if errors.Is(err, staff.ErrEmailExists) {
			writeJSON(w, http.StatusOK, map[string]any{
				"message":    "user already exists",
				"insertedId": nil,
			})
			return
		}
		s.logger.Error("registration insert failed", "email", req.Email, "error", err)
		writeInternalError(w, "failed to register user")
		return
	}

	s.logger.Info("user registered", "user_id", id, "email", req.Email, "role", req.Role)
	s.auditLog("register", "user", id, req.Email, map[string]any{
		"role": req.Role,
	})

	writeJSON(w, http.StatusCreated, map[string]any{"insertedId": id})
}

// handlePromoteAdmin sets the target account's role to admin.
func (s *Server) handlePromoteAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "target")
	identity := identityFromContext(r.Context())

	result, err := s.users.UpdateRoleByID(r.Context(), id, staff.RoleAdmin)
	if err != nil {
		if errors.Is(err, staff.ErrUserNotFound) {
			writeNotFound(w, "user not found")
			return
		}
		s.logger.Error("promote to admin failed", "user_id", id, "error", err)
		writeInternalError(w, "failed to update role")
		return
	}

	s.logger.Info("user promoted to admin", "user_id", id, "promoted_by", identity.Email)
	s.auditLog("promote", "user", id, identity.Email, map[string]any{
		"role": staff.RoleAdmin,
	})

	writeJSON(w, http.StatusOK, result)
}

// handleDeleteUser removes a staff account.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity := identityFromContext(r.Context())

	deleted, err := s.users.DeleteByID(r.Context(), id)
	if err != nil {
		s.logger.Error("delete user failed", "user_id", id, "error", err)
		writeInternalError(w, "failed to delete user")
		return
	}
	if deleted == 0 {
		writeNotFound(w, "user not found")
		return
	}

	s.logger.Info("user deleted", "user_id", id, "deleted_by", identity.Email)
	s.auditLog("delete", "user", id, identity.Email, nil)

	writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}
