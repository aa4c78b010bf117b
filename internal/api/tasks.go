package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/staffsphere/staffsphere-core/internal/staff"
)

// createTaskRequest is the work log submission payload.
type createTaskRequest struct {
	Title       string    `json:"task"`
	HoursWorked float64   `json:"hoursWorked"`
	Date        time.Time `json:"date"`
}

// handleCreateTask logs a unit of work for the calling employee.
// The owner email always comes from the verified token, never the body,
// so a caller cannot log work against someone else's record.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Title == "" {
		writeBadRequest(w, "task is required")
		return
	}
	if req.HoursWorked < 0 {
		writeBadRequest(w, "hoursWorked must not be negative")
		return
	}

	task := &staff.Task{
		Email:       identity.Email,
		Title:       req.Title,
		HoursWorked: req.HoursWorked,
		Date:        req.Date,
	}

	id, err := s.tasks.Create(r.Context(), task)
	if err != nil {
		s.logger.Error("create task failed", "email", identity.Email, "error", err)
		writeInternalError(w, "failed to create task")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"insertedId": id})
}

// handleListTasks returns the work log for the given email, newest first.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeBadRequest(w, "email query parameter is required")
		return
	}

	tasks, err := s.tasks.ListByEmail(r.Context(), email)
	if err != nil {
		s.logger.Error("list tasks failed", "email", email, "error", err)
		writeInternalError(w, "failed to list tasks")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}
