package api

import (
	"encoding/json"
	"net/http"

	"github.com/staffsphere/staffsphere-core/internal/auth"
)

// handleIssueToken signs the posted identity claims into a bearer token.
//
// Authentication itself happens upstream (the dashboard's identity
// provider); this endpoint only binds the asserted identity into a token
// the API can later verify. An email claim is mandatory because every
// authorization decision keys off it.
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var claims map[string]any
	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	email, _ := claims["email"].(string)
	if email == "" {
		writeBadRequest(w, "email claim is required")
		return
	}

	token, err := auth.IssueToken(claims, s.secCfg.JWT.Secret, s.secCfg.AccessTokenDuration())
	if err != nil {
		s.logger.Error("token issue failed", "error", err)
		writeInternalError(w, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
