package api

import (
	"net/http"

	"github.com/okian/placement/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := s.deps.Login(r.Context(), req.Email, req.Password)
	respond(w, session, err)
}

// handleMe returns the user attached by authenticate, or resolves the bearer
// token when authentication is not enforced.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.UserFrom(r.Context()); ok {
		writeJSON(w, http.StatusOK, u)
		return
	}
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, ErrUnauthorized)
		return
	}
	u, err := s.deps.CurrentUser(r.Context(), token)
	if err != nil {
		writeError(w, ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
