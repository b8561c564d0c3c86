package api

import (
	"net/http"

	"github.com/okian/placement/internal/domain/model"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	v, err := s.deps.GetProfile(r.Context())
	respond(w, v, err)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch model.ProfilePatch
	if err := decode(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	v, err := s.deps.UpdateProfile(r.Context(), patch)
	respond(w, v, err)
}
