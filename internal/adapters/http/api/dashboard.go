package api

import "net/http"

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := s.deps.Dashboard(r.Context())
	respond(w, sum, err)
}
