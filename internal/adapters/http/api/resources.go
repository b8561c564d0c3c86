package api

import (
	"net/http"

	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
)

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := query.ResourceFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Type:     q.Get("type"),
		Status:   q.Get("status"),
		Sort:     q.Get("sort"),
	}
	listPage(s, w, r, func() ([]model.Resource, error) {
		return s.deps.ListResources(r.Context(), f)
	})
}

// handleGetResource maps the "absent" result to 404.
func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.GetResource(r.Context(), pathID(r))
	if err == nil && res == nil {
		err = fault.NewKind("resources.get", fault.ErrNotFound)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.ToggleBookmark(r.Context(), pathID(r))
	respond(w, res, err)
}

func (s *Server) handleIncrementView(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.IncrementView(r.Context(), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
