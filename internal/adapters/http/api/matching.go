package api

import (
	"fmt"
	"net/http"

	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
)

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minScore, err := intParam(q.Get("min_score"), 0)
	if err != nil {
		writeError(w, fmt.Errorf("%w: min_score must be an integer", ErrBadRequest))
		return
	}
	f := query.MatchFilter{
		Search:         q.Get("search"),
		Location:       q.Get("location"),
		Industry:       q.Get("industry"),
		EmploymentType: q.Get("employment_type"),
		MinScore:       minScore,
		Status:         q.Get("status"),
		Sort:           q.Get("sort"),
	}
	listPage(s, w, r, func() ([]model.Match, error) {
		return s.deps.ListMatches(r.Context(), f)
	})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	m, err := s.deps.GetMatch(r.Context(), pathID(r))
	respond(w, m, err)
}

func (s *Server) handleToggleSaveMatch(w http.ResponseWriter, r *http.Request) {
	m, err := s.deps.ToggleSaveMatch(r.Context(), pathID(r))
	respond(w, m, err)
}

func (s *Server) handleApplyToMatch(w http.ResponseWriter, r *http.Request) {
	m, err := s.deps.ApplyToMatch(r.Context(), pathID(r))
	respond(w, m, err)
}
