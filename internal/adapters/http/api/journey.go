package api

import (
	"net/http"

	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
)

type milestoneUpdate struct {
	Status model.MilestoneStatus `json:"status"`
}

func (s *Server) handleListMilestones(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := query.MilestoneFilter{
		Search: q.Get("search"),
		Stage:  q.Get("stage"),
		Status: q.Get("status"),
		Sort:   q.Get("sort"),
	}
	listPage(s, w, r, func() ([]model.Milestone, error) {
		return s.deps.ListMilestones(r.Context(), f)
	})
}

func (s *Server) handleUpdateMilestone(w http.ResponseWriter, r *http.Request) {
	var req milestoneUpdate
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	m, err := s.deps.UpdateMilestoneStatus(r.Context(), pathID(r), req.Status)
	respond(w, m, err)
}

func (s *Server) handleJourneyProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.JourneyProgress(r.Context())
	respond(w, p, err)
}
