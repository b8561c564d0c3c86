package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/placement/internal/domain/model"
)

func (s *Server) handleListAdvisors(w http.ResponseWriter, r *http.Request) {
	advisors, err := s.deps.ListAdvisors(r.Context())
	if advisors == nil {
		advisors = []model.Advisor{}
	}
	respond(w, advisors, err)
}

func (s *Server) handleListSlots(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		writeError(w, fmt.Errorf("%w: date is required", ErrBadRequest))
		return
	}
	slots, err := s.deps.ListSlots(r.Context(), pathID(r), date)
	if slots == nil {
		slots = []model.Slot{}
	}
	respond(w, slots, err)
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	listPage(s, w, r, func() ([]model.Appointment, error) {
		return s.deps.ListAppointments(r.Context())
	})
}

func (s *Server) handleBookAppointment(w http.ResponseWriter, r *http.Request) {
	var req model.BookingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	a, err := s.deps.BookAppointment(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleRescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	var req model.BookingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	a, err := s.deps.RescheduleAppointment(r.Context(), pathID(r), req)
	respond(w, a, err)
}

func (s *Server) handleCancelAppointment(w http.ResponseWriter, r *http.Request) {
	a, err := s.deps.CancelAppointment(r.Context(), pathID(r))
	respond(w, a, err)
}
