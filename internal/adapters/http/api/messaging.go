package api

import (
	"net/http"

	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
)

type sendRequest struct {
	Body string `json:"body"`
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := query.ConversationFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Sort:   q.Get("sort"),
	}
	listPage(s, w, r, func() ([]model.Conversation, error) {
		return s.deps.ListConversations(r.Context(), f)
	})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.deps.ListMessages(r.Context(), pathID(r))
	if msgs == nil {
		msgs = []model.Message{}
	}
	respond(w, msgs, err)
}

// handleSendMessage answers 202: the message is queued for delivery and its
// status moves from pending to sent or failed.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	msg, err := s.deps.SendMessage(r.Context(), pathID(r), req.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, msg)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	c, err := s.deps.MarkConversationRead(r.Context(), pathID(r))
	respond(w, c, err)
}

func (s *Server) handleRetryMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := s.deps.RetryMessage(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, msg)
}

func (s *Server) handleDiscardMessage(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.DiscardMessage(r.Context(), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
