package server

import (
	"net/http"

	"github.com/jonathan/career-coach/internal/coach"
	"github.com/jonathan/career-coach/internal/types"
)

// handleChat answers one message using the caller's recent history, then
// stores both sides of the exchange.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.ChatRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, invalid(err, "Message is required"))
		return
	}

	ctx := r.Context()
	history, err := s.store.RecentChatMessages(ctx, userID, coach.HistoryWindow)
	if err != nil {
		s.log.Warn("load chat history failed", "user_id", userID, "error", err)
		history = nil
	}

	reply, err := s.coach.Chat(ctx, req.Message, history)
	if err != nil {
		s.coachFailure(w, r, err)
		return
	}

	if err := s.store.AppendChatMessages(ctx, userID,
		types.ChatMessage{Role: types.RoleUser, Content: req.Message},
		types.ChatMessage{Role: types.RoleAssistant, Content: reply},
	); err != nil {
		s.log.Warn("store chat messages failed", "user_id", userID, "error", err)
	}
	s.jsonResponse(w, http.StatusOK, types.ChatResponse{Reply: reply})
}
