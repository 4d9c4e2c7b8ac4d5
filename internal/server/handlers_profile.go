package server

import (
	"net/http"

	"github.com/jonathan/career-coach/internal/types"
)

// handleGetProfile returns the caller's profile, or null when none is stored.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]*types.Profile{"profile": profile})
}

// handleUpsertProfile creates or replaces the caller's profile.
func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.UpsertProfileRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, invalid(err, "Invalid profile"))
		return
	}
	req.Normalize()

	profile, err := s.store.UpsertProfile(r.Context(), userID, &req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]*types.Profile{"profile": profile})
}
