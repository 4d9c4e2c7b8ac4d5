package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/types"
)

const progressResource = "progress item"

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	items, err := s.store.ListProgress(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if items == nil {
		items = []types.ProgressItem{}
	}
	s.jsonResponse(w, http.StatusOK, map[string][]types.ProgressItem{"items": items})
}

func (s *Server) handleCreateProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.CreateProgressRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, invalid(err, "Title is required"))
		return
	}

	item, err := s.store.CreateProgress(r.Context(), userID, &req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]*types.ProgressItem{"item": item})
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.progressID(w, r)
	if !ok {
		return
	}
	var req types.UpdateProgressRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, invalid(err, "Invalid progress update"))
		return
	}

	item, err := s.store.UpdateProgress(r.Context(), userID, id, &req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if item == nil {
		s.fail(w, r, &ErrNotFound{Resource: progressResource, ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]*types.ProgressItem{"item": item})
}

func (s *Server) handleDeleteProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.progressID(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteProgress(r.Context(), userID, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !deleted {
		s.fail(w, r, &ErrNotFound{Resource: progressResource, ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// progressID parses the {id} path value.
func (s *Server) progressID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid progress item ID")
		return uuid.Nil, false
	}
	return id, true
}
