package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/types"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	current, err := s.settings.Get(r.Context(), owner)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, current)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	var req types.UserSettings
	if !s.decodeJSON(w, r, &req) {
		return
	}

	saved, err := s.settings.Update(r.Context(), owner, req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, saved)
}
