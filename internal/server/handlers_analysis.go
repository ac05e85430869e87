package server

import (
	"io"
	"net/http"

	"github.com/jonathan/resume-builder/internal/analysis"
)

// handlePresentAnalysis arranges a raw analysis result for display. The
// body may be fenced the way language models return JSON.
func (s *Server) handlePresentAnalysis(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := analysis.Decode(raw)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis.Present(result))
}
