package server

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/types"
)

// ---------------------------------------------------------------------
// Resume Handlers
// ---------------------------------------------------------------------

// ResumeResponse is a stored resume as the client sees it
type ResumeResponse struct {
	ID       string             `json:"id"`
	Template types.TemplateName `json:"template"`
	Resume   types.ResumeData   `json:"resume"`
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	resumes, err := s.store.List(r.Context(), owner)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if resumes == nil {
		resumes = []types.ResumeSummary{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"count":   len(resumes),
	})
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	var req types.CreateResumeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Template != "" {
		req.Resume.Template = req.Template
	}
	if req.Resume.Template == "" {
		req.Resume.Template = s.settings.PreferredTemplate(r.Context(), owner, "")
	}

	created, err := s.store.Create(r.Context(), owner, &req.Resume)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, created.Summary())
}

// openSession resolves the owner and opens the session for the {id} path value.
func (s *Server) openSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	owner, ok := s.owner(w, r)
	if !ok {
		return nil, false
	}
	sess, err := s.sessions.Open(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.openSession(w, r)
	if !ok {
		return
	}

	committed := sess.Committed()
	s.jsonResponse(w, http.StatusOK, ResumeResponse{
		ID:       sess.ID(),
		Template: committed.Template,
		Resume:   committed,
	})
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	if err := s.store.Delete(r.Context(), owner, id); err != nil {
		s.writeError(w, err)
		return
	}
	s.sessions.Close(owner, id)

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleViewResume renders the displayed value. The template query
// parameter previews another template without storing it.
func (s *Server) handleViewResume(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.openSession(w, r)
	if !ok {
		return
	}

	var name types.TemplateName
	if raw := r.URL.Query().Get("template"); raw != "" {
		parsed, err := types.ParseTemplateName(raw)
		if err != nil {
			s.writeError(w, &ErrValidation{Field: "template", Message: err.Error()})
			return
		}
		name = parsed
	}

	tree := sess.Render(name)
	switch r.URL.Query().Get("format") {
	case "json":
		s.jsonResponse(w, http.StatusOK, tree)
	case "", "html":
		html, err := rendering.RenderHTML(tree)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(html)) //nolint:errcheck
	default:
		s.writeError(w, &ErrValidation{Field: "format", Message: "must be html or json"})
	}
}

func (s *Server) handleExportResume(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "format", Message: err.Error()})
		return
	}

	sess, ok := s.openSession(w, r)
	if !ok {
		return
	}

	doc, err := sess.Export(r.Context(), format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Body) //nolint:errcheck
}

func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request) {
	var req types.SelectTemplateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	sess, ok := s.openSession(w, r)
	if !ok {
		return
	}

	if err := sess.SelectTemplate(r.Context(), req.Template); err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}
