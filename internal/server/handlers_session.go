package server

import (
	"log"
	"net/http"
	"time"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/types"
)

// keepAliveInterval is how often an idle event stream sends a comment.
var keepAliveInterval = 15 * time.Second

// PreviewEvent is one server-sent event on a session stream
type PreviewEvent struct {
	Type     session.EventType `json:"type"`
	State    session.State     `json:"state"`
	Revision uint64            `json:"revision"`
	HTML     string            `json:"html,omitempty"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.openSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// sessionAction opens the session and runs fn, answering with the new snapshot.
func (s *Server) sessionAction(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	sess, ok := s.openSession(w, r)
	if !ok {
		return
	}
	if err := fn(sess); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleBeginEdit(w http.ResponseWriter, r *http.Request) {
	s.sessionAction(w, r, (*session.Session).Begin)
}

func (s *Server) handlePatchFields(w http.ResponseWriter, r *http.Request) {
	var req types.PatchFieldsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.sessionAction(w, r, func(sess *session.Session) error {
		return sess.ApplyAll(req.Patches)
	})
}

func (s *Server) handleUpdatePresentation(w http.ResponseWriter, r *http.Request) {
	var req types.PresentationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	for _, token := range req.SectionOrder {
		if !token.Known() {
			s.writeError(w, &ErrValidation{Field: "sectionOrder", Message: "unknown section " + string(token)})
			return
		}
	}

	s.sessionAction(w, r, func(sess *session.Session) error {
		if sess.State() != session.Editing {
			return session.ErrNotEditing
		}
		if req.AccentColor != nil {
			if err := sess.SetAccentColor(*req.AccentColor); err != nil {
				return err
			}
		}
		if req.FontFamily != nil {
			if err := sess.SetFont(*req.FontFamily); err != nil {
				return err
			}
		}
		if req.ShowIcons != nil {
			if err := sess.SetShowIcons(*req.ShowIcons); err != nil {
				return err
			}
		}
		if req.SectionOrder != nil {
			if err := sess.SetSectionOrder(req.SectionOrder); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Server) handleMoveSection(w http.ResponseWriter, r *http.Request) {
	var req types.MoveSectionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.sessionAction(w, r, func(sess *session.Session) error {
		return sess.MoveSection(req.From, req.To)
	})
}

func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	s.sessionAction(w, r, func(sess *session.Session) error {
		return sess.Save(r.Context())
	})
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	s.sessionAction(w, r, (*session.Session).Cancel)
}

// previewEvent renders the displayed value for an event. Closed events
// carry no preview.
func previewEvent(sess *session.Session, ev session.Event) (PreviewEvent, error) {
	out := PreviewEvent{Type: ev.Type, State: ev.State, Revision: ev.Revision}
	if ev.Type == session.EventClosed {
		return out, nil
	}
	html, err := rendering.RenderHTMLFragment(sess.View())
	if err != nil {
		return out, err
	}
	out.HTML = html
	return out, nil
}

// sendPreview writes one preview event, or an error event when the preview
// cannot be rendered.
func sendPreview(sse *SSEWriter, sess *session.Session, name string, ev session.Event) error {
	payload, err := previewEvent(sess, ev)
	if err != nil {
		log.Printf("[server] preview render failed: %v", err)
		sse.WriteError("preview could not be rendered")
		return nil
	}
	return sse.WriteEvent(name, ev.Revision, payload)
}

// handleSessionEvents streams a re-rendered preview after every change to
// the session until the client goes away or the session closes.
func (s *Server) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.openSession(w, r)
	if !ok {
		return
	}

	events, unsubscribe := sess.Subscribe()
	defer unsubscribe()

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	snap := sess.Snapshot()
	initial := session.Event{Type: session.EventChanged, State: snap.State, Revision: snap.Revision}
	if err := sendPreview(sse, sess, "snapshot", initial); err != nil {
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := sse.WriteKeepAlive(); err != nil {
				return
			}
		case ev, open := <-events:
			if !open {
				return
			}
			if err := sendPreview(sse, sess, string(ev.Type), ev); err != nil {
				return
			}
			if ev.Type == session.EventClosed {
				return
			}
		}
	}
}
