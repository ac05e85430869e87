// Package server provides the HTTP API for the resume builder: stored
// resumes, live edit sessions with rendered previews, exports and settings.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/localcache"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/settings"
	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeStore is the document store the server reads and writes.
type ResumeStore interface {
	session.Gateway
	Create(ctx context.Context, owner string, data *types.ResumeData) (*db.Resume, error)
	List(ctx context.Context, owner string) ([]types.ResumeSummary, error)
	Delete(ctx context.Context, owner, id string) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	db          *db.DB
	cache       *localcache.Cache
	store       ResumeStore
	settings    *settings.Service
	sessions    *session.Manager
	rateLimiter *ratelimit.Limiter
	auth        func(http.Handler) http.Handler
	origins     []string
	sweepEvery  time.Duration
}

// Deps are the collaborators of a server. Store and Auth are required.
type Deps struct {
	Store     ResumeStore
	Settings  *settings.Service
	Auth      func(http.Handler) http.Handler
	RateLimit *ratelimit.Config
	Sessions  session.Config
	IdleAfter time.Duration
	Origins   []string
	Port      int
}

// New connects to the database and the local cache and builds a server
// from cfg. Tokens are verified with the identity settings from the
// environment.
func New(cfg *config.Config) (*Server, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	identityConfig, err := config.NewIdentityConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create identity config: %w", err)
	}
	identity := NewIdentityService(identityConfig)

	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store := db.NewStore(database)

	var local settings.Local
	cache, err := localcache.Open(cfg.CachePath)
	if err != nil {
		log.Printf("[server] local cache disabled: %v", err)
		cache = nil
	} else {
		local = cache
	}

	s := NewWithDeps(Deps{
		Store:     store,
		Settings:  settings.NewService(store, local),
		Auth:      middleware.AuthMiddleware(identity.AsTokenValidator()),
		RateLimit: ratelimit.LoadConfig(),
		Sessions: session.Config{
			SaveTimeout: cfg.SaveTimeout(),
			AccentDelay: cfg.AccentDebounce(),
			Export:      export.Options{LaTeXTemplate: cfg.LaTeXTemplate},
		},
		IdleAfter: cfg.SessionIdle(),
		Origins:   cfg.AllowedOrigins,
		Port:      cfg.Port,
	})
	s.db = database
	s.cache = cache
	return s, nil
}

// NewWithDeps builds a server around existing collaborators.
func NewWithDeps(deps Deps) *Server {
	prefs := deps.Settings
	if prefs == nil {
		prefs = settings.NewService(nil, nil)
	}

	s := &Server{
		store:       deps.Store,
		settings:    prefs,
		sessions:    session.NewManager(deps.Store, prefs, deps.Sessions, deps.IdleAfter),
		rateLimiter: ratelimit.NewLimiter(deps.RateLimit),
		auth:        deps.Auth,
		origins:     deps.Origins,
		sweepEvery:  time.Minute,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Stored resumes
	mux.Handle("GET /resumes", s.authed(s.handleListResumes))
	mux.Handle("POST /resumes", s.authed(s.handleCreateResume))
	mux.Handle("GET /resumes/{id}", s.authed(s.handleGetResume))
	mux.Handle("DELETE /resumes/{id}", s.authed(s.handleDeleteResume))
	mux.Handle("GET /resumes/{id}/view", s.authed(s.handleViewResume))
	mux.Handle("GET /resumes/{id}/export", s.authed(s.handleExportResume))
	mux.Handle("PUT /resumes/{id}/template", s.authed(s.handleSelectTemplate))

	// Edit session
	mux.Handle("GET /resumes/{id}/session", s.authed(s.handleGetSession))
	mux.Handle("POST /resumes/{id}/session/edit", s.authed(s.handleBeginEdit))
	mux.Handle("PATCH /resumes/{id}/session/fields", s.authed(s.handlePatchFields))
	mux.Handle("PUT /resumes/{id}/session/presentation", s.authed(s.handleUpdatePresentation))
	mux.Handle("POST /resumes/{id}/session/sections/move", s.authed(s.handleMoveSection))
	mux.Handle("POST /resumes/{id}/session/save", s.authed(s.handleSaveSession))
	mux.Handle("POST /resumes/{id}/session/cancel", s.authed(s.handleCancelSession))
	mux.Handle("GET /resumes/{id}/session/events", s.authed(s.handleSessionEvents))

	// Settings
	mux.Handle("GET /settings", s.authed(s.handleGetSettings))
	mux.Handle("PUT /settings", s.authed(s.handleUpdateSettings))

	// Analysis display
	mux.Handle("POST /analysis/present", s.authed(s.handlePresentAnalysis))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", deps.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // event streams stay open
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the root handler with every middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions returns the session manager.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

func (s *Server) authed(h http.HandlerFunc) http.Handler {
	if s.auth == nil {
		return h
	}
	return s.auth(h)
}

// Start serves requests and sweeps idle sessions until ctx is cancelled or
// the process receives SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("[server] starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return s.sessions.Run(gctx, s.sweepEvery)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("[server] shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.Close()
	log.Println("[server] stopped")
	return err
}

// Close ends open sessions and releases the rate limiter, the database
// pool and the local cache.
func (s *Server) Close() {
	s.sessions.CloseAll()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			log.Printf("[server] closing local cache: %v", err)
		}
	}
}

// withCORS adds CORS headers. An empty origin list allows any origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.origins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.origins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps event streams working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d in %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// maxBodyBytes bounds request bodies; resumes are small documents.
const maxBodyBytes = 1 << 20

// decodeJSON reads a bounded JSON body into v and runs its validate tags.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := types.ValidateStruct(v); err != nil {
		s.writeError(w, err)
		return false
	}
	return true
}

// owner returns the authenticated owner, writing 401 when there is none.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, err := middleware.GetOwner(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return owner, true
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return strings.TrimSpace(ip)
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
