// Package server implements serve mode: it renders the page on demand, caches
// the result, exposes the raw section documents and runtime assets, and
// relays contact submissions to the configured endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-sitegen/internal/logger"
	"github.com/goliatone/go-sitegen/internal/watch"
	"github.com/goliatone/go-sitegen/pkg/orchestrator"
	"github.com/goliatone/go-sitegen/pkg/submit"
	"github.com/goliatone/go-sitegen/pkg/wiring"
)

// BuildFunc renders the page.
type BuildFunc func(ctx context.Context) (orchestrator.Result, error)

// Option customises the server.
type Option func(*Server)

// WithEndpoint enables POST /contact.
func WithEndpoint(endpoint submit.Endpoint) Option {
	return func(s *Server) {
		s.endpoint = endpoint
	}
}

// WithDataFS serves raw section documents under /data/.
func WithDataFS(files fs.FS) Option {
	return func(s *Server) {
		s.dataFS = files
	}
}

// WithStaticFS serves site assets (stylesheets, images) referenced by the
// page template.
func WithStaticFS(files fs.FS) Option {
	return func(s *Server) {
		s.staticFS = files
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server caches the last rendered page behind a read/write lock.
type Server struct {
	build    BuildFunc
	endpoint submit.Endpoint
	dataFS   fs.FS
	staticFS fs.FS
	logger   *slog.Logger
	router   chi.Router

	mu      sync.RWMutex
	page    []byte
	outcome orchestrator.Outcome
	lastErr error
	builtAt time.Time
	built   bool
}

// New constructs a server around build.
func New(build BuildFunc, options ...Option) *Server {
	s := &Server{build: build, logger: logger.Discard()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/index.html", s.handlePage)
	r.Get("/healthz", s.handleHealth)
	r.Post("/contact", s.handleContact)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(wiring.AssetsFS())))
	if s.dataFS != nil {
		r.Handle("/data/*", http.StripPrefix("/data/", http.FileServerFS(s.dataFS)))
	}
	if s.staticFS != nil {
		r.Handle("/*", http.FileServerFS(s.staticFS))
	}
	return r
}

// Rebuild renders the page and swaps the cache. Load and render failures are
// cached like successes since the page carries the diagnostic.
func (s *Server) Rebuild(ctx context.Context) error {
	if s.build == nil {
		return errors.New("server: build func is nil")
	}
	result, err := s.build(ctx)
	if err != nil {
		s.logger.Error("page build failed", "error", err)
		return err
	}

	s.mu.Lock()
	s.page = result.HTML
	s.outcome = result.Outcome
	s.lastErr = result.Err
	s.builtAt = time.Now()
	s.built = true
	s.mu.Unlock()

	s.logger.Info("page built", "outcome", result.Outcome.String(), "bytes", len(result.HTML))
	return nil
}

// Watch rebuilds the cache for every change until changes is closed.
func (s *Server) Watch(ctx context.Context, changes <-chan watch.Change) {
	for change := range changes {
		s.logger.Info("rebuilding after change", "paths", change.Paths)
		if err := s.Rebuild(ctx); err != nil {
			s.logger.Error("rebuild failed", "error", err)
		}
	}
}

func (s *Server) cached() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page, s.built
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, ok := s.cached()
	if !ok {
		if err := s.Rebuild(r.Context()); err != nil {
			http.Error(w, "page build failed", http.StatusInternalServerError)
			return
		}
		page, _ = s.cached()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(page)
}

type healthResponse struct {
	Status  string `json:"status"`
	Built   bool   `json:"built"`
	Outcome string `json:"outcome,omitempty"`
	Error   string `json:"error,omitempty"`
	BuiltAt string `json:"built_at,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	resp := healthResponse{Status: "ok", Built: s.built}
	if s.built {
		resp.Outcome = s.outcome.String()
		resp.BuiltAt = s.builtAt.UTC().Format(time.RFC3339)
		if s.lastErr != nil {
			resp.Error = s.lastErr.Error()
		}
	}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, resp)
}

type contactResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if s.endpoint == nil {
		writeJSON(w, http.StatusServiceUnavailable, contactResponse{Message: submit.MessageFailed})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, contactResponse{Message: submit.MessageInvalid})
		return
	}

	sub, err := submit.FromValues(r.PostForm)
	if err != nil {
		s.logger.Info("contact submission rejected", "error", err)
		writeJSON(w, http.StatusBadRequest, contactResponse{Message: submit.MessageInvalid})
		return
	}
	sub.RemoteAddr = clientIP(r.RemoteAddr)

	receipt, err := s.endpoint.Submit(r.Context(), sub)
	switch {
	case err == nil:
		s.logger.Info("contact submission delivered", "id", receipt.ID, "endpoint", s.endpoint.Kind())
		writeJSON(w, http.StatusOK, contactResponse{OK: true, Message: receipt.Message, ID: receipt.ID})
	case errors.Is(err, submit.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, contactResponse{Message: submit.MessageRateLimited})
	default:
		s.logger.Error("contact submission failed", "error", err, "endpoint", s.endpoint.Kind())
		writeJSON(w, http.StatusBadGateway, contactResponse{Message: submit.MessageFailed})
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func clientIP(remote string) string {
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		return remote
	}
	return host
}
