package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/vignette"
	"github.com/aretw0/vignette/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds request bodies accepted by POST /compile.
const maxBodyBytes = 1 << 20

// Director is the subset of *vignette.Director the HTTP surface needs.
type Director interface {
	Compile(ctx context.Context, req domain.Request) (*domain.StagedScript, error)
	Save(ctx context.Context, id string, script *domain.StagedScript) error
	Load(ctx context.Context, id string) (*domain.StagedScript, error)
	Delete(ctx context.Context, id string) error
	Scripts(ctx context.Context) ([]string, error)
}

var _ Director = (*vignette.Director)(nil)

// CompileRequest is the body of POST /compile. When ID is set the compiled
// script is also stored under it.
type CompileRequest struct {
	domain.Request
	ID string `json:"id,omitempty"`
}

// StoreEvent is broadcast on GET /events whenever the script store changes.
type StoreEvent struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Server serves the compile and script-store API.
type Server struct {
	Director Director
	Streams  *StreamManager

	blocks  func() []domain.ActionBlock
	metrics prometheus.Gatherer
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCatalog exposes the given blocks on GET /catalog.
func WithCatalog(blocks func() []domain.ActionBlock) Option {
	return func(s *Server) {
		s.blocks = blocks
	}
}

// WithMetrics mounts a Prometheus scrape endpoint on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = g
	}
}

// NewHandler creates a new HTTP handler for the director.
func NewHandler(d Director, opts ...Option) http.Handler {
	s := &Server{
		Director: d,
		Streams:  NewStreamManager(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger

	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/compile", s.Compile)
	r.Get("/catalog", s.GetCatalog)
	r.Get("/events", s.SubscribeEvents)
	r.Route("/scripts", func(r chi.Router) {
		r.Get("/", s.ListScripts)
		r.Get("/{id}", s.GetScript)
		r.Delete("/{id}", s.DeleteScript)
	})
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Compile handles the POST /compile request.
func (s *Server) Compile(w http.ResponseWriter, r *http.Request) {
	var body CompileRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if len(body.Elements) == 0 && len(body.Effects) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("request has no elements or effects"))
		return
	}

	script, err := s.Director.Compile(r.Context(), body.Request)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("compile error: %w", err))
		return
	}

	status := http.StatusOK
	if body.ID != "" {
		if err := s.Director.Save(r.Context(), body.ID, script); err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		s.Streams.Broadcast(StoreEvent{Type: "saved", ID: body.ID})
		script.ID = body.ID
		status = http.StatusCreated
	}

	s.logger.Debug("compiled", "id", body.ID, "actions", len(script.Actions), "missing", len(script.Missing))
	s.writeJSON(w, status, script)
}

// ListScripts handles the GET /scripts request.
func (s *Server) ListScripts(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Director.Scripts(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"scripts": ids})
}

// GetScript handles the GET /scripts/{id} request.
func (s *Server) GetScript(w http.ResponseWriter, r *http.Request) {
	script, err := s.Director.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, script)
}

// DeleteScript handles the DELETE /scripts/{id} request.
func (s *Server) DeleteScript(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Director.Delete(r.Context(), id); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.Streams.Broadcast(StoreEvent{Type: "deleted", ID: id})
	w.WriteHeader(http.StatusNoContent)
}

// GetCatalog handles the GET /catalog request.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	if s.blocks == nil {
		s.writeError(w, http.StatusNotFound, errors.New("catalog listing not available"))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]domain.ActionBlock{"blocks": s.blocks()})
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "vignette-http",
		"version": strings.TrimSpace(vignette.Version),
	})
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("sse client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	} else {
		s.logger.Warn("request rejected", "status", status, "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	if errors.Is(err, domain.ErrScriptNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// StreamManager fans store events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan string]struct{}
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan string]struct{}),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Subscribe registers a buffered channel; the returned func unregisters and closes it.
func (sm *StreamManager) Subscribe() (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// Broadcast sends ev to every subscriber. Slow clients drop messages.
func (sm *StreamManager) Broadcast(ev StoreEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}

	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- string(payload):
		default:
			sm.logger.Warn("sse client buffer full, dropping message", "type", ev.Type, "id", ev.ID)
		}
	}
}
