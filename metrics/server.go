package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/outpost/core"
)

const shutdownTimeout = 2 * time.Second

// StatusFunc reports a JSON-encodable view of the running session, nil when none
type StatusFunc func() any

// Server serves Prometheus metrics and a debug view of the session
// An empty address disables it
type Server struct {
	mu     sync.Mutex
	addr   string
	status StatusFunc
	log    zerolog.Logger

	srv  *http.Server
	ln   net.Listener
	done chan struct{}
}

// NewServer creates a stopped server bound to addr on Start
func NewServer(addr string, status StatusFunc, log zerolog.Logger) *Server {
	return &Server{addr: addr, status: status, log: log}
}

// Name implements service.Service
func (s *Server) Name() string {
	return "metrics"
}

// Dependencies implements service.Service
func (s *Server) Dependencies() []string {
	return nil
}

// Init implements service.Service
func (s *Server) Init(args ...any) error {
	return nil
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/debug/session", s.handleSession)
	return r
}

func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	var view any
	if s.status != nil {
		view = s.status()
	}
	if view == nil {
		http.Error(w, "no session running", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		s.log.Warn().Err(err).Msg("encode session view")
	}
}

// Start implements service.Service
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.addr == "" || s.srv != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.done = make(chan struct{})

	srv, done := s.srv, s.done
	core.Go(func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("metrics server stopped")
		}
	})
	s.log.Info().Str("addr", ln.Addr().String()).Msg("metrics listening")
	return nil
}

// Addr returns the bound address, empty when not listening
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Stop implements service.Service
func (s *Server) Stop() error {
	s.mu.Lock()
	srv, done := s.srv, s.done
	s.srv, s.ln, s.done = nil, nil, nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(ctx)
	<-done
	return err
}
