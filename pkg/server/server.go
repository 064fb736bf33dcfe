package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	skerrors "github.com/wyattowalsh/skillsight/pkg/errors"
	"github.com/wyattowalsh/skillsight/pkg/logging"
	"github.com/wyattowalsh/skillsight/pkg/ratelimit"
	"github.com/wyattowalsh/skillsight/pkg/serializer"
)

// Server represents the HTTP server
type Server struct {
	config        *Config
	httpServer    *http.Server
	globalLimiter *rate.Limiter
	clientLimiter *ratelimit.Limiter
	mu            sync.RWMutex
	ready         bool
}

// New creates a server from the default config plus opts.
func New(opts ...Option) *Server {
	cfg := NewConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return NewServer(cfg)
}

// NewServer creates a new server instance
func NewServer(config *Config) *Server {
	if config == nil {
		config = NewConfig()
	}

	s := &Server{
		config:        config,
		globalLimiter: rate.NewLimiter(config.RateLimit, config.RateLimitBurst),
		clientLimiter: config.ClientLimiter,
	}
	if s.clientLimiter == nil {
		s.clientLimiter = ratelimit.New(config.ClientRateLimit, config.ClientRateWin)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Address, config.Port),
		Handler:      s.setupRoutes(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
		ErrorLog:     logging.NewLogLogger(slog.LevelError),
	}

	return s
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Default handler
	mux.HandleFunc("/{$}", s.withSystemMiddleware(s.handleDefault))

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.withSystemMiddleware(s.handleHealth))
	mux.HandleFunc("/healthz", s.withSystemMiddleware(s.handleHealth))
	mux.HandleFunc("/ready", s.withSystemMiddleware(s.handleReady))
	mux.Handle("/metrics", promhttp.Handler())

	// Application endpoints with the full middleware chain
	for pattern, handler := range s.config.Handlers {
		mux.HandleFunc(pattern, s.withMiddleware(s.methodGuard(handler)))
	}

	return mux
}

// methodGuard rejects everything but GET. The read API has no write
// surface; OPTIONS is answered at the edge.
func (s *Server) methodGuard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, r, http.StatusMethodNotAllowed, skerrors.ErrCodeMethodNotAllowed,
				"Method not allowed", false, nil)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// handleDefault serves the service descriptor on the root route.
func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	routes := make([]string, 0, len(s.config.Handlers)+3)
	for pattern := range s.config.Handlers {
		routes = append(routes, "GET "+pattern)
	}
	routes = append(routes, "GET /health", "GET /ready", "GET /metrics")
	sort.Strings(routes)

	resp := struct {
		Name    string   `json:"name"`
		Version string   `json:"version"`
		Ready   bool     `json:"ready"`
		Routes  []string `json:"routes"`
	}{
		Name:    s.config.Name,
		Version: s.config.Version,
		Routes:  routes,
	}

	s.mu.RLock()
	resp.Ready = s.ready
	s.mu.RUnlock()

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Handler exposes the fully assembled route tree, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the server and blocks until ctx is canceled or the
// listener fails, then drains in-flight requests for up to
// Config.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	s.SetReady(true)

	slog.Info("starting server", "addr", s.httpServer.Addr, "name", s.config.Name)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server")
	return s.httpServer.Shutdown(shutdownCtx)
}
