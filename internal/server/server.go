package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/tuzuminami/Collatz/internal/config"
	"github.com/tuzuminami/Collatz/internal/logging"
	"github.com/tuzuminami/Collatz/web"
)

// Server serves the web form, the JSON API, and static assets.
type Server struct {
	host     string
	port     int
	maxSteps int

	// HTTP server
	server   *http.Server
	listener net.Listener

	// Rendering and assets
	tmpl   *template.Template
	static http.Handler

	// Per-client request budget, nil when disabled
	limiter *rateLimiter

	log *logging.Logger

	// Lifecycle
	mu      sync.RWMutex
	started bool
}

// NewServer creates a new Server from the given configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFS(web.Templates(), "index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	var limiter *rateLimiter
	if cfg.Limits.RequestsPerMinute > 0 {
		limiter = newRateLimiter(RateLimitConfig{
			MaxRequests: cfg.Limits.RequestsPerMinute,
			Window:      time.Minute,
		})
	}

	return &Server{
		host:     cfg.Server.Host,
		port:     cfg.Server.Port,
		maxSteps: cfg.Limits.MaxSteps,
		tmpl:     tmpl,
		static:   http.StripPrefix("/static/", http.FileServerFS(web.Static(""))),
		limiter:  limiter,
		log:      logging.With("component", "server"),
	}, nil
}

// Port returns the configured port.
func (s *Server) Port() int {
	return s.port
}

// Start starts the HTTP server.
// The server runs until ctx is cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("server already started")
	}

	// Create listener
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	// Setup HTTP server with routes
	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Handler:      s.withRequestID(s.withLogging(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.started = true
	s.mu.Unlock()

	// Start cleanup goroutine for stale rate limit entries
	if s.limiter != nil {
		go s.limiter.run(ctx)
	}

	s.log.Info("listening", "addr", listener.Addr().String(), "max_steps", s.maxSteps)

	// Run server (blocks until error or server closed)
	err = s.server.Serve(listener)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.server == nil {
		return nil
	}

	// Shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	s.started = false
	return nil
}

// ListenAddr returns the actual address the server is listening on.
// Useful when port 0 is used to get an available port.
// Returns empty string if not started.
func (s *Server) ListenAddr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// setupRoutes configures the HTTP routes.
func (s *Server) setupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/static/", s.static)
	mux.HandleFunc("/api/collatz", s.requirePost(s.withRateLimit(s.handleAPI)))

	// The form page shares a path between GET (blank form) and POST
	// (computation), so dispatch on method here.
	form := s.withRateLimit(s.handleForm)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			s.handleIndex(w, r)
		case http.MethodPost:
			form(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}
