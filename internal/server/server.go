package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/career-coach/internal/coach"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/server/middleware"
	"github.com/jonathan/career-coach/internal/server/ratelimit"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 30 * time.Second

// Server represents the HTTP server
type Server struct {
	responder
	httpServer      *http.Server
	store           Store
	coach           *coach.Service
	rateLimiter     *ratelimit.Limiter
	authHandler     *AuthHandler
	origins         map[string]bool
	started         time.Time
	shutdownTimeout time.Duration
}

// Config holds server configuration
type Config struct {
	Port            int
	AllowedOrigins  []string
	RateLimit       *ratelimit.Config // nil uses ratelimit.LoadConfig
	Tracing         bool              // wrap the handler with otelhttp
	ShutdownTimeout time.Duration
}

// Deps are the collaborators the handlers call.
type Deps struct {
	Store     Store
	Coach     *coach.Service
	JWT       *JWTService
	Passwords *config.PasswordConfig
	Logger    *logger.Logger
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	switch {
	case deps.Store == nil:
		return nil, errors.New("server: store is required")
	case deps.Coach == nil:
		return nil, errors.New("server: coach service is required")
	case deps.JWT == nil:
		return nil, errors.New("server: jwt service is required")
	case deps.Passwords == nil:
		return nil, errors.New("server: password config is required")
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}

	rl := cfg.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	s := &Server{
		responder:       responder{log: deps.Logger},
		store:           deps.Store,
		coach:           deps.Coach,
		rateLimiter:     ratelimit.NewLimiter(rl),
		origins:         make(map[string]bool, len(cfg.AllowedOrigins)),
		started:         time.Now(),
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	for _, origin := range cfg.AllowedOrigins {
		s.origins[origin] = true
	}

	users := NewUserService(deps.Store, deps.Store, deps.Passwords)
	s.authHandler = NewAuthHandler(users, deps.JWT, deps.Logger)
	auth := middleware.AuthMiddleware(deps.JWT.AsTokenValidator())
	protect := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api", s.handleIndex)
	mux.HandleFunc("GET /api/{$}", s.handleIndex)

	mux.HandleFunc("POST /api/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)
	mux.Handle("GET /api/auth/me", protect(s.authHandler.Me))

	mux.Handle("GET /api/profile", protect(s.handleGetProfile))
	mux.Handle("POST /api/profile", protect(s.handleUpsertProfile))

	mux.Handle("GET /api/progress", protect(s.handleListProgress))
	mux.Handle("POST /api/progress", protect(s.handleCreateProgress))
	mux.Handle("PUT /api/progress/{id}", protect(s.handleUpdateProgress))
	mux.Handle("DELETE /api/progress/{id}", protect(s.handleDeleteProgress))

	mux.Handle("POST /api/ai/recommendations", protect(s.handleRecommendations))
	mux.Handle("POST /api/ai/skill-gap", protect(s.handleSkillGap))
	mux.Handle("POST /api/ai/roadmap", protect(s.handleRoadmap))
	mux.Handle("POST /api/ai/skill-gap-roadmap", protect(s.handleSkillGapRoadmap))
	mux.Handle("POST /api/ai/resume-analyze", protect(s.handleResumeAnalyze))

	mux.Handle("POST /api/chat", protect(s.handleChat))
	mux.Handle("POST /api/pdf/roadmap", protect(s.handleRoadmapPDF))

	mux.HandleFunc("/", s.handleNotFound)

	var handler http.Handler = s.withLogging(s.withCORS(s.withSecurityHeaders(s.withRateLimit(mux))))
	if cfg.Tracing {
		handler = otelhttp.NewHandler(handler, "career-coach.http")
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      180 * time.Second, // model calls with retries
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.rateLimiter.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("server starting", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.log.Info("server stopped")
	return err
}

// withCORS answers preflight requests and allows listed origins with credentials.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.origins[origin] {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withSecurityHeaders sets the baseline hardening headers on every response.
func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging logs one line per request and turns handler panics into 500s.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				s.log.Error("handler panic", "method", r.Method, "path", r.URL.Path, "panic", p)
				if rec.status == 0 {
					s.errorResponse(rec, http.StatusInternalServerError, "Internal server error")
				}
			}
			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			s.log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", rec.bytes,
				"duration", time.Since(start),
			)
		}()
		next.ServeHTTP(rec, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.started).Seconds(),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "AI Career Coach API"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.errorResponse(w, http.StatusNotFound, "Not Found")
}

// clientID uses the remote IP; forwarded headers are not trusted.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	retryAfter := max(1, int(info.RetryAfter.Round(time.Second).Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

	s.log.Warn("rate limit exceeded",
		"client", clientID(r),
		"path", r.URL.Path,
		"limit", info.Limit,
		"retry_after", retryAfter,
	)
	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"message":     "Too many requests. Please try again later.",
		"retry_after": retryAfter,
	})
}
