// Package api serves the versionforge engine over HTTP.
//
// A [Server] owns one validator, one compatibility matrix and one migration
// guide generator. Registration endpoints take the server's write lock and
// query endpoints its read lock, so concurrent requests always observe a
// consistent state.
//
// Routes:
//
//	GET  /healthz
//	GET  /version
//	POST /v1/components
//	POST /v1/dependencies
//	GET  /v1/validate
//	POST /v1/plan
//	GET  /v1/components/{name}/compatible/{dependency}
//	POST /v1/compatibility
//	GET  /v1/compatibility/verify
//	GET  /v1/compatibility/report
//	GET  /v1/compatibility/{component}/{version}
//	POST /v1/migrations
//	GET  /v1/migration/{component}
//	GET  /metrics
//
// Failures are JSON bodies of the form {"code": ..., "message": ...} with
// the status chosen by [httputil.StatusFor].
package api

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/versionforge/pkg/compat"
	"github.com/matzehuels/versionforge/pkg/httputil"
	"github.com/matzehuels/versionforge/pkg/migration"
	"github.com/matzehuels/versionforge/pkg/observability"
	"github.com/matzehuels/versionforge/pkg/validator"
)

// Server is the HTTP front end of the engine.
type Server struct {
	mu        sync.RWMutex
	validator *validator.Validator
	matrix    *compat.Matrix
	guides    *migration.Generator

	store     *compat.Store
	matrixKey string

	logger   *log.Logger
	gatherer prometheus.Gatherer
	router   chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request and diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGatherer sets the registry served on /metrics. Without it /metrics
// serves the default Prometheus registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		if g != nil {
			s.gatherer = g
		}
	}
}

// WithStore makes the server save the matrix under key after every
// compatibility registration. Call [Server.Restore] before serving so the
// first save does not drop pairs already stored under key.
func WithStore(store *compat.Store, key string) Option {
	return func(s *Server) {
		s.store = store
		s.matrixKey = key
	}
}

// New returns a server over the given engine components. Nil components
// are replaced with empty ones.
func New(v *validator.Validator, m *compat.Matrix, g *migration.Generator, opts ...Option) *Server {
	s := &Server{
		validator: v,
		matrix:    m,
		guides:    g,
		logger:    log.New(io.Discard),
		gatherer:  prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = validator.New(validator.WithLogger(s.logger))
	}
	if s.matrix == nil {
		s.matrix = compat.New(compat.WithLogger(s.logger))
	}
	if s.guides == nil {
		s.guides = migration.New(migration.WithLogger(s.logger))
	}
	s.router = s.routes()
	return s
}

// Restore merges the matrix stored under the server's key into the
// in-memory one. Pairs present in both are kept once. Without a store it
// does nothing and reports false.
func (s *Server) Restore(ctx context.Context) (found bool, err error) {
	if s.store == nil {
		return false, nil
	}
	stored, found, err := s.store.Load(ctx, s.matrixKey)
	if err != nil || !found {
		return false, err
	}
	s.mu.Lock()
	s.matrix.Load(stored.Document())
	s.mu.Unlock()
	s.logger.Debug("stored matrix restored", "key", s.matrixKey, "components", len(stored.Components()))
	return true, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/components", s.handleRegisterComponent)
		r.Get("/components/{name}/compatible/{dependency}", s.handleFindCompatible)
		r.Post("/dependencies", s.handleRegisterDependency)
		r.Get("/validate", s.handleValidate)
		r.Post("/plan", s.handlePlan)

		r.Post("/compatibility", s.handleRegisterCompatibility)
		r.Get("/compatibility/verify", s.handleVerify)
		r.Get("/compatibility/report", s.handleReport)
		r.Get("/compatibility/{component}/{version}", s.handleCompatibleVersions)

		r.Post("/migrations", s.handleRegisterMigration)
		r.Get("/migration/{component}", s.handleGuide)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, notFound("no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{
			Code:    "METHOD_NOT_ALLOWED",
			Message: r.Method + " is not allowed on " + r.URL.Path,
		})
	})
	return r
}

// instrument logs every request and reports it to the HTTP hooks under its
// route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status,
			"duration", time.Since(start).Round(time.Microsecond), "id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe serves the handler on addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}
