// Package server wires the metrics pipeline into an HTTP server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"sync"
	"syscall"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/middleware"
	"mercator-hq/callisto/pkg/storage"
	"mercator-hq/callisto/pkg/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// Server is the instrumented HTTP server. It owns the metric instruments,
// the path-cardinality limiter and its persistence, the default probes,
// and the middleware chain application routes are served through.
type Server struct {
	config      *config.Config
	mux         *http.ServeMux
	collector   *metrics.Collector
	limiter     *metrics.PathLimiter
	interceptor *middleware.Interceptor
	store       storage.Store
	snapshotter *storage.Snapshotter
	probes      *metrics.ProbeSet

	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer builds the full pipeline from cfg. All configuration problems
// surface here; a constructed server cannot fail at request time.
//
// The cfg must already be validated (Load does this). The scrape route is
// automatically excluded from its own measurement.
func NewServer(cfg *config.Config) (*Server, error) {
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(&cfg.Metrics, registry)

	probes, err := metrics.StartDefaultProbes(registry, cfg.Metrics.Probes)
	if err != nil {
		return nil, fmt.Errorf("failed to start default probes: %w", err)
	}

	store, err := newStore(&cfg.Storage)
	if err != nil {
		probes.Stop()
		return nil, err
	}

	limiter := metrics.NewPathLimiter(cfg.Metrics.MaxPaths())

	exclude := middleware.ExcludeConfig{
		Paths: append([]string(nil), cfg.Metrics.ExcludePaths...),
	}
	if cfg.Metrics.Enabled {
		// The scrape route never measures itself.
		exclude.Paths = append(exclude.Paths, cfg.Metrics.Path)
	}
	if cfg.Metrics.ExcludePattern != "" {
		pattern, err := regexp.Compile(cfg.Metrics.ExcludePattern)
		if err != nil {
			probes.Stop()
			store.Close()
			return nil, fmt.Errorf("invalid exclude pattern: %w", err)
		}
		exclude.Pattern = pattern
	}

	mux := http.NewServeMux()
	interceptor, err := middleware.NewInterceptor(middleware.Options{
		Collector: collector,
		Limiter:   limiter,
		Resolver:  middleware.NewMuxResolver(mux),
		Exclude:   exclude,
		Debug:     cfg.Logging.Level == "debug",
	})
	if err != nil {
		probes.Stop()
		store.Close()
		return nil, err
	}

	s := &Server{
		config:       cfg,
		mux:          mux,
		collector:    collector,
		limiter:      limiter,
		interceptor:  interceptor,
		store:        store,
		probes:       probes,
		shutdownChan: make(chan struct{}),
	}
	s.snapshotter = storage.NewSnapshotter(store, limiter, cfg.Storage.SnapshotSchedule, interceptor.ExclusionCacheSize)

	// The scrape route is mounted before any application route so nothing
	// can shadow it.
	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, collector.Handler())
	}

	return s, nil
}

// newStore builds the configured persistence backend.
func newStore(cfg *config.StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return storage.NewMemoryStore(), nil
	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Handle registers an application route on the instrumented mux. The
// pattern follows http.ServeMux syntax, and its template becomes the
// metric path label for matching requests.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
}

// HandleFunc registers an application route on the instrumented mux.
func (s *Server) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.mux.HandleFunc(pattern, handler)
}

// Handler returns the fully assembled middleware chain.
func (s *Server) Handler() http.Handler {
	handler := s.interceptor.Wrap(s.mux)
	handler = middleware.RequestID(handler)
	handler = middleware.Logging(handler)
	handler = middleware.Recovery(handler)
	return handler
}

// Start restores the admitted path set, starts the snapshotter, and serves
// HTTP until ctx is cancelled, a shutdown signal arrives, or the listener
// fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	// Seed the limiter so counter labels stay stable across restarts.
	paths, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load admitted paths: %w", err)
	}
	s.limiter.Restore(paths)
	if len(paths) > 0 {
		slog.Info("restored admitted paths",
			"count", s.limiter.Count(),
			"capacity", s.limiter.Capacity(),
		)
	}

	if err := s.snapshotter.Start(ctx); err != nil {
		return fmt.Errorf("failed to start snapshotter: %w", err)
	}

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        s.Handler(),
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			"address", s.config.Server.ListenAddress,
			"metrics_enabled", s.config.Metrics.Enabled,
			"metrics_path", s.config.Metrics.Path,
			"max_paths_to_count", s.limiter.Capacity(),
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server, saving a final snapshot of
// the admitted path set before closing the store.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown",
			"timeout", s.config.Server.ShutdownTimeout.String(),
		)

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.snapshotter.Stop()

		if err := s.store.Save(shutdownCtx, s.limiter.Snapshot()); err != nil {
			slog.Error("final snapshot save failed", "error", err)
		}
		if err := s.store.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}

		s.probes.Stop()

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("server stopped")
	})

	return shutdownErr
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
