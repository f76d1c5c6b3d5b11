package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/muzilix/dbapi-docs/pkg/config"
	"github.com/muzilix/dbapi-docs/pkg/docs"
	"github.com/muzilix/dbapi-docs/pkg/endpoints"
	"github.com/muzilix/dbapi-docs/pkg/httputil"
	"github.com/muzilix/dbapi-docs/pkg/nav"
	"github.com/muzilix/dbapi-docs/pkg/observability"
)

// Version is reported by the health endpoints
var Version = "dev"

func newServeCommand(env *Env) *Command {
	return &Command{
		Name:        "serve",
		Description: "Serve the catalog, sidebars and rendered cards over HTTP",
		Run:         func(args []string) error { return runServe(env, args) },
	}
}

// server bundles the HTTP handler with the parts serve mode keeps updating
type server struct {
	handler  http.Handler
	docs     *docs.DocsHandlers
	metrics  *observability.Metrics
	registry *endpoints.Registry
}

// buildServer assembles the routes and middleware. A nil tracer disables
// request spans.
func buildServer(logger *observability.Logger, cfg *config.Config, site *config.SiteConfig, reg *endpoints.Registry, registry *prometheus.Registry, tracer trace.TracerProvider) (*server, error) {
	var (
		metrics *observability.Metrics
		opts    = []docs.Option{docs.WithRenderCache(cfg.Server.RenderCacheSize, cfg.Server.RenderCacheTTL)}
	)
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(registry)
		opts = append(opts, docs.WithMetrics(metrics))
		for _, g := range reg.Groups() {
			n := 0
			for range reg.ListByGroup(g.Tag) {
				n++
			}
			metrics.CatalogEntries.WithLabelValues(g.Tag).Set(float64(n))
		}
	}

	handlers, err := docs.NewDocsHandlers(reg, site, opts...)
	if err != nil {
		return nil, err
	}

	health := observability.NewHealthChecker(Version)
	health.Register("catalog", true, func(ctx context.Context) error {
		if reg.Len() == 0 {
			return errors.New("endpoint catalog is empty")
		}
		return nil
	})
	health.Register("site", false, func(ctx context.Context) error {
		return handlers.Ready()
	})

	router := mux.NewRouter()
	if tracer != nil {
		router.Use(observability.TracingMiddleware(tracer))
	}
	router.HandleFunc("/healthz", health.Liveness).Methods(http.MethodGet)
	router.HandleFunc("/readyz", health.Readiness).Methods(http.MethodGet)
	if metrics != nil {
		router.Use(observability.HTTPMetricsMiddleware(metrics))
		observability.RegisterMetricsEndpoint(router, registry)
	}
	handlers.RegisterRoutes(router)

	middleware := []func(http.Handler) http.Handler{
		httputil.RequestIDMiddleware(logger),
		httputil.LoggingMiddleware,
		httputil.RecoveryMiddleware,
	}
	if len(cfg.Server.CORSOrigins) > 0 {
		middleware = append(middleware, httputil.CORSMiddleware(cfg.Server.CORSOrigins))
	}
	chain := httputil.Chain(middleware...)

	srv := &server{handler: chain(router), docs: handlers, metrics: metrics, registry: reg}
	if err := srv.check(logger, site); err != nil {
		return nil, err
	}
	return srv, nil
}

// check runs the navigation checks without a page tree and records the
// findings. Pages are not served, so dangling links are not reported here.
func (s *server) check(logger *observability.Logger, site *config.SiteConfig) error {
	model, err := site.NavModel(s.registry)
	if err != nil {
		return err
	}
	report := nav.NewChecker(site.APIPrefix).Check(model, s.registry, nil)
	for _, f := range report.Findings {
		logger.WithFields("kind", string(f.Kind), "severity", string(f.Severity)).Warn(f.Message)
		if s.metrics != nil {
			s.metrics.CheckFindingsTotal.WithLabelValues(string(f.Kind), string(f.Severity)).Inc()
		}
	}
	return nil
}

// reload applies a watched config change
func (s *server) reload(logger *observability.Logger, cfg *config.SiteConfig, err error) {
	status := "success"
	if err == nil {
		err = s.docs.Reload(cfg)
	}
	if err == nil {
		err = s.check(logger, cfg)
	}
	logger = logger.WithGeneration(s.docs.Generation())
	if err != nil {
		status = "error"
		logger.WithError(err).Warn("site config reload failed, keeping previous config")
	} else {
		logger.Info("site config reloaded")
	}
	if s.metrics != nil {
		s.metrics.ConfigReloadsTotal.WithLabelValues(status).Inc()
	}
}

func runServe(env *Env, args []string) error {
	flags := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags.SetOutput(env.Out)
	configPath := flags.String("config", "", "Site config file (default: search for docsgen.yaml)")
	watch := flags.Bool("watch", true, "Reload when the site config file changes")

	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)

	site, path, err := loadSiteConfig(*configPath)
	if err != nil {
		return err
	}

	tp, err := observability.InitTracing(context.Background(), cfg.Observability.Tracing, logger)
	if err != nil {
		return err
	}
	var tracer trace.TracerProvider
	if tp != nil {
		tracer = tp
	}

	srv, err := buildServer(logger, cfg, site, endpoints.Default(), prometheus.NewRegistry(), tracer)
	if err != nil {
		_ = observability.ShutdownTracing(context.Background(), tp)
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := observability.NewShutdownManager(logger, httpServer, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return observability.ShutdownTracing(ctx, tp)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the group context ends on a signal or when any member fails
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.WithField("addr", httpServer.Addr).Info("starting docs server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if *watch && path != "" {
		g.Go(func() error {
			err := config.Watch(gctx, path, logger, func(c *config.SiteConfig, err error) {
				srv.reload(logger, c, err)
			})
			if err != nil {
				// serving continues with the config already loaded
				logger.WithError(err).Error("config watcher stopped")
			}
			return nil
		})
	}

	g.Go(func() error {
		return shutdown.WaitForShutdown(gctx)
	})

	return g.Wait()
}
