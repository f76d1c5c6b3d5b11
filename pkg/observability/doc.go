// Package observability provides structured logging, Prometheus metrics,
// OpenTelemetry tracing, health checks and graceful shutdown for the docs
// server.
//
// # Structured Logging
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("key", "LIST_TABLES").Info("rendered card")
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	router.Use(observability.HTTPMetricsMiddleware(metrics))
//	observability.RegisterMetricsEndpoint(router, registry)
//
// # Tracing
//
//	tp, err := observability.InitTracing(ctx, cfg.Observability.Tracing, logger)
//	if tp != nil {
//		router.Use(observability.TracingMiddleware(tp))
//	}
//	defer observability.ShutdownTracing(context.Background(), tp)
//
// # Health Checks
//
//	health := observability.NewHealthChecker(version)
//	health.Register("catalog", true, func(ctx context.Context) error { ... })
//	router.HandleFunc("/healthz", health.Liveness)
//	router.HandleFunc("/readyz", health.Readiness)
//
// # Graceful Shutdown
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	sm := observability.NewShutdownManager(logger, server, 30*time.Second)
//	return sm.WaitForShutdown(ctx)
package observability
