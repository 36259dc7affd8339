package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/boddenberg/simple-hello-mcp-go/internal/config"
	"github.com/boddenberg/simple-hello-mcp-go/internal/domain"
	"github.com/boddenberg/simple-hello-mcp-go/internal/handler"
	"github.com/boddenberg/simple-hello-mcp-go/internal/infra/observability"
	"github.com/boddenberg/simple-hello-mcp-go/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// --- Load .env file (for local development) ---
	dotenvErr := config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	if dotenvErr != nil {
		logger.Warn("failed to read .env", zap.Error(dotenvErr))
	}

	logger.Info("configuration loaded",
		zap.String("addr", cfg.Addr()),
		zap.String("log_level", cfg.LogLevel),
		zap.Int64("max_body_bytes", cfg.MaxBodyBytes),
		zap.Strings("cors_allowed_origins", cfg.CORSAllowedOrigins),
		zap.Bool("trace_export", cfg.OTLPEndpoint != ""),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Tracing ---
	shutdownTracer, err := observability.InitTracer(ctx, cfg.OTLPEndpoint, cfg.ServiceName, domain.ServiceVersion)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdownTracer(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Services ---
	echoSvc := service.NewEcho(metrics, logger)

	// --- Router ---
	router := handler.NewRouter(echoSvc, metrics, logger, handler.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// --- Run until signal, then drain ---
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("server shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}

	s := metrics.Snapshot()
	logger.Info("server stopped",
		zap.Float64("requests", s.Requests),
		zap.Float64("input_tokens", s.InputTokens),
		zap.Float64("output_tokens", s.OutputTokens),
		zap.Float64("malformed_requests", s.MalformedRequests),
	)
}
