package handler

import (
	"errors"
	"net/http"

	"github.com/boddenberg/simple-hello-mcp-go/internal/domain"
	"github.com/boddenberg/simple-hello-mcp-go/internal/infra/observability"
	"github.com/boddenberg/simple-hello-mcp-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Options tunes the HTTP surface without touching route semantics.
type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svc *service.Echo, metrics *observability.Metrics, logger *zap.Logger, opts Options) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id", "traceparent"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(observability.MetricsMiddleware(metrics))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// --- Operational endpoints ---
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API ---
	r.Get("/", infoHandler(svc))
	r.Get("/health", healthHandler(svc))
	r.With(
		middleware.AllowContentType("application/json"),
		middleware.RequestSize(opts.MaxBodyBytes),
	).Post("/process", processHandler(svc, metrics, opts.MaxBodyBytes, logger))

	return r
}

// ============================================================
// GET / — service metadata
// ============================================================

func infoHandler(svc *service.Echo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.Info(ctx))
	}
}

// ============================================================
// GET /health
// ============================================================

func healthHandler(svc *service.Echo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /health")
		defer span.End()

		h := svc.Health(ctx)
		span.SetAttributes(attribute.String("health.status", string(h.Status)))
		writeJSON(w, http.StatusOK, h)
	}
}

// ============================================================
// POST /process
// ============================================================

func processHandler(svc *service.Echo, metrics *observability.Metrics, maxBody int64, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /process")
		defer span.End()

		req, err := decodeProcessRequest(r, maxBody)
		if err != nil {
			var malformed *domain.ErrMalformedRequest
			if errors.As(err, &malformed) {
				metrics.IncrMalformed()
			}
			span.RecordError(err)
			handleServiceError(w, err, logger)
			return
		}
		span.SetAttributes(attribute.Int("query.length", len(req.Query)))

		resp, err := svc.Process(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
