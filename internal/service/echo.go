package service

import (
	"context"
	"strings"
	"time"

	"github.com/boddenberg/simple-hello-mcp-go/internal/domain"
	"github.com/boddenberg/simple-hello-mcp-go/internal/infra/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service/echo")

// Echo answers the info, health and process operations. It holds no
// per-request state and is safe for concurrent use.
type Echo struct {
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewEcho creates the echo service with all dependencies injected.
func NewEcho(metrics *observability.Metrics, logger *zap.Logger) *Echo {
	return &Echo{
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock returns a copy of the service that reads time from now.
func (e *Echo) WithClock(now func() time.Time) *Echo {
	c := *e
	c.now = now
	return &c
}

// Info returns the fixed service metadata stamped with the current time.
func (e *Echo) Info(ctx context.Context) *domain.InfoResponse {
	_, span := tracer.Start(ctx, "Echo.Info")
	defer span.End()

	return &domain.InfoResponse{
		Name:        domain.ServiceName,
		Version:     domain.ServiceVersion,
		Description: domain.ServiceDescription,
		Status:      domain.StatusOperational,
		Timestamp:   domain.FormatTimestamp(e.now()),
	}
}

// Health reports the status of every component. Any component that is down
// makes the whole service unhealthy.
func (e *Echo) Health(ctx context.Context) *domain.HealthResponse {
	_, span := tracer.Start(ctx, "Echo.Health")
	defer span.End()

	components := map[string]domain.ComponentHealth{
		"app": {
			Status: domain.StatusOperational,
			Info:   map[string]any{"uptime": "N/A"},
		},
	}

	overall := domain.HealthHealthy
	for _, c := range components {
		if c.Status == domain.StatusDown {
			overall = domain.HealthUnhealthy
			break
		}
	}

	return &domain.HealthResponse{
		Status:     overall,
		Version:    domain.ServiceVersion,
		Timestamp:  domain.FormatTimestamp(e.now()),
		Components: components,
	}
}

// Process echoes the query back and reports whitespace word counts.
func (e *Echo) Process(ctx context.Context, req *domain.ProcessRequest) (*domain.ProcessResponse, error) {
	// Bail out early if the caller already cancelled.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, span := tracer.Start(ctx, "Echo.Process")
	defer span.End()

	result := domain.ResultPrefix + req.Query
	input := CountTokens(req.Query)
	output := CountTokens(result)

	span.SetAttributes(
		attribute.Int("tokens.input", input),
		attribute.Int("tokens.output", output),
	)
	e.metrics.RecordTokens(input, output)
	e.logger.Debug("query processed",
		zap.Int("input_tokens", input),
		zap.Int("output_tokens", output),
	)

	return &domain.ProcessResponse{
		Result: result,
		TokenUsage: domain.TokenUsage{
			InputTokens:  input,
			OutputTokens: output,
			TotalTokens:  input + output,
		},
		ProcessingTimeMs: domain.ProcessingTimeMs,
		Model: domain.ModelInfo{
			Name:    domain.ModelName,
			Version: domain.ModelVersion,
		},
	}, nil
}

// CountTokens returns the number of whitespace-delimited words in s.
func CountTokens(s string) int {
	return len(strings.Fields(s))
}
