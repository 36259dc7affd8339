package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/boddenberg/simple-hello-mcp-go/internal/domain"
	"github.com/boddenberg/simple-hello-mcp-go/internal/infra/observability"
	"github.com/boddenberg/simple-hello-mcp-go/internal/service"

	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 3, 9, 17, 4, 5, 123456789, time.FixedZone("BRT", -3*60*60))

func newEcho() (*service.Echo, *observability.Metrics) {
	metrics := observability.NewMetrics()
	svc := service.NewEcho(metrics, zap.NewNop()).WithClock(func() time.Time { return fixedNow })
	return svc, metrics
}

func TestInfo(t *testing.T) {
	svc, _ := newEcho()

	info := svc.Info(context.Background())

	if info.Name != "Simple Hello World MCP" {
		t.Errorf("unexpected name %q", info.Name)
	}
	if info.Version != "0.1.0" {
		t.Errorf("expected version 0.1.0, got %q", info.Version)
	}
	if info.Status != domain.StatusOperational {
		t.Errorf("expected operational, got %q", info.Status)
	}
	if info.Timestamp != "2024-03-09T20:04:05Z" {
		t.Errorf("expected UTC timestamp 2024-03-09T20:04:05Z, got %q", info.Timestamp)
	}
}

func TestHealth(t *testing.T) {
	svc, _ := newEcho()

	h := svc.Health(context.Background())

	if h.Status != domain.HealthHealthy {
		t.Errorf("expected healthy, got %q", h.Status)
	}
	if h.Version != "0.1.0" {
		t.Errorf("expected version 0.1.0, got %q", h.Version)
	}
	if len(h.Components) != 1 {
		t.Fatalf("expected exactly one component, got %d", len(h.Components))
	}
	app, ok := h.Components["app"]
	if !ok {
		t.Fatal("expected component 'app'")
	}
	if app.Status != domain.StatusOperational {
		t.Errorf("expected app operational, got %q", app.Status)
	}
	if app.Info["uptime"] != "N/A" {
		t.Errorf("expected uptime N/A, got %v", app.Info["uptime"])
	}
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantResult string
		wantIn     int
		wantOut    int
	}{
		{"two words", "hi there", "Hello! You said: hi there", 2, 5},
		{"empty", "", "Hello! You said: ", 0, 3},
		{"only whitespace", " \t\n ", "Hello! You said:  \t\n ", 0, 3},
		{"irregular spacing", "  a\tb\n  c ", "Hello! You said:   a\tb\n  c ", 3, 6},
		{"unicode", "olá mundo ✓", "Hello! You said: olá mundo ✓", 3, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newEcho()

			resp, err := svc.Process(context.Background(), &domain.ProcessRequest{Query: tt.query})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.Result != tt.wantResult {
				t.Errorf("expected result %q, got %q", tt.wantResult, resp.Result)
			}
			if resp.TokenUsage.InputTokens != tt.wantIn {
				t.Errorf("expected %d input tokens, got %d", tt.wantIn, resp.TokenUsage.InputTokens)
			}
			if resp.TokenUsage.OutputTokens != tt.wantOut {
				t.Errorf("expected %d output tokens, got %d", tt.wantOut, resp.TokenUsage.OutputTokens)
			}
			if resp.TokenUsage.TotalTokens != tt.wantIn+tt.wantOut {
				t.Errorf("expected %d total tokens, got %d", tt.wantIn+tt.wantOut, resp.TokenUsage.TotalTokens)
			}
			if resp.ProcessingTimeMs != 50 {
				t.Errorf("expected processing_time_ms 50, got %d", resp.ProcessingTimeMs)
			}
			if resp.Model.Name != "hello-world-model" || resp.Model.Version != "0.1.0" {
				t.Errorf("unexpected model %+v", resp.Model)
			}
		})
	}
}

func TestProcess_Idempotent(t *testing.T) {
	svc, _ := newEcho()
	req := &domain.ProcessRequest{Query: "same query twice"}

	first, err := svc.Process(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Process(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	if first.Result != second.Result || first.TokenUsage != second.TokenUsage {
		t.Errorf("expected identical responses, got %+v and %+v", first, second)
	}
}

func TestProcess_RecordsTokenMetrics(t *testing.T) {
	svc, metrics := newEcho()

	if _, err := svc.Process(context.Background(), &domain.ProcessRequest{Query: "hi there"}); err != nil {
		t.Fatal(err)
	}

	s := metrics.Snapshot()
	if s.InputTokens != 2 || s.OutputTokens != 5 {
		t.Errorf("expected 2/5 tokens recorded, got %v/%v", s.InputTokens, s.OutputTokens)
	}
}

func TestProcess_CancelledContext(t *testing.T) {
	svc, _ := newEcho()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Process(ctx, &domain.ProcessRequest{Query: "hi"}); err == nil {
		t.Fatal("expected context error")
	}
}
