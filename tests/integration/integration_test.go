package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/boddenberg/simple-hello-mcp-go/internal/domain"
	"github.com/boddenberg/simple-hello-mcp-go/internal/handler"
	"github.com/boddenberg/simple-hello-mcp-go/internal/infra/observability"
	"github.com/boddenberg/simple-hello-mcp-go/internal/service"

	"go.uber.org/zap"
)

func startServer(t *testing.T) (*httptest.Server, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetrics()
	svc := service.NewEcho(metrics, zap.NewNop())
	srv := httptest.NewServer(handler.NewRouter(svc, metrics, zap.NewNop(), handler.Options{}))
	t.Cleanup(srv.Close)
	return srv, metrics
}

// TestIntegration_FullFlow drives every route over a real TCP listener.
func TestIntegration_FullFlow(t *testing.T) {
	srv, metrics := startServer(t)
	client := srv.Client()

	// --- GET / ---
	resp, err := client.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	var info domain.InfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || info.Status != domain.StatusOperational {
		t.Errorf("unexpected info response %d %+v", resp.StatusCode, info)
	}

	// --- GET /health ---
	resp, err = client.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	var health domain.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if health.Status != domain.HealthHealthy || len(health.Components) != 1 {
		t.Errorf("unexpected health response %+v", health)
	}

	// --- POST /process ---
	body, _ := json.Marshal(domain.ProcessRequest{Query: "hi there"})
	resp, err = client.Post(srv.URL+"/process", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	var processed domain.ProcessResponse
	if err := json.NewDecoder(resp.Body).Decode(&processed); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if processed.Result != "Hello! You said: hi there" || processed.TokenUsage.TotalTokens != 7 {
		t.Errorf("unexpected process response %+v", processed)
	}

	// --- POST /process with garbage ---
	resp, err = client.Post(srv.URL+"/process", "application/json", strings.NewReader("not json"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode < 400 || resp.StatusCode >= 500 {
		t.Errorf("expected 4xx, got %d", resp.StatusCode)
	}

	s := metrics.Snapshot()
	if s.Requests != 4 {
		t.Errorf("expected 4 requests recorded, got %v", s.Requests)
	}
	if s.MalformedRequests != 1 {
		t.Errorf("expected 1 malformed request, got %v", s.MalformedRequests)
	}
}

// TestIntegration_ConcurrentProcess checks that parallel requests do not
// interfere with each other.
func TestIntegration_ConcurrentProcess(t *testing.T) {
	srv, metrics := startServer(t)
	client := srv.Client()

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Post(srv.URL+"/process", "application/json", strings.NewReader(`{"query": "one two three"}`))
			if err != nil {
				errs <- err.Error()
				return
			}
			defer resp.Body.Close()

			var out domain.ProcessResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				errs <- err.Error()
				return
			}
			if out.TokenUsage != (domain.TokenUsage{InputTokens: 3, OutputTokens: 6, TotalTokens: 9}) {
				errs <- "unexpected token usage"
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
	if s := metrics.Snapshot(); s.InputTokens != 3*workers {
		t.Errorf("expected %d input tokens, got %v", 3*workers, s.InputTokens)
	}
}
