package domain

// HealthState is the overall verdict of GET /health.
type HealthState string

const (
	HealthHealthy   HealthState = "healthy"
	HealthUnhealthy HealthState = "unhealthy"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status     HealthState                `json:"status"`
	Version    string                     `json:"version"`
	Timestamp  string                     `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents the health of an individual component.
type ComponentHealth struct {
	Status ServiceStatus  `json:"status"`
	Info   map[string]any `json:"info"`
}
