package domain

import "time"

// ============================================================
// Service metadata — GET /
// ============================================================

const (
	ServiceName        = "Simple Hello World MCP"
	ServiceVersion     = "0.1.0"
	ServiceDescription = "A minimal MCP for testing Claude integration"
)

// TimestampLayout is the UTC second-precision layout used by every response.
const TimestampLayout = "2006-01-02T15:04:05Z"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ServiceStatus is the operational state reported by the service and its components.
type ServiceStatus string

const (
	StatusOperational ServiceStatus = "operational"
	StatusDegraded    ServiceStatus = "degraded"
	StatusDown        ServiceStatus = "down"
)

// InfoResponse is returned by GET /.
type InfoResponse struct {
	Name        string        `json:"name"`
	Version     string        `json:"version"`
	Description string        `json:"description"`
	Status      ServiceStatus `json:"status"`
	Timestamp   string        `json:"timestamp"`
}
