package services

import (
	"context"
	"time"
)

// HealthStatus is the liveness payload served by the health endpoint.
type HealthStatus struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	UptimeSec int64  `json:"uptime_seconds"`
}

// HealthService reports process liveness.
type HealthService struct {
	version string
	started time.Time
}

// NewHealthService creates a health service stamped with the build version.
func NewHealthService(version string) *HealthService {
	return &HealthService{version: version, started: time.Now()}
}

// Check returns the current health status.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Version:   s.version,
		UptimeSec: int64(time.Since(s.started).Seconds()),
	}
}
