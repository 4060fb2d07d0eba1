package server

import (
	"context"
	"log/slog"
	"time"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHealthChecker is healthy while its upstream answers within timeout.
type PingHealthChecker struct {
	upstream Pinger
	timeout  time.Duration
}

func NewPingHealthChecker(upstream Pinger, timeout time.Duration) *PingHealthChecker {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &PingHealthChecker{upstream: upstream, timeout: timeout}
}

func (hc *PingHealthChecker) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, hc.timeout)
	defer cancel()

	if err := hc.upstream.Ping(ctx); err != nil {
		slog.Warn("Upstream health check failed", "error", err)
		return false
	}
	return true
}
