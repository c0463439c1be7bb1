// Package keepalive periodically pings the server's own public URL so
// free-tier hosts that idle out inactive services keep it warm.
package keepalive

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Pinger struct {
	targetURL string
	interval  time.Duration
	client    httpDoer
	logger    *slog.Logger
}

func New(targetURL string, interval time.Duration, logger *slog.Logger) *Pinger {
	return &Pinger{
		targetURL: targetURL,
		interval:  interval,
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
	}
}

// Run pings the target on every tick until the context is cancelled.
// Ping failures are logged and never terminate the loop.
func (p *Pinger) Run(ctx context.Context) {
	if p.interval <= 0 {
		p.logger.Info("keep-alive disabled")
		return
	}

	p.logger.Info("keep-alive started",
		slog.String("target", p.targetURL),
		slog.Duration("interval", p.interval),
	)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("keep-alive stopped")
			return
		case <-ticker.C:
			if err := p.ping(ctx); err != nil {
				p.logger.Warn("keep-alive ping failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (p *Pinger) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.targetURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("ping %s: %w", p.targetURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("ping %s: unexpected status %d", p.targetURL, resp.StatusCode)
	}
	return nil
}
