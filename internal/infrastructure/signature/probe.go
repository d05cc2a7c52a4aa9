package signature

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	appmention "github.com/civilregistry/backend/internal/application/mention"
)

// AvailabilityPublisher records an availability observation for the workflow
// gates to read.
type AvailabilityPublisher interface {
	Publish(ctx context.Context, status appmention.Availability, probeInterval time.Duration) error
}

// Probe periodically checks the signature subsystem's health endpoint and
// publishes the observation. When the probe stops, its last observation
// expires and the gates fall back to treating the subsystem as unavailable.
type Probe struct {
	url        string
	interval   time.Duration
	publisher  AvailabilityPublisher
	httpClient *http.Client
	logger     *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewProbe creates a new availability probe
func NewProbe(url string, interval time.Duration, publisher AvailabilityPublisher, logger *zap.Logger) *Probe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Probe{
		url:        url,
		interval:   interval,
		publisher:  publisher,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Start begins probing in a background goroutine
func (p *Probe) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		return fmt.Errorf("availability probe is already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.isRunning = true

	p.wg.Add(1)
	go p.run(ctx)

	p.logger.Info("Signature availability probe started",
		zap.String("url", p.url),
		zap.Duration("interval", p.interval),
	)
	return nil
}

// Stop stops the probe and waits for the running check to finish
func (p *Probe) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isRunning {
		return
	}

	p.cancel()
	p.wg.Wait()
	p.isRunning = false

	p.logger.Info("Signature availability probe stopped")
}

func (p *Probe) run(ctx context.Context) {
	defer p.wg.Done()

	// First observation immediately, then on the ticker
	p.checkOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.checkOnce(ctx)
		}
	}
}

func (p *Probe) checkOnce(ctx context.Context) {
	status := p.observe(ctx)
	if err := p.publisher.Publish(ctx, status, p.interval); err != nil {
		if ctx.Err() == nil {
			p.logger.Error("Failed to publish signature availability", zap.Error(err))
		}
		return
	}
	if status != appmention.AvailabilityAvailable {
		p.logger.Warn("Signature subsystem unavailable", zap.String("url", p.url))
	}
}

func (p *Probe) observe(ctx context.Context) appmention.Availability {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return appmention.AvailabilityUnavailable
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return appmention.AvailabilityUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return appmention.AvailabilityAvailable
	}
	return appmention.AvailabilityUnavailable
}
