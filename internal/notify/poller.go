// Package notify keeps the notification view fresh on a fixed interval.
package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campusrate/campusrate-go/internal/api"
	"github.com/campusrate/campusrate-go/pkg/apierror"
)

// DefaultInterval is the refresh cadence of the notification view.
const DefaultInterval = 10 * time.Second

// Fetcher is the slice of the backend client the poller needs.
// *api.Client satisfies it.
type Fetcher interface {
	ListNotifications(ctx context.Context) ([]api.Notification, *apierror.ResourceFault)
}

// Poller refreshes notifications while its owning view is mounted:
// one fetch immediately on Start, then one per interval until Stop or
// context cancellation. After teardown the handler is never invoked
// again, so a stale tick cannot update an unmounted view.
type Poller struct {
	fetch    Fetcher
	interval time.Duration
	onUpdate func([]api.Notification)
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewPoller creates a poller delivering each successful fetch to
// onUpdate. A non-positive interval falls back to DefaultInterval.
func NewPoller(fetch Fetcher, interval time.Duration, onUpdate func([]api.Notification), logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		fetch:    fetch,
		interval: interval,
		onUpdate: onUpdate,
		logger:   logger,
	}
}

// Start begins polling. Starting an already started poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go p.run(ctx)
}

// Stop tears the interval down and waits for the in-flight iteration,
// if any, to finish. Idempotent.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	notifications, fault := p.fetch.ListNotifications(ctx)
	if fault != nil {
		// The view keeps its last data; a failed refresh is not fatal.
		p.logger.Warn("notification refresh failed", zap.Int("status", fault.Status), zap.String("error", fault.Message))
		return
	}
	if ctx.Err() != nil {
		// Torn down while the request was in flight; discard silently.
		return
	}
	p.onUpdate(notifications)
}
