package notify

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/campusrate/campusrate-go/internal/api"
	"github.com/campusrate/campusrate-go/pkg/apierror"
)

type countingFetcher struct {
	calls atomic.Int64
	fault *apierror.ResourceFault
}

func (c *countingFetcher) ListNotifications(ctx context.Context) ([]api.Notification, *apierror.ResourceFault) {
	c.calls.Add(1)
	if c.fault != nil {
		return nil, c.fault
	}
	return []api.Notification{{ID: "n-1", Message: "new reply"}}, nil
}

func TestPollerFetchesOnStartAndInterval(t *testing.T) {
	fetcher := &countingFetcher{}
	var updates atomic.Int64
	poller := NewPoller(fetcher, 20*time.Millisecond, func([]api.Notification) {
		updates.Add(1)
	}, nil)

	poller.Start(context.Background())
	time.Sleep(110 * time.Millisecond)
	poller.Stop()

	calls := fetcher.calls.Load()
	if calls < 3 {
		t.Errorf("fetch calls = %d, want at least 3 (immediate + ticks)", calls)
	}
	// The final fetch may race teardown and get discarded.
	if got := updates.Load(); got < calls-1 || got > calls {
		t.Errorf("updates = %d, want one per successful fetch (%d)", got, calls)
	}
}

func TestPollerStopsOnStop(t *testing.T) {
	fetcher := &countingFetcher{}
	poller := NewPoller(fetcher, 20*time.Millisecond, func([]api.Notification) {}, nil)

	poller.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	poller.Stop()

	after := fetcher.calls.Load()
	time.Sleep(100 * time.Millisecond)

	if got := fetcher.calls.Load(); got != after {
		t.Errorf("fetch calls after Stop() grew from %d to %d; interval not torn down", after, got)
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	fetcher := &countingFetcher{}
	poller := NewPoller(fetcher, 20*time.Millisecond, func([]api.Notification) {}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	poller.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)

	after := fetcher.calls.Load()
	time.Sleep(100 * time.Millisecond)

	if got := fetcher.calls.Load(); got != after {
		t.Errorf("fetch calls after cancel grew from %d to %d", after, got)
	}

	poller.Stop() // still safe after context cancellation
}

func TestPollerSkipsUpdateOnFault(t *testing.T) {
	fetcher := &countingFetcher{fault: apierror.NewResourceFault(500, "boom")}
	var updates atomic.Int64
	poller := NewPoller(fetcher, 20*time.Millisecond, func([]api.Notification) {
		updates.Add(1)
	}, nil)

	poller.Start(context.Background())
	time.Sleep(70 * time.Millisecond)
	poller.Stop()

	if fetcher.calls.Load() == 0 {
		t.Fatal("fetch never called")
	}
	if updates.Load() != 0 {
		t.Errorf("updates = %d, want 0 when every fetch faults", updates.Load())
	}
}

func TestPollerStopIdempotent(t *testing.T) {
	poller := NewPoller(&countingFetcher{}, 20*time.Millisecond, func([]api.Notification) {}, nil)

	poller.Stop() // never started

	poller.Start(context.Background())
	poller.Stop()
	poller.Stop()
}
