package orders

import (
	"context"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/hanifwidodo/merchorder-backend/pkg/db/models"
	"github.com/hanifwidodo/merchorder-backend/pkg/logger"
)

type subscriber interface {
	Receive(ctx context.Context, f func(context.Context, *gcppubsub.Message)) error
}

type snapshotLister interface {
	ListAll(ctx context.Context) ([]models.Order, error)
}

// SnapshotFunc receives each full orders snapshot the watcher loads.
type SnapshotFunc func(ctx context.Context, orders []models.Order)

// Watcher keeps feed consumers current with the orders table. Change
// notifications trigger an immediate full re-read; a slow polling
// ticker covers notifications lost in transit. Every refresh delivers
// a complete snapshot, so consumers always replace state wholesale
// rather than patching it.
type Watcher struct {
	sub      subscriber
	lister   snapshotLister
	onUpdate SnapshotFunc
	interval time.Duration
	logg     *logger.Logger

	refresh chan struct{}
}

// NewWatcher builds a watcher over the given subscription. A nil
// subscriber degrades to polling only.
func NewWatcher(sub *gcppubsub.Subscriber, lister snapshotLister, onUpdate SnapshotFunc, interval time.Duration, logg *logger.Logger) (*Watcher, error) {
	if lister == nil {
		return nil, fmt.Errorf("snapshot lister required")
	}
	if onUpdate == nil {
		return nil, fmt.Errorf("snapshot handler required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if interval <= 0 {
		interval = time.Minute
	}

	w := &Watcher{
		lister:   lister,
		onUpdate: onUpdate,
		interval: interval,
		logg:     logg,
		refresh:  make(chan struct{}, 1),
	}
	if sub != nil {
		w.sub = sub
	}
	return w, nil
}

// Run loads an initial snapshot and then blocks, refreshing on change
// notifications and on the polling interval, until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.sub != nil {
		go w.receive(ctx)
	}

	w.load(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.refresh:
			w.load(ctx)
		case <-ticker.C:
			w.load(ctx)
		}
	}
}

// receive acks every notification and coalesces them into at most one
// pending refresh.
func (w *Watcher) receive(ctx context.Context) {
	err := w.sub.Receive(ctx, func(_ context.Context, msg *gcppubsub.Message) {
		msg.Ack()
		select {
		case w.refresh <- struct{}{}:
		default:
		}
	})
	if err != nil && ctx.Err() == nil {
		w.logg.Warn(ctx, fmt.Sprintf("orders subscription receive stopped: %v", err))
	}
}

func (w *Watcher) load(ctx context.Context) {
	orders, err := w.lister.ListAll(ctx)
	if err != nil {
		w.logg.Warn(ctx, fmt.Sprintf("orders snapshot load failed: %v", err))
		return
	}
	w.onUpdate(ctx, orders)
}
