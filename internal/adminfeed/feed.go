package adminfeed

import (
	"context"
	"fmt"
	"sync"

	"github.com/hanifwidodo/merchorder-backend/pkg/db/models"
	"github.com/hanifwidodo/merchorder-backend/pkg/enums"
	pkgerrors "github.com/hanifwidodo/merchorder-backend/pkg/errors"
	"github.com/hanifwidodo/merchorder-backend/pkg/logger"
	"github.com/hanifwidodo/merchorder-backend/pkg/metrics"
	"github.com/google/uuid"
)

type deleter interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderView is an order as presented to the admin feed, carrying the
// transient delete-confirmation mark alongside the stored record.
type OrderView struct {
	models.Order
	AwaitingConfirmation bool `json:"awaitingConfirmation"`
}

// Feed maintains the admin's live view of the orders table. Snapshots
// arrive wholesale and always replace the previous one; the feed never
// patches individual rows. Deleting is a two-step flow: a request
// marks exactly one order as awaiting confirmation, and only a confirm
// for that same order reaches the store.
type Feed struct {
	mu            sync.RWMutex
	state         enums.FeedState
	orders        []models.Order
	pendingDelete uuid.UUID

	deleter deleter
	metrics *metrics.OrderMetrics
	logg    *logger.Logger
}

// NewFeed builds a feed in the unsubscribed state.
func NewFeed(d deleter, m *metrics.OrderMetrics, logg *logger.Logger) (*Feed, error) {
	if d == nil {
		return nil, fmt.Errorf("order deleter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	f := &Feed{
		state:   enums.FeedUnsubscribed,
		deleter: d,
		metrics: m,
		logg:    logg,
	}
	m.SetFeedState(enums.FeedUnsubscribed)
	return f, nil
}

// State returns the current feed state.
func (f *Feed) State() enums.FeedState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// Subscribe moves the feed out of the unsubscribed state. The feed
// reports subscribing until the first snapshot lands.
func (f *Feed) Subscribe(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case enums.FeedUnsubscribed, enums.FeedError:
		f.setStateLocked(ctx, enums.FeedSubscribing)
		return nil
	default:
		// Subscribing twice is harmless.
		return nil
	}
}

// Unsubscribe drops the snapshot, any pending delete mark, and returns
// to the unsubscribed state.
func (f *Feed) Unsubscribe(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.orders = nil
	f.pendingDelete = uuid.Nil
	f.setStateLocked(ctx, enums.FeedUnsubscribed)
	f.metrics.SetSnapshotSize(0)
}

// ApplySnapshot replaces the feed's view with a fresh full read of the
// orders table. The first snapshot after subscribing makes the feed
// live. A pending delete mark survives only if its order is still
// present.
func (f *Feed) ApplySnapshot(ctx context.Context, orders []models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == enums.FeedUnsubscribed {
		return
	}

	f.orders = orders
	if f.pendingDelete != uuid.Nil && !containsOrder(orders, f.pendingDelete) {
		f.pendingDelete = uuid.Nil
	}
	if f.state != enums.FeedLive {
		f.setStateLocked(ctx, enums.FeedLive)
	}
	f.metrics.SetSnapshotSize(len(orders))
}

// SetError marks the feed broken, e.g. after the underlying watcher
// dies. The snapshot is kept so the admin still sees the last data.
func (f *Feed) SetError(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == enums.FeedUnsubscribed {
		return
	}
	f.setStateLocked(ctx, enums.FeedError)
}

// Snapshot returns the current view with delete marks applied.
func (f *Feed) Snapshot() []OrderView {
	f.mu.RLock()
	defer f.mu.RUnlock()

	views := make([]OrderView, 0, len(f.orders))
	for _, o := range f.orders {
		views = append(views, OrderView{
			Order:                o,
			AwaitingConfirmation: o.ID == f.pendingDelete,
		})
	}
	return views
}

// RequestDelete marks an order for deletion, replacing any previous
// mark so at most one order ever awaits confirmation.
func (f *Feed) RequestDelete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != enums.FeedLive {
		return pkgerrors.New(pkgerrors.CodeConflict, "order feed is not live")
	}
	if !containsOrder(f.orders, id) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	f.pendingDelete = id
	return nil
}

// CancelDelete clears the pending delete mark, if any.
func (f *Feed) CancelDelete() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pendingDelete = uuid.Nil
}

// ConfirmDelete deletes the marked order. The id must match the
// pending mark exactly; confirming a different row than the one the
// mark sits on is rejected. The mark is cleared only once the store
// delete succeeds, so a failed delete can be confirmed again.
func (f *Feed) ConfirmDelete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	if f.pendingDelete == uuid.Nil || f.pendingDelete != id {
		f.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeConflict, "no delete pending for this order")
	}
	f.mu.Unlock()

	// The store delete runs outside the lock; the next snapshot
	// refresh removes the row from the view.
	if err := f.deleter.Delete(ctx, id); err != nil {
		return err
	}

	f.mu.Lock()
	if f.pendingDelete == id {
		f.pendingDelete = uuid.Nil
	}
	f.mu.Unlock()
	return nil
}

func (f *Feed) setStateLocked(ctx context.Context, state enums.FeedState) {
	if f.state == state {
		return
	}
	f.state = state
	f.metrics.SetFeedState(state)
	logCtx := f.logg.WithField(ctx, "feed_state", string(state))
	f.logg.Info(logCtx, "order feed state changed")
}

func containsOrder(orders []models.Order, id uuid.UUID) bool {
	for _, o := range orders {
		if o.ID == id {
			return true
		}
	}
	return false
}
