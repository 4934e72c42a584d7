package adminfeed

import (
	"context"
	"testing"

	"github.com/hanifwidodo/merchorder-backend/pkg/db/models"
	"github.com/hanifwidodo/merchorder-backend/pkg/enums"
	pkgerrors "github.com/hanifwidodo/merchorder-backend/pkg/errors"
	"github.com/hanifwidodo/merchorder-backend/pkg/logger"
	"github.com/google/uuid"
)

type fakeDeleter struct {
	deleted []uuid.UUID
	err     error
}

func (f *fakeDeleter) Delete(ctx context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestFeed(t *testing.T) (*Feed, *fakeDeleter) {
	t.Helper()
	d := &fakeDeleter{}
	f, err := NewFeed(d, nil, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new feed: %v", err)
	}
	return f, d
}

func ordersOf(names ...string) []models.Order {
	out := make([]models.Order, 0, len(names))
	for _, n := range names {
		out = append(out, models.Order{ID: uuid.New(), SubmitterName: n})
	}
	return out
}

func TestFeedLifecycle(t *testing.T) {
	t.Parallel()

	f, _ := newTestFeed(t)
	ctx := context.Background()

	if f.State() != enums.FeedUnsubscribed {
		t.Fatalf("initial state = %s", f.State())
	}

	if err := f.Subscribe(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if f.State() != enums.FeedSubscribing {
		t.Fatalf("state after subscribe = %s", f.State())
	}

	f.ApplySnapshot(ctx, ordersOf("Budi"))
	if f.State() != enums.FeedLive {
		t.Fatalf("state after snapshot = %s", f.State())
	}

	f.Unsubscribe(ctx)
	if f.State() != enums.FeedUnsubscribed {
		t.Fatalf("state after unsubscribe = %s", f.State())
	}
	if len(f.Snapshot()) != 0 {
		t.Fatal("snapshot should be dropped on unsubscribe")
	}
}

func TestFeedSnapshotReplacesWholesale(t *testing.T) {
	t.Parallel()

	f, _ := newTestFeed(t)
	ctx := context.Background()

	if err := f.Subscribe(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	f.ApplySnapshot(ctx, ordersOf("Budi", "Sari", "Wawan"))
	if got := len(f.Snapshot()); got != 3 {
		t.Fatalf("snapshot size = %d", got)
	}

	// A smaller snapshot wins outright: no stale rows linger.
	f.ApplySnapshot(ctx, ordersOf("Sari", "Wawan"))
	views := f.Snapshot()
	if len(views) != 2 {
		t.Fatalf("snapshot size = %d", len(views))
	}
	for _, v := range views {
		if v.SubmitterName == "Budi" {
			t.Fatal("stale row survived snapshot replacement")
		}
	}
}

func TestFeedSnapshotIgnoredWhileUnsubscribed(t *testing.T) {
	t.Parallel()

	f, _ := newTestFeed(t)
	ctx := context.Background()

	f.ApplySnapshot(ctx, ordersOf("Budi"))
	if f.State() != enums.FeedUnsubscribed {
		t.Fatalf("state = %s", f.State())
	}
	if len(f.Snapshot()) != 0 {
		t.Fatal("snapshot should not apply while unsubscribed")
	}
}

func TestFeedTwoStepDelete(t *testing.T) {
	t.Parallel()

	f, d := newTestFeed(t)
	ctx := context.Background()

	orders := ordersOf("Budi", "Sari")
	if err := f.Subscribe(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	f.ApplySnapshot(ctx, orders)

	// Confirm without a pending mark is rejected.
	err := f.ConfirmDelete(ctx, orders[0].ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.RequestDelete(orders[0].ID); err != nil {
		t.Fatalf("request delete: %v", err)
	}
	views := f.Snapshot()
	if !views[0].AwaitingConfirmation && !views[1].AwaitingConfirmation {
		t.Fatal("expected a pending mark in the view")
	}

	// Confirming the other row does not delete anything.
	err = f.ConfirmDelete(ctx, orders[1].ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.deleted) != 0 {
		t.Fatalf("deleted = %v", d.deleted)
	}

	if err := f.ConfirmDelete(ctx, orders[0].ID); err != nil {
		t.Fatalf("confirm delete: %v", err)
	}
	if len(d.deleted) != 1 || d.deleted[0] != orders[0].ID {
		t.Fatalf("deleted = %v", d.deleted)
	}
}

func TestFeedConfirmDeleteKeepsMarkOnStoreError(t *testing.T) {
	t.Parallel()

	f, d := newTestFeed(t)
	ctx := context.Background()

	orders := ordersOf("Budi")
	if err := f.Subscribe(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	f.ApplySnapshot(ctx, orders)

	if err := f.RequestDelete(orders[0].ID); err != nil {
		t.Fatalf("request delete: %v", err)
	}

	d.err = pkgerrors.New(pkgerrors.CodeDependency, "store unavailable")
	if err := f.ConfirmDelete(ctx, orders[0].ID); err == nil {
		t.Fatal("expected store error")
	}
	if views := f.Snapshot(); !views[0].AwaitingConfirmation {
		t.Fatal("mark should survive a failed store delete")
	}

	// The admin can retry the same confirmation once the store recovers.
	d.err = nil
	if err := f.ConfirmDelete(ctx, orders[0].ID); err != nil {
		t.Fatalf("confirm delete: %v", err)
	}
	if len(d.deleted) != 1 || d.deleted[0] != orders[0].ID {
		t.Fatalf("deleted = %v", d.deleted)
	}
	if views := f.Snapshot(); views[0].AwaitingConfirmation {
		t.Fatal("mark should clear after a successful delete")
	}
}

func TestFeedRequestDeleteReplacesMark(t *testing.T) {
	t.Parallel()

	f, _ := newTestFeed(t)
	ctx := context.Background()

	orders := ordersOf("Budi", "Sari")
	if err := f.Subscribe(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	f.ApplySnapshot(ctx, orders)

	if err := f.RequestDelete(orders[0].ID); err != nil {
		t.Fatalf("request delete: %v", err)
	}
	if err := f.RequestDelete(orders[1].ID); err != nil {
		t.Fatalf("request delete: %v", err)
	}

	marked := 0
	for _, v := range f.Snapshot() {
		if v.AwaitingConfirmation {
			marked++
			if v.ID != orders[1].ID {
				t.Fatalf("mark on wrong order: %s", v.ID)
			}
		}
	}
	if marked != 1 {
		t.Fatalf("marked rows = %d, want 1", marked)
	}
}

func TestFeedCancelDelete(t *testing.T) {
	t.Parallel()

	f, d := newTestFeed(t)
	ctx := context.Background()

	orders := ordersOf("Budi")
	if err := f.Subscribe(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	f.ApplySnapshot(ctx, orders)

	if err := f.RequestDelete(orders[0].ID); err != nil {
		t.Fatalf("request delete: %v", err)
	}
	f.CancelDelete()

	err := f.ConfirmDelete(ctx, orders[0].ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.deleted) != 0 {
		t.Fatalf("deleted = %v", d.deleted)
	}
}

func TestFeedMarkClearedWhenOrderVanishes(t *testing.T) {
	t.Parallel()

	f, _ := newTestFeed(t)
	ctx := context.Background()

	orders := ordersOf("Budi", "Sari")
	if err := f.Subscribe(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	f.ApplySnapshot(ctx, orders)

	if err := f.RequestDelete(orders[0].ID); err != nil {
		t.Fatalf("request delete: %v", err)
	}

	// Another admin deleted the row first: the refresh drops the mark.
	f.ApplySnapshot(ctx, orders[1:])

	err := f.ConfirmDelete(ctx, orders[0].ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFeedRequestDeleteRequiresLive(t *testing.T) {
	t.Parallel()

	f, _ := newTestFeed(t)

	err := f.RequestDelete(uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFeedErrorState(t *testing.T) {
	t.Parallel()

	f, _ := newTestFeed(t)
	ctx := context.Background()

	if err := f.Subscribe(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	f.ApplySnapshot(ctx, ordersOf("Budi"))

	f.SetError(ctx)
	if f.State() != enums.FeedError {
		t.Fatalf("state = %s", f.State())
	}
	// The last good snapshot stays visible in the error state.
	if len(f.Snapshot()) != 1 {
		t.Fatal("snapshot should survive the error state")
	}

	// Resubscribing recovers via the next snapshot.
	if err := f.Subscribe(ctx); err != nil {
		t.Fatalf("resubscribe: %v", err)
	}
	f.ApplySnapshot(ctx, ordersOf("Budi", "Sari"))
	if f.State() != enums.FeedLive {
		t.Fatalf("state = %s", f.State())
	}
}
