package orders

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hanifwidodo/merchorder-backend/internal/cart"
	"github.com/hanifwidodo/merchorder-backend/internal/catalog"
	"github.com/hanifwidodo/merchorder-backend/internal/pricing"
	"github.com/hanifwidodo/merchorder-backend/pkg/db/models"
	pkgerrors "github.com/hanifwidodo/merchorder-backend/pkg/errors"
	"github.com/hanifwidodo/merchorder-backend/pkg/logger"
	"github.com/hanifwidodo/merchorder-backend/pkg/metrics"
	"github.com/hanifwidodo/merchorder-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the order lifecycle operations exposed to handlers.
type Service interface {
	Estimate(ctx context.Context, sel types.Selection) (pricing.Quote, error)
	Submit(ctx context.Context, input SubmitInput) (*models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubmitInput captures a completed draft posted for persistence.
type SubmitInput struct {
	SessionID string
	Name      string
	Region    string
	Selection types.Selection
}

type service struct {
	catalog    *catalog.Catalog
	repo       Repository
	tx         txRunner
	notifier   ChangeNotifier
	metrics    *metrics.OrderMetrics
	logg       *logger.Logger
	collection string

	// inFlight tracks sessions with a submit already running so a
	// double-tap cannot persist the same draft twice.
	inFlight sync.Map
}

// NewService builds the order service backed by the provided stack.
func NewService(
	c *catalog.Catalog,
	repo Repository,
	tx txRunner,
	notifier ChangeNotifier,
	m *metrics.OrderMetrics,
	logg *logger.Logger,
	collection string,
) (Service, error) {
	if c == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(collection) == "" {
		return nil, fmt.Errorf("collection path required")
	}
	return &service{
		catalog:    c,
		repo:       repo,
		tx:         tx,
		notifier:   notifier,
		metrics:    m,
		logg:       logg,
		collection: strings.TrimSpace(collection),
	}, nil
}

// Estimate prices a selection without persisting anything.
func (s *service) Estimate(ctx context.Context, sel types.Selection) (pricing.Quote, error) {
	draft, err := cart.NewDraftFromSelection(s.catalog, sel)
	if err != nil {
		return pricing.Quote{}, err
	}
	return draft.Quote()
}

// Submit validates the draft, freezes its price, and persists it as a
// new order record. A second submit for the same session while the
// first is still running is rejected with a conflict.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Order, error) {
	sessionID := strings.TrimSpace(input.SessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required")
	}

	if _, running := s.inFlight.LoadOrStore(sessionID, struct{}{}); running {
		s.metrics.IncSubmitted("conflict")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "an order submission is already in progress")
	}
	defer s.inFlight.Delete(sessionID)

	draft, err := cart.NewDraftFromSelection(s.catalog, input.Selection)
	if err != nil {
		s.metrics.IncSubmitted("invalid")
		return nil, err
	}
	draft.SetIdentity(input.Name, input.Region)
	if err := draft.ValidateForSubmit(); err != nil {
		s.metrics.IncSubmitted("invalid")
		return nil, err
	}

	quote, err := draft.Quote()
	if err != nil {
		s.metrics.IncSubmitted("invalid")
		return nil, err
	}

	sel := draft.Selection()
	order := &models.Order{
		ID:                  uuid.New(),
		Collection:          s.collection,
		SubmitterName:       draft.Name(),
		Region:              draft.Region(),
		GarmentQuantities:   sel.GarmentQuantities,
		SleeveCounts:        sel.SleeveCounts,
		AccessoryQuantities: sel.AccessoryQuantities,
		TotalItems:          quote.TotalItems,
		TotalPrice:          quote.TotalPrice,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, createErr := s.repo.WithTx(tx).Create(ctx, order)
		return createErr
	})
	if err != nil {
		s.metrics.IncSubmitted("error")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	s.metrics.IncSubmitted("ok")
	s.notifyChanged(ctx, Change{Kind: ChangeCreated, Collection: s.collection, OrderID: order.ID})

	logCtx := s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(logCtx, "order submitted")
	return order, nil
}

// ListAll returns the full snapshot of orders in the collection,
// newest first.
func (s *service) ListAll(ctx context.Context) ([]models.Order, error) {
	list, err := s.repo.ListByCollection(ctx, s.collection)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// Delete removes one order by id. Missing rows map to not found so a
// feed acting on a stale snapshot gets a clean error.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	deleted, err := s.repo.DeleteByID(ctx, s.collection, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	s.metrics.IncDeleted()
	s.notifyChanged(ctx, Change{Kind: ChangeDeleted, Collection: s.collection, OrderID: id})

	logCtx := s.logg.WithOrderID(ctx, id.String())
	s.logg.Info(logCtx, "order deleted")
	return nil
}

// notifyChanged is best effort: the polling safety net covers a lost
// notification, so a publish failure must not fail the write.
func (s *service) notifyChanged(ctx context.Context, change Change) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyChanged(ctx, change); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("order change notify failed: %v", err))
	}
}
