package orders

import (
	"context"

	"github.com/hanifwidodo/merchorder-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the orders table. All
// reads and writes are scoped to a collection path so multiple order
// campaigns can share one database.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, collection string, id uuid.UUID) (*models.Order, error)
	ListByCollection(ctx context.Context, collection string) ([]models.Order, error)
	DeleteByID(ctx context.Context, collection string, id uuid.UUID) (bool, error)
	CountByCollection(ctx context.Context, collection string) (int64, error)
}

// ChangeNotifier broadcasts that the order table changed so feed
// watchers can refresh their snapshots.
type ChangeNotifier interface {
	NotifyChanged(ctx context.Context, change Change) error
}

// Change describes a single mutation of the orders table.
type Change struct {
	Kind       ChangeKind `json:"kind"`
	Collection string     `json:"collection"`
	OrderID    uuid.UUID  `json:"orderId"`
}

// ChangeKind labels the mutation carried by a Change.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeDeleted ChangeKind = "deleted"
)
