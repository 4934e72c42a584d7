package orders

import (
	"context"
	"testing"

	"github.com/hanifwidodo/merchorder-backend/pkg/db/models"
	"github.com/hanifwidodo/merchorder-backend/pkg/enums"
	"github.com/hanifwidodo/merchorder-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  collection TEXT NOT NULL,
  submitter_name TEXT NOT NULL,
  region TEXT NOT NULL,
  garment_quantities TEXT NOT NULL DEFAULT '{}',
  sleeve_counts TEXT NOT NULL DEFAULT '{}',
  accessory_quantities TEXT NOT NULL DEFAULT '{}',
  total_items INTEGER NOT NULL,
  total_price INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func testOrder(collection, name string) *models.Order {
	return &models.Order{
		ID:            uuid.New(),
		Collection:    collection,
		SubmitterName: name,
		Region:        "Jakarta",
		GarmentQuantities: types.GarmentQuantities{
			enums.GarmentPolo: {"M": 3},
		},
		SleeveCounts: types.SleeveCounts{
			enums.GarmentPolo: {Long: 2},
		},
		AccessoryQuantities: types.AccessoryQuantities{},
		TotalItems:          3,
		TotalPrice:          265000,
	}
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	collection := "repo-create-" + uuid.NewString()
	order := testOrder(collection, "Budi")

	created, err := repo.Create(ctx, order)
	require.NoError(t, err)
	require.NotNil(t, created)

	found, err := repo.FindByID(ctx, collection, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi", found.SubmitterName)
	assert.Equal(t, int64(265000), found.TotalPrice)
	assert.Equal(t, 3, found.GarmentQuantities[enums.GarmentPolo]["M"])
	assert.Equal(t, 2, found.SleeveCounts[enums.GarmentPolo].Long)
}

func TestRepositoryFindScopedToCollection(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	collection := "repo-scope-" + uuid.NewString()
	order := testOrder(collection, "Sari")
	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, "another-collection", order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByCollection(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	collection := "repo-list-" + uuid.NewString()
	for _, name := range []string{"Budi", "Sari", "Wawan"} {
		_, err := repo.Create(ctx, testOrder(collection, name))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, testOrder("repo-list-other-"+uuid.NewString(), "Dewi"))
	require.NoError(t, err)

	list, err := repo.ListByCollection(ctx, collection)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	count, err := repo.CountByCollection(ctx, collection)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRepositoryDeleteByID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	collection := "repo-delete-" + uuid.NewString()
	order := testOrder(collection, "Budi")
	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	deleted, err := repo.DeleteByID(ctx, collection, order.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByID(ctx, collection, order.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
