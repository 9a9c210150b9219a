package persistence

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelink/backend/internal/domain/catalog"
	"github.com/tradelink/backend/internal/domain/shared"
)

func TestGormProductRepositoryDecrementStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p, err := catalog.NewProduct(uuid.New(), "Bulk Rice 25kg", "", "bag", decimal.NewFromInt(100), 5, 20)
	require.NoError(t, err)
	p.ClearEvents()
	require.NoError(t, repo.Create(ctx, p))

	t.Run("decrements when stock suffices", func(t *testing.T) {
		require.NoError(t, repo.DecrementStock(ctx, p.ID, 10))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, found.StockQuantity)
	})

	t.Run("rejects overdraw without touching stock", func(t *testing.T) {
		err := repo.DecrementStock(ctx, p.ID, 11)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, found.StockQuantity)
	})

	t.Run("exact remaining stock drains to zero", func(t *testing.T) {
		require.NoError(t, repo.DecrementStock(ctx, p.ID, 10))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, found.StockQuantity)

		assert.ErrorIs(t, repo.DecrementStock(ctx, p.ID, 1), shared.ErrInsufficientStock)
	})

	t.Run("missing product is not found", func(t *testing.T) {
		assert.ErrorIs(t, repo.DecrementStock(ctx, uuid.New(), 1), shared.ErrNotFound)
	})

	t.Run("restore adds stock back", func(t *testing.T) {
		require.NoError(t, repo.RestoreStock(ctx, p.ID, 7))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, found.StockQuantity)
	})
}

func TestGormProductRepositoryDecrementStockConcurrent(t *testing.T) {
	db := newTestDB(t)

	// One pooled connection keeps the in-memory database shared between
	// the goroutines; the UPDATE guard still decides which writer wins
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p, err := catalog.NewProduct(uuid.New(), "Bulk Rice 25kg", "", "bag", decimal.NewFromInt(100), 5, 15)
	require.NoError(t, err)
	p.ClearEvents()
	require.NoError(t, repo.Create(ctx, p))

	// Two placements race for 10 of the 15 units. Exactly one may win,
	// no matter how the writes interleave
	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs <- repo.DecrementStock(ctx, p.ID, 10)
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	var losses int
	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, shared.ErrInsufficientStock)
			losses++
		}
	}
	assert.Equal(t, 1, losses)

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, found.StockQuantity)
}

func TestGormProductRepositoryPersistsInactiveFlag(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	// A listing deactivated before its first save must come back inactive;
	// a column default must not overwrite the stored false
	p, err := catalog.NewProduct(uuid.New(), "Flour", "", "bag", decimal.NewFromInt(50), 1, 10)
	require.NoError(t, err)
	p.Deactivate()
	p.ClearEvents()
	require.NoError(t, repo.Create(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}

func TestGormProductRepositoryQueries(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	sellerID := uuid.New()
	active, err := catalog.NewProduct(sellerID, "Rice", "", "bag", decimal.NewFromInt(100), 1, 10)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, active))

	inactive, err := catalog.NewProduct(sellerID, "Flour", "", "bag", decimal.NewFromInt(50), 1, 10)
	require.NoError(t, err)
	inactive.Deactivate()
	require.NoError(t, repo.Create(ctx, inactive))

	mine, err := repo.FindBySeller(ctx, sellerID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	listed, total, err := repo.FindActive(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, listed, 1)
	assert.Equal(t, "Rice", listed[0].Name)

	all, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all)

	activeCount, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), activeCount)
}
