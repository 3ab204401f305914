package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/application/cart"
	"github.com/stockmate-app/stockmate-api/internal/domain/entity"
	"github.com/stockmate-app/stockmate-api/internal/infrastructure/memstore"
	"github.com/stockmate-app/stockmate-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItem(t *testing.T, store *memstore.Store, userID uuid.UUID, name string, price, cost int64, stock int) *entity.InventoryItem {
	t.Helper()
	item := &entity.InventoryItem{
		UserID:     userID,
		Name:       name,
		Category:   "Test",
		Price:      price,
		CostPrice:  cost,
		StockLevel: stock,
	}
	require.NoError(t, store.Items().Create(context.Background(), item))
	return item
}

func newCartWith(t *testing.T, items ...*entity.InventoryItem) *cart.Cart {
	t.Helper()
	c := cart.New()
	for _, item := range items {
		require.True(t, c.AddItem(item))
	}
	return c
}

func TestCheckoutRecordsSaleAndDecrementsStock(t *testing.T) {
	store := memstore.New()
	userID := uuid.New()
	item := seedItem(t, store, userID, "Tea", 1000, 600, 2)

	svc := NewCheckoutService(store.Sales(), store.Items())
	soldAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return soldAt }

	c := cart.New()
	require.True(t, c.AddItem(item))
	require.True(t, c.AdjustQuantity(item.ID, 1))

	sale, err := svc.Checkout(context.Background(), userID, c)
	require.NoError(t, err)

	assert.Equal(t, int64(2000), sale.Total)
	assert.Equal(t, int64(800), sale.Profit)
	assert.Equal(t, soldAt, sale.SoldAt)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, item.ID, sale.Items[0].ItemID)
	assert.Equal(t, 2, sale.Items[0].Quantity)
	assert.Equal(t, int64(1000), sale.Items[0].UnitPrice)

	assert.Equal(t, cart.StateCompleted, c.State())

	stored, err := store.Items().GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.StockLevel)
	require.NotNil(t, stored.LastSoldAt)
	assert.Equal(t, soldAt, *stored.LastSoldAt)

	persisted, err := store.Sales().GetByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.Total, persisted.Total)
}

func TestCheckoutEmptyCart(t *testing.T) {
	store := memstore.New()
	svc := NewCheckoutService(store.Sales(), store.Items())

	_, err := svc.Checkout(context.Background(), uuid.New(), cart.New())

	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCheckoutUsesCurrentPricesNotCartSnapshots(t *testing.T) {
	store := memstore.New()
	userID := uuid.New()
	item := seedItem(t, store, userID, "Tea", 1000, 600, 5)

	c := cart.New()
	require.True(t, c.AddItem(item))

	// Price changes between add-to-cart and checkout
	item.Price = 1500
	require.NoError(t, store.Items().Update(context.Background(), item))

	svc := NewCheckoutService(store.Sales(), store.Items())
	sale, err := svc.Checkout(context.Background(), userID, c)
	require.NoError(t, err)

	assert.Equal(t, int64(1500), sale.Total)
	assert.Equal(t, int64(1500), sale.Items[0].UnitPrice)
}

func TestCheckoutRejectsInsufficientStock(t *testing.T) {
	store := memstore.New()
	userID := uuid.New()
	item := seedItem(t, store, userID, "Tea", 1000, 600, 3)

	c := cart.New()
	require.True(t, c.AddItem(item))
	require.True(t, c.AdjustQuantity(item.ID, 2))

	// Stock drops after the cart was built
	item.StockLevel = 1
	require.NoError(t, store.Items().Update(context.Background(), item))

	svc := NewCheckoutService(store.Sales(), store.Items())
	_, err := svc.Checkout(context.Background(), userID, c)

	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	assert.Equal(t, cart.StateFailed, c.State())
}

func TestCheckoutRejectsForeignItems(t *testing.T) {
	store := memstore.New()
	owner := uuid.New()
	item := seedItem(t, store, owner, "Tea", 1000, 600, 5)

	c := cart.New()
	require.True(t, c.AddItem(item))

	svc := NewCheckoutService(store.Sales(), store.Items())
	_, err := svc.Checkout(context.Background(), uuid.New(), c)

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCheckoutFailurePreservesCartForRetry(t *testing.T) {
	store := memstore.New()
	userID := uuid.New()
	item := seedItem(t, store, userID, "Tea", 1000, 600, 5)

	c := cart.New()
	require.True(t, c.AddItem(item))

	store.FailNextWrite = errors.New("disk full")

	svc := NewCheckoutService(store.Sales(), store.Items())
	_, err := svc.Checkout(context.Background(), userID, c)

	require.Error(t, err)
	assert.Equal(t, 500, apperror.GetAppError(err).Code)
	assert.Equal(t, cart.StateFailed, c.State())
	assert.Equal(t, 1, c.TotalQuantity())

	// Nothing was recorded, stock untouched
	sales, err := store.Sales().ListAll(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, sales)
	stored, err := store.Items().GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.StockLevel)

	// Retry succeeds with the preserved lines
	require.True(t, c.Retry())
	sale, err := svc.Checkout(context.Background(), userID, c)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), sale.Total)
}

func TestCheckoutStockUpdatesAreAbsolute(t *testing.T) {
	store := memstore.New()
	userID := uuid.New()
	itemA := seedItem(t, store, userID, "Tea", 1000, 600, 10)
	itemB := seedItem(t, store, userID, "Rice", 5000, 4000, 3)

	c := cart.New()
	require.True(t, c.AddItem(itemA))
	require.True(t, c.AdjustQuantity(itemA.ID, 3)) // 4 units
	require.True(t, c.AddItem(itemB))              // 1 unit

	svc := NewCheckoutService(store.Sales(), store.Items())
	sale, err := svc.Checkout(context.Background(), userID, c)
	require.NoError(t, err)

	assert.Equal(t, int64(4*1000+5000), sale.Total)

	storedA, _ := store.Items().GetByID(context.Background(), itemA.ID)
	storedB, _ := store.Items().GetByID(context.Background(), itemB.ID)
	assert.Equal(t, 6, storedA.StockLevel)
	assert.Equal(t, 2, storedB.StockLevel)
}
