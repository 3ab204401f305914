package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/domain/repository"
	"github.com/stockmate-app/stockmate-api/internal/infrastructure/memstore"
	"github.com/stockmate-app/stockmate-api/pkg/apperror"
	"github.com/stockmate-app/stockmate-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItemStoresPricesAsCents(t *testing.T) {
	store := memstore.New()
	svc := NewItemService(store.Items())
	userID := uuid.New()

	item, err := svc.CreateItem(context.Background(), &CreateItemInput{
		UserID:            userID,
		Name:              "Assam Tea 250g",
		Category:          "Beverages",
		Price:             145.00,
		CostPrice:         90.50,
		StockLevel:        40,
		LowStockThreshold: 10,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, int64(14500), item.Price)
	assert.Equal(t, int64(9050), item.CostPrice)
	assert.Equal(t, 40, item.StockLevel)
}

func TestCreateItemValidation(t *testing.T) {
	store := memstore.New()
	svc := NewItemService(store.Items())

	tests := []struct {
		name  string
		input CreateItemInput
		field string
	}{
		{"empty name", CreateItemInput{Category: "c", Price: 10}, "name"},
		{"empty category", CreateItemInput{Name: "n", Price: 10}, "category"},
		{"zero price", CreateItemInput{Name: "n", Category: "c", Price: 0}, "price"},
		{"negative price", CreateItemInput{Name: "n", Category: "c", Price: -5}, "price"},
		{"negative cost", CreateItemInput{Name: "n", Category: "c", Price: 10, CostPrice: -1}, "cost_price"},
		{"negative stock", CreateItemInput{Name: "n", Category: "c", Price: 10, StockLevel: -1}, "stock_level"},
		{"negative threshold", CreateItemInput{Name: "n", Category: "c", Price: 10, LowStockThreshold: -1}, "low_stock_threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.UserID = uuid.New()
			_, err := svc.CreateItem(context.Background(), &tt.input)

			require.Error(t, err)
			appErr := apperror.GetAppError(err)
			assert.Equal(t, 422, appErr.Code)

			found := false
			for _, fe := range appErr.Errors {
				if fe.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected a field error for %s", tt.field)
		})
	}
}

func TestGetItemScopedToOwner(t *testing.T) {
	store := memstore.New()
	svc := NewItemService(store.Items())
	owner := uuid.New()
	item := seedItem(t, store, owner, "Tea", 1000, 600, 5)

	got, err := svc.GetItem(context.Background(), owner, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	_, err = svc.GetItem(context.Background(), uuid.New(), item.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	_, err = svc.GetItem(context.Background(), owner, uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestUpdateItemPartial(t *testing.T) {
	store := memstore.New()
	svc := NewItemService(store.Items())
	userID := uuid.New()
	item := seedItem(t, store, userID, "Tea", 14500, 9000, 40)

	newPrice := 150.00
	newStock := 35
	updated, err := svc.UpdateItem(context.Background(), &UpdateItemInput{
		UserID:     userID,
		ItemID:     item.ID,
		Price:      &newPrice,
		StockLevel: &newStock,
	})
	require.NoError(t, err)

	// touched fields change, the rest survive
	assert.Equal(t, int64(15000), updated.Price)
	assert.Equal(t, 35, updated.StockLevel)
	assert.Equal(t, "Tea", updated.Name)
	assert.Equal(t, int64(9000), updated.CostPrice)
}

func TestUpdateItemRejectsInvalidResult(t *testing.T) {
	store := memstore.New()
	svc := NewItemService(store.Items())
	userID := uuid.New()
	item := seedItem(t, store, userID, "Tea", 14500, 9000, 40)

	badStock := -1
	_, err := svc.UpdateItem(context.Background(), &UpdateItemInput{
		UserID:     userID,
		ItemID:     item.ID,
		StockLevel: &badStock,
	})

	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestDeleteItemKeepsSaleHistoryReadable(t *testing.T) {
	store := memstore.New()
	itemSvc := NewItemService(store.Items())
	userID := uuid.New()
	item := seedItem(t, store, userID, "Tea", 1000, 600, 5)

	// Sell it, then delete the product
	c := newCartWith(t, item)
	checkoutSvc := NewCheckoutService(store.Sales(), store.Items())
	sale, err := checkoutSvc.Checkout(context.Background(), userID, c)
	require.NoError(t, err)

	require.NoError(t, itemSvc.DeleteItem(context.Background(), userID, item.ID))

	// The sale record still resolves with its line intact
	saleSvc := NewSaleService(store.Sales())
	got, err := saleSvc.GetSale(context.Background(), userID, sale.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, item.ID, got.Items[0].ItemID)
}

func TestListItemsPagination(t *testing.T) {
	store := memstore.New()
	svc := NewItemService(store.Items())
	userID := uuid.New()
	for i := 0; i < 7; i++ {
		seedItem(t, store, userID, "Item", 1000, 600, 5)
	}

	result, err := svc.ListItems(context.Background(), userID, &repository.ItemFilterParams{
		Pagination: &pagination.PaginationParams{Page: 2, PerPage: 3},
	})
	require.NoError(t, err)

	assert.Len(t, result.Items, 3)
	assert.Equal(t, int64(7), result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
}

func TestGetLowStockItems(t *testing.T) {
	store := memstore.New()
	svc := NewItemService(store.Items())
	userID := uuid.New()

	low := seedItem(t, store, userID, "Oil", 18500, 14000, 4)
	low.LowStockThreshold = 5
	require.NoError(t, store.Items().Update(context.Background(), low))
	healthy := seedItem(t, store, userID, "Rice", 62000, 48000, 15)
	healthy.LowStockThreshold = 5
	require.NoError(t, store.Items().Update(context.Background(), healthy))

	items, err := svc.GetLowStockItems(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "Oil", items[0].Name)
}
