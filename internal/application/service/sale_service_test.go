package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/domain/repository"
	"github.com/stockmate-app/stockmate-api/internal/infrastructure/memstore"
	"github.com/stockmate-app/stockmate-api/pkg/apperror"
	"github.com/stockmate-app/stockmate-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSalesNewestFirstWithDateRange(t *testing.T) {
	store := memstore.New()
	userID := uuid.New()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	seedSale(t, store, userID, base, 1000, 100)
	seedSale(t, store, userID, base.AddDate(0, 0, 1), 2000, 200)
	seedSale(t, store, userID, base.AddDate(0, 0, 2), 3000, 300)

	svc := NewSaleService(store.Sales())

	all, err := svc.ListSales(context.Background(), userID, &repository.SaleFilterParams{
		Pagination: pagination.DefaultPagination(),
	})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, int64(3000), all.Items[0].Total)
	assert.Equal(t, int64(1000), all.Items[2].Total)

	// [from, to) keeps the middle sale only
	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 2)
	ranged, err := svc.ListSales(context.Background(), userID, &repository.SaleFilterParams{
		Pagination: pagination.DefaultPagination(),
		From:       &from,
		To:         &to,
	})
	require.NoError(t, err)
	require.Len(t, ranged.Items, 1)
	assert.Equal(t, int64(2000), ranged.Items[0].Total)
}

func TestGetSaleScopedToOwner(t *testing.T) {
	store := memstore.New()
	owner := uuid.New()
	sale := seedSale(t, store, owner, time.Now(), 1000, 100)

	svc := NewSaleService(store.Sales())

	got, err := svc.GetSale(context.Background(), owner, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)

	_, err = svc.GetSale(context.Background(), uuid.New(), sale.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestDeleteSaleDoesNotRestoreStock(t *testing.T) {
	store := memstore.New()
	userID := uuid.New()
	item := seedItem(t, store, userID, "Tea", 1000, 600, 5)

	c := newCartWith(t, item)
	checkoutSvc := NewCheckoutService(store.Sales(), store.Items())
	sale, err := checkoutSvc.Checkout(context.Background(), userID, c)
	require.NoError(t, err)

	svc := NewSaleService(store.Sales())
	require.NoError(t, svc.DeleteSale(context.Background(), userID, sale.ID))

	_, err = svc.GetSale(context.Background(), userID, sale.ID)
	require.Error(t, err)

	// deletion erases the record only, stock stays decremented
	stored, err := store.Items().GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.StockLevel)
}
