package memstore

import (
	"context"

	"github.com/stockmate-app/stockmate-api/internal/domain/entity"
	"github.com/stockmate-app/stockmate-api/pkg/utils"
)

// DemoEmail and DemoPassword are the credentials of the seeded demo account.
const (
	DemoEmail    = "demo@stockmate.app"
	DemoPassword = "demo1234"
)

// SeedDemoData creates the demo account and a small starter inventory so
// the memory backend is usable straight away. Prices are in paise.
func SeedDemoData(s *Store) error {
	ctx := context.Background()

	hash, err := utils.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	storeName := "Demo General Store"
	user := &entity.User{
		Name:      "Demo User",
		Email:     DemoEmail,
		Password:  hash,
		StoreName: &storeName,
	}
	if err := s.Users().Create(ctx, user); err != nil {
		return err
	}

	items := []entity.InventoryItem{
		{Name: "Assam Tea 250g", Category: "Beverages", Price: 14500, CostPrice: 9000, StockLevel: 40, LowStockThreshold: 10},
		{Name: "Marie Biscuits", Category: "Snacks", Price: 3000, CostPrice: 1800, StockLevel: 120, LowStockThreshold: 24},
		{Name: "Basmati Rice 5kg", Category: "Groceries", Price: 62000, CostPrice: 48000, StockLevel: 15, LowStockThreshold: 5},
		{Name: "Sunflower Oil 1L", Category: "Groceries", Price: 18500, CostPrice: 14000, StockLevel: 4, LowStockThreshold: 5},
		{Name: "Detergent Bar", Category: "Household", Price: 2500, CostPrice: 1400, StockLevel: 0, LowStockThreshold: 12},
	}
	for i := range items {
		items[i].UserID = user.ID
		if err := s.Items().Create(ctx, &items[i]); err != nil {
			return err
		}
	}

	return nil
}
