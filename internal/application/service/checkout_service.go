package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/application/cart"
	"github.com/stockmate-app/stockmate-api/internal/domain/entity"
	"github.com/stockmate-app/stockmate-api/internal/domain/repository"
	"github.com/stockmate-app/stockmate-api/pkg/apperror"
)

// CheckoutService turns a cart into one persisted sale plus stock updates.
//
// Write ordering: the sale record is always written first, then the stock
// updates. Stock updates carry absolute levels computed from the snapshot
// read during this checkout, floored at zero, so re-applying one after a
// partial failure cannot double-subtract.
type CheckoutService struct {
	saleRepo repository.SaleRepository
	itemRepo repository.ItemRepository
	now      func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(saleRepo repository.SaleRepository, itemRepo repository.ItemRepository) *CheckoutService {
	return &CheckoutService{
		saleRepo: saleRepo,
		itemRepo: itemRepo,
		now:      time.Now,
	}
}

// Checkout validates the cart against the current inventory snapshot,
// records one sale and decrements stock per distinct line. Prices and cost
// prices are taken at checkout time; the cart's cached prices are display
// only. On any persistence failure the cart keeps its lines so the caller
// can retry.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, c *cart.Cart) (*entity.Sale, error) {
	if c.IsEmpty() {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}
	if !c.BeginCheckout() {
		return nil, apperror.NewBadRequestError("Cart is not ready for checkout")
	}

	lines := c.Lines()

	// Current snapshot, one query for all lines
	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.ItemID
	}
	items, err := s.itemRepo.GetByIDs(ctx, ids)
	if err != nil {
		c.Fail()
		return nil, apperror.NewPersistenceError(err)
	}
	itemsByID := make(map[uuid.UUID]*entity.InventoryItem, len(items))
	for i := range items {
		itemsByID[items[i].ID] = &items[i]
	}

	soldAt := s.now()
	var total, profit int64
	saleItems := make([]entity.SaleItem, 0, len(lines))
	stockUpdates := make([]repository.StockUpdate, 0, len(lines))

	for _, line := range lines {
		item, exists := itemsByID[line.ItemID]
		if !exists || item.UserID != userID {
			c.Fail()
			return nil, apperror.NewNotFoundError("Item " + line.ItemID.String())
		}
		if line.Quantity > item.StockLevel {
			c.Fail()
			return nil, apperror.NewBadRequestError("Insufficient stock for " + item.Name)
		}

		lineTotal := item.Price * int64(line.Quantity)
		total += lineTotal
		profit += (item.Price - item.CostPrice) * int64(line.Quantity)

		saleItems = append(saleItems, entity.SaleItem{
			ItemID:    item.ID,
			Quantity:  line.Quantity,
			UnitPrice: item.Price,
		})

		newStock := item.StockLevel - line.Quantity
		if newStock < 0 {
			// Quantity was bounded during cart building; a concurrent
			// external change is the only way here. Floor, never negative.
			newStock = 0
		}
		at := soldAt
		stockUpdates = append(stockUpdates, repository.StockUpdate{
			ItemID:     item.ID,
			StockLevel: newStock,
			SoldAt:     &at,
		})
	}

	sale := &entity.Sale{
		UserID: userID,
		Total:  total,
		Profit: profit,
		SoldAt: soldAt,
		Items:  saleItems,
	}

	// Sale first, stock second
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		c.Fail()
		return nil, apperror.NewPersistenceError(err)
	}

	if err := s.itemRepo.SetStockLevels(ctx, stockUpdates); err != nil {
		// Sale is already recorded; the absolute updates are retryable
		c.Fail()
		return nil, apperror.NewPersistenceError(err)
	}

	c.Complete()
	return sale, nil
}
