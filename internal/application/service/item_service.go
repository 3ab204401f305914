package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/domain/entity"
	"github.com/stockmate-app/stockmate-api/internal/domain/repository"
	"github.com/stockmate-app/stockmate-api/pkg/apperror"
	"github.com/stockmate-app/stockmate-api/pkg/pagination"
)

// ItemService handles inventory item operations
// DefaultLowStockThreshold is applied when an item is created without an
// explicit threshold
const DefaultLowStockThreshold = 5

type ItemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	UserID            uuid.UUID
	Name              string
	Category          string
	Price             float64
	CostPrice         float64
	StockLevel        int
	LowStockThreshold int
}

// UpdateItemInput represents a partial item update. Nil fields are left
// unchanged.
type UpdateItemInput struct {
	UserID            uuid.UUID
	ItemID            uuid.UUID
	Name              *string
	Category          *string
	Price             *float64
	CostPrice         *float64
	StockLevel        *int
	LowStockThreshold *int
}

func validateItemFields(name, category string, price, costPrice float64, stockLevel, threshold int) []apperror.FieldError {
	var fieldErrors []apperror.FieldError

	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Product name is required"})
	}
	if category == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category", Message: "Category is required"})
	}
	if price <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price must be greater than zero"})
	}
	if costPrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "cost_price", Message: "Cost price cannot be negative"})
	}
	if stockLevel < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "stock_level", Message: "Stock level cannot be negative"})
	}
	if threshold < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "low_stock_threshold", Message: "Low stock threshold cannot be negative"})
	}

	return fieldErrors
}

// CreateItem validates and creates a new inventory item. Validation failures
// are rejected before any write.
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.InventoryItem, error) {
	if fieldErrors := validateItemFields(input.Name, input.Category, input.Price, input.CostPrice,
		input.StockLevel, input.LowStockThreshold); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	item := &entity.InventoryItem{
		UserID:            input.UserID,
		Name:              input.Name,
		Category:          input.Category,
		StockLevel:        input.StockLevel,
		LowStockThreshold: input.LowStockThreshold,
	}
	item.SetPriceFromDecimal(input.Price)
	item.SetCostPriceFromDecimal(input.CostPrice)

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	return item, nil
}

// GetItem retrieves an item by ID, scoped to its owner
func (s *ItemService) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.InventoryItem, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	if item == nil || item.UserID != userID {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// UpdateItem applies a partial update after validating the resulting fields.
// StockLevel can never go negative through this path.
func (s *ItemService) UpdateItem(ctx context.Context, input *UpdateItemInput) (*entity.InventoryItem, error) {
	item, err := s.GetItem(ctx, input.UserID, input.ItemID)
	if err != nil {
		return nil, err
	}

	name := item.Name
	if input.Name != nil {
		name = *input.Name
	}
	category := item.Category
	if input.Category != nil {
		category = *input.Category
	}
	price := item.GetPriceDecimal()
	if input.Price != nil {
		price = *input.Price
	}
	costPrice := item.GetCostPriceDecimal()
	if input.CostPrice != nil {
		costPrice = *input.CostPrice
	}
	stockLevel := item.StockLevel
	if input.StockLevel != nil {
		stockLevel = *input.StockLevel
	}
	threshold := item.LowStockThreshold
	if input.LowStockThreshold != nil {
		threshold = *input.LowStockThreshold
	}

	if fieldErrors := validateItemFields(name, category, price, costPrice, stockLevel, threshold); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	item.Name = name
	item.Category = category
	item.StockLevel = stockLevel
	item.LowStockThreshold = threshold
	item.SetPriceFromDecimal(price)
	item.SetCostPriceFromDecimal(costPrice)

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	return item, nil
}

// DeleteItem removes an item. Historical sales keep their weak reference;
// reports simply skip lines whose item is gone.
func (s *ItemService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.GetItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		return apperror.NewPersistenceError(err)
	}
	return nil
}

// ListItems lists items with filtering and pagination
func (s *ItemService) ListItems(ctx context.Context, userID uuid.UUID, params *repository.ItemFilterParams) (*pagination.PaginatedResult[entity.InventoryItem], error) {
	items, total, err := s.itemRepo.List(ctx, userID, params)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// GetLowStockItems returns items at or below their alert threshold
func (s *ItemService) GetLowStockItems(ctx context.Context, userID uuid.UUID) ([]entity.InventoryItem, error) {
	items, err := s.itemRepo.GetLowStock(ctx, userID)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	return items, nil
}
