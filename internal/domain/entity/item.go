package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem represents a product tracked in a store's inventory
type InventoryItem struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name              string         `gorm:"size:255;not null" json:"name"`
	Category          string         `gorm:"size:255;not null;index" json:"category"`
	Price             int64          `gorm:"default:0" json:"-"` // Selling price, stored in cents
	CostPrice         int64          `gorm:"default:0" json:"-"` // Stored in cents
	StockLevel        int            `gorm:"default:0" json:"stock_level"`
	LowStockThreshold int            `gorm:"default:0" json:"low_stock_threshold"`
	LastSoldAt        *time.Time     `json:"last_sold_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new inventory item
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// GetPriceDecimal returns the selling price as a decimal (for display)
func (i *InventoryItem) GetPriceDecimal() float64 {
	return float64(i.Price) / 100
}

// GetCostPriceDecimal returns the cost price as a decimal (for display)
func (i *InventoryItem) GetCostPriceDecimal() float64 {
	return float64(i.CostPrice) / 100
}

// SetPriceFromDecimal sets the selling price from a decimal value
func (i *InventoryItem) SetPriceFromDecimal(price float64) {
	i.Price = int64(price * 100)
}

// SetCostPriceFromDecimal sets the cost price from a decimal value
func (i *InventoryItem) SetCostPriceFromDecimal(price float64) {
	i.CostPrice = int64(price * 100)
}

// IsOutOfStock reports whether the item has no units left
func (i *InventoryItem) IsOutOfStock() bool {
	return i.StockLevel == 0
}

// IsLowStock reports whether the item is at or below its alert threshold
// but not yet out of stock
func (i *InventoryItem) IsLowStock() bool {
	return i.StockLevel > 0 && i.StockLevel <= i.LowStockThreshold
}

// MarshalJSON converts InventoryItem to JSON with decimal prices
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	type Alias InventoryItem
	return json.Marshal(&struct {
		Alias
		Price     float64 `json:"price"`
		CostPrice float64 `json:"cost_price"`
	}{
		Alias:     Alias(i),
		Price:     i.GetPriceDecimal(),
		CostPrice: i.GetCostPriceDecimal(),
	})
}
