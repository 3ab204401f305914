package request

// CreateItemRequest represents an inventory item creation request
type CreateItemRequest struct {
	Name              string  `json:"name" binding:"required,min=1,max=255"`
	Category          string  `json:"category" binding:"required,min=1,max=100"`
	Price             float64 `json:"price" binding:"required,gt=0"`
	CostPrice         float64 `json:"cost_price" binding:"min=0"`
	StockLevel        int     `json:"stock_level" binding:"min=0"`
	LowStockThreshold *int    `json:"low_stock_threshold" binding:"omitempty,min=0"`
}

// UpdateItemRequest represents an inventory item update request
type UpdateItemRequest struct {
	Name              *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Category          *string  `json:"category" binding:"omitempty,min=1,max=100"`
	Price             *float64 `json:"price" binding:"omitempty,gt=0"`
	CostPrice         *float64 `json:"cost_price" binding:"omitempty,min=0"`
	StockLevel        *int     `json:"stock_level" binding:"omitempty,min=0"`
	LowStockThreshold *int     `json:"low_stock_threshold" binding:"omitempty,min=0"`
}

// ItemFilterRequest represents inventory filter parameters
type ItemFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
