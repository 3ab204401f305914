package request

import "github.com/google/uuid"

// CheckoutLineRequest represents one cart line in a checkout request
type CheckoutLineRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
}

// CheckoutRequest represents a checkout request
type CheckoutRequest struct {
	Lines []CheckoutLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// SaleFilterRequest represents sale history filter parameters
type SaleFilterRequest struct {
	From    string `form:"from"` // RFC 3339, inclusive
	To      string `form:"to"`   // RFC 3339, exclusive
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
