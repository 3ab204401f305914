package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/domain/entity"
	"github.com/stockmate-app/stockmate-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations. Sales are
// immutable once created; there is deliberately no Update.
type SaleRepository interface {
	// Create persists the sale together with its line items.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListAll returns every sale owned by the user, items preloaded,
	// unpaginated, for report snapshots.
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Sale, error)
}

// SaleFilterParams contains filtering parameters for sale queries.
// From/To bound SoldAt as a half-open interval [From, To).
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	From       *time.Time
	To         *time.Time
}
