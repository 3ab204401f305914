package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/domain/entity"
	"github.com/stockmate-app/stockmate-api/pkg/pagination"
)

// ItemRepository defines the interface for inventory item data operations.
// Two implementations exist: the GORM/Postgres store (live backend) and the
// in-memory store (demo backend); both are selected at startup.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error)
	// GetByIDs retrieves multiple items by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *ItemFilterParams) ([]entity.InventoryItem, int64, error)
	// ListAll returns every item owned by the user, unpaginated, for
	// report snapshots.
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.InventoryItem, error)
	GetLowStock(ctx context.Context, userID uuid.UUID) ([]entity.InventoryItem, error)
	// SetStockLevels applies absolute stock levels for multiple items and
	// stamps their last-sold time. Updates carry the computed value rather
	// than a relative decrement so re-applying them is idempotent.
	SetStockLevels(ctx context.Context, updates []StockUpdate) error
}

// StockUpdate carries an absolute stock level for one item
type StockUpdate struct {
	ItemID     uuid.UUID
	StockLevel int
	SoldAt     *time.Time // nil leaves last_sold_at unchanged
}

// ItemFilterParams contains filtering parameters for inventory queries
type ItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
	SortBy     string
	SortOrder  string
}
