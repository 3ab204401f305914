package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/domain/entity"
	"github.com/stockmate-app/stockmate-api/internal/domain/repository"
	"github.com/stockmate-app/stockmate-api/pkg/apperror"
	"github.com/stockmate-app/stockmate-api/pkg/pagination"
)

// SaleService handles reads and deletes of recorded sales. Sales are never
// updated; new ones come only from the checkout flow.
type SaleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// GetSale retrieves a sale by ID, scoped to its owner
func (s *SaleService) GetSale(ctx context.Context, userID, saleID uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	if sale == nil || sale.UserID != userID {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with optional date-range filtering
func (s *SaleService) ListSales(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, userID, params)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// DeleteSale removes a sale record wholesale. Stock is not restored; a
// deleted sale is an erasure of the record, not a return.
func (s *SaleService) DeleteSale(ctx context.Context, userID, saleID uuid.UUID) error {
	if _, err := s.GetSale(ctx, userID, saleID); err != nil {
		return err
	}
	if err := s.saleRepo.Delete(ctx, saleID); err != nil {
		return apperror.NewPersistenceError(err)
	}
	return nil
}
