package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/application/cart"
	"github.com/stockmate-app/stockmate-api/internal/application/service"
	"github.com/stockmate-app/stockmate-api/internal/domain/repository"
	"github.com/stockmate-app/stockmate-api/internal/presentation/http/dto/request"
	"github.com/stockmate-app/stockmate-api/internal/presentation/http/dto/response"
	"github.com/stockmate-app/stockmate-api/pkg/apperror"
	"github.com/stockmate-app/stockmate-api/pkg/pagination"
)

// SaleHandler handles sale history and checkout HTTP requests
type SaleHandler struct {
	saleService     *service.SaleService
	checkoutService *service.CheckoutService
	itemService     *service.ItemService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, checkoutService *service.CheckoutService, itemService *service.ItemService) *SaleHandler {
	return &SaleHandler{
		saleService:     saleService,
		checkoutService: checkoutService,
		itemService:     itemService,
	}
}

// List handles listing sales, newest first
func (h *SaleHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	}

	if filter.From != "" {
		from, err := time.Parse(time.RFC3339, filter.From)
		if err != nil {
			response.BadRequest(c, "Invalid 'from' timestamp, expected RFC 3339")
			return
		}
		params.From = &from
	}
	if filter.To != "" {
		to, err := time.Parse(time.RFC3339, filter.To)
		if err != nil {
			response.BadRequest(c, "Invalid 'to' timestamp, expected RFC 3339")
			return
		}
		params.To = &to
	}

	result, err := h.saleService.ListSales(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles fetching a single sale with its line items
func (h *SaleHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), *userID, saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Delete handles removing a sale record. This only erases the record;
// stock levels are not restored.
func (h *SaleHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), *userID, saleID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale deleted successfully", nil)
}

// Checkout handles recording a sale from a set of cart lines. The cart is
// rebuilt server-side so quantities are bounded by current stock.
func (h *SaleHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ck := cart.New()
	for _, line := range req.Lines {
		item, err := h.itemService.GetItem(c.Request.Context(), *userID, line.ItemID)
		if err != nil {
			response.Error(c, err)
			return
		}

		if !ck.AddItem(item) {
			response.Error(c, apperror.NewConflictError("Insufficient stock for "+item.Name))
			return
		}
		if line.Quantity > 1 {
			if !ck.AdjustQuantity(item.ID, line.Quantity-1) {
				response.Error(c, apperror.NewConflictError("Insufficient stock for "+item.Name))
				return
			}
		}
	}

	sale, err := h.checkoutService.Checkout(c.Request.Context(), *userID, ck)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", sale)
}
