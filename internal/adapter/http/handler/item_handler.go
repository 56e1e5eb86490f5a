package handler

import (
	"strings"

	"marketplace-sync/internal/adapter/http/dto"
	"marketplace-sync/internal/core/domain"
	"marketplace-sync/internal/core/ports"
	"marketplace-sync/pkg/apperror"
	"marketplace-sync/pkg/response"

	"github.com/gin-gonic/gin"
)

// ItemHandler serves catalog views and the ledger-mutating item operations.
type ItemHandler struct {
	svc ports.MarketplaceService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(svc ports.MarketplaceService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

func (h *ItemHandler) target(id uint64) string {
	to, _ := h.svc.TransferTarget(id)
	return to
}

// List handles GET /api/v1/items.
func (h *ItemHandler) List(c *gin.Context) {
	catalog := h.svc.Catalog()
	response.OK(c, dto.NewItemListResponse(catalog, catalog.Items, h.target))
}

// ForSale handles GET /api/v1/items/for-sale.
func (h *ItemHandler) ForSale(c *gin.Context) {
	catalog := h.svc.Catalog()
	response.OK(c, dto.NewItemListResponse(catalog, catalog.ForSale(), h.target))
}

// Owned handles GET /api/v1/items/owned.
func (h *ItemHandler) Owned(c *gin.Context) {
	catalog := h.svc.Catalog()
	response.OK(c, dto.NewItemListResponse(catalog, catalog.Owned, h.target))
}

// Get handles GET /api/v1/items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := parseItemID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, ok := h.svc.Catalog().Lookup(id)
	if !ok {
		response.Error(c, apperror.ErrNotFound("Item"))
		return
	}
	response.OK(c, dto.NewItemResponse(item, h.target(id)))
}

// Create handles POST /api/v1/items.
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.ListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	res, err := h.svc.ListItem(c.Request.Context(), ports.ListItemRequest{
		Name:    req.Name,
		Locator: req.Image,
		Price:   req.Price,
	})
	operationOutcome(c, res, err, true)
}

// Purchase handles POST /api/v1/items/:id/purchase. The body is optional.
func (h *ItemHandler) Purchase(c *gin.Context) {
	id, err := parseItemID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.PurchaseRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	purchase := ports.PurchaseRequest{ItemID: id}
	if req.Price != nil {
		price, err := domain.ParsePrice(*req.Price)
		if err != nil {
			response.Error(c, apperror.Validation("invalid price: "+err.Error()))
			return
		}
		purchase.Price = price
	}

	res, err := h.svc.PurchaseItem(c.Request.Context(), purchase)
	operationOutcome(c, res, err, false)
}

// SetTransferTarget handles PUT /api/v1/items/:id/transfer-target.
func (h *ItemHandler) SetTransferTarget(c *gin.Context) {
	id, err := parseItemID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.TransferTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	if err := h.svc.SetTransferTarget(id, strings.TrimSpace(req.To)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"item_id": id, "transfer_target": h.target(id)})
}

// Transfer handles POST /api/v1/items/:id/transfer.
func (h *ItemHandler) Transfer(c *gin.Context) {
	id, err := parseItemID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.TransferRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.svc.TransferItem(c.Request.Context(), ports.TransferRequest{ItemID: id, To: strings.TrimSpace(req.To)})
	operationOutcome(c, res, err, false)
}
