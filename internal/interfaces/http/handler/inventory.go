package handler

import (
	"github.com/gin-gonic/gin"
	appinventory "github.com/ledgerbook/backend/internal/application/inventory"
	"github.com/ledgerbook/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateItemRequest is the inventory item creation body
type CreateItemRequest struct {
	Name           string           `json:"name" binding:"required,max=200"`
	Description    *string          `json:"description"`
	SKU            *string          `json:"sku" binding:"omitempty,max=100"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price"`
	SalePrice      *decimal.Decimal `json:"sale_price" binding:"required"`
	QuantityOnHand int64            `json:"quantity_on_hand" binding:"gte=0"`
	UnitOfMeasure  *string          `json:"unit_of_measure" binding:"omitempty,max=50"`
}

// UpdateItemRequest is a partial inventory item update
type UpdateItemRequest struct {
	Name           *string                   `json:"name" binding:"omitempty,max=200"`
	Description    Optional[string]          `json:"description"`
	SKU            Optional[string]          `json:"sku"`
	PurchasePrice  Optional[decimal.Decimal] `json:"purchase_price"`
	SalePrice      *decimal.Decimal          `json:"sale_price"`
	QuantityOnHand *int64                    `json:"quantity_on_hand" binding:"omitempty,gte=0"`
	UnitOfMeasure  Optional[string]          `json:"unit_of_measure"`
}

// InventoryHandler serves inventory items
type InventoryHandler struct {
	BaseHandler
	service *appinventory.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *appinventory.InventoryService, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{BaseHandler: NewBaseHandler(log), service: service}
}

// RegisterRoutes mounts /companies/:company_id/inventory
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/companies/:company_id/inventory")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /companies/:company_id/inventory
func (h *InventoryHandler) List(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), principal, companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

// Create handles POST /companies/:company_id/inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req CreateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.service.Create(c.Request.Context(), principal, companyID, inventory.ItemInput{
		Name:           req.Name,
		Description:    req.Description,
		SKU:            req.SKU,
		PurchasePrice:  req.PurchasePrice,
		SalePrice:      *req.SalePrice,
		QuantityOnHand: req.QuantityOnHand,
		UnitOfMeasure:  req.UnitOfMeasure,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, item)
}

// Get handles GET /companies/:company_id/inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), principal, companyID, recordID(c, "id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// Update handles PUT /companies/:company_id/inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req UpdateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.service.Update(c.Request.Context(), principal, companyID, recordID(c, "id"), inventory.ItemUpdate{
		Name:               req.Name,
		Description:        textPatch(req.Description),
		SKU:                textPatch(req.SKU),
		PurchasePrice:      req.PurchasePrice.Ptr(),
		ClearPurchasePrice: req.PurchasePrice.Cleared(),
		SalePrice:          req.SalePrice,
		QuantityOnHand:     req.QuantityOnHand,
		UnitOfMeasure:      textPatch(req.UnitOfMeasure),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete handles DELETE /companies/:company_id/inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), principal, companyID, recordID(c, "id")); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
