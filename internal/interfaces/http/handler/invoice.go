package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appinvoicing "github.com/ledgerbook/backend/internal/application/invoicing"
	"github.com/ledgerbook/backend/internal/domain/invoicing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceLineRequest is one invoice line in a request body
type InvoiceLineRequest struct {
	ItemID          *uuid.UUID       `json:"item_id"`
	ItemDescription string           `json:"item_description" binding:"required,max=255"`
	Quantity        int64            `json:"quantity" binding:"gt=0"`
	UnitPrice       *decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateInvoiceRequest is the invoice creation body
type CreateInvoiceRequest struct {
	InvoiceNumber   string               `json:"invoice_number" binding:"omitempty,max=50"`
	CustomerName    string               `json:"customer_name" binding:"required,max=150"`
	CustomerEmail   *string              `json:"customer_email" binding:"omitempty,email,max=120"`
	CustomerAddress *string              `json:"customer_address"`
	IssueDate       *string              `json:"issue_date"`
	DueDate         *string              `json:"due_date"`
	Status          *string              `json:"status"`
	Notes           *string              `json:"notes"`
	Items           []InvoiceLineRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest is a partial invoice update. Sending items replaces every line.
type UpdateInvoiceRequest struct {
	CustomerName    *string              `json:"customer_name" binding:"omitempty,max=150"`
	CustomerEmail   Optional[string]     `json:"customer_email"`
	CustomerAddress Optional[string]     `json:"customer_address"`
	IssueDate       *string              `json:"issue_date"`
	DueDate         Optional[string]     `json:"due_date"`
	Status          *string              `json:"status"`
	Notes           Optional[string]     `json:"notes"`
	Items           []InvoiceLineRequest `json:"items" binding:"omitempty,min=1,dive"`
}

func toLineInputs(lines []InvoiceLineRequest) []invoicing.LineInput {
	out := make([]invoicing.LineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, invoicing.LineInput{
			ItemID:          l.ItemID,
			ItemDescription: l.ItemDescription,
			Quantity:        l.Quantity,
			UnitPrice:       *l.UnitPrice,
		})
	}
	return out
}

func parseStatus(s *string) (*invoicing.InvoiceStatus, error) {
	if s == nil {
		return nil, nil
	}
	status, err := invoicing.ParseInvoiceStatus(*s)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// InvoiceHandler serves invoices and their lines
type InvoiceHandler struct {
	BaseHandler
	service *appinvoicing.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(service *appinvoicing.InvoiceService, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: NewBaseHandler(log), service: service}
}

// RegisterRoutes mounts /companies/:company_id/invoices
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/companies/:company_id/invoices")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /companies/:company_id/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	period, ok := h.optionalPeriod(c)
	if !ok {
		return
	}
	invoices, err := h.service.List(c.Request.Context(), principal, companyID, period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoices)
}

// Create handles POST /companies/:company_id/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req CreateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	issue, err := parseOptionalDateField("issue_date", req.IssueDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	due, err := parseOptionalDateField("due_date", req.DueDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	invoice, err := h.service.Create(c.Request.Context(), principal, companyID, invoicing.InvoiceInput{
		InvoiceNumber:   req.InvoiceNumber,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		IssueDate:       issue,
		DueDate:         due,
		Status:          status,
		Notes:           req.Notes,
		Items:           toLineInputs(req.Items),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, invoice)
}

// Get handles GET /companies/:company_id/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	invoice, err := h.service.Get(c.Request.Context(), principal, companyID, recordID(c, "id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Update handles PUT /companies/:company_id/invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req UpdateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	issue, err := parseOptionalDateField("issue_date", req.IssueDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	due, clearDue, err := datePatch("due_date", req.DueDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	update := invoicing.InvoiceUpdate{
		CustomerName:    req.CustomerName,
		CustomerEmail:   textPatch(req.CustomerEmail),
		CustomerAddress: textPatch(req.CustomerAddress),
		IssueDate:       issue,
		DueDate:         due,
		ClearDueDate:    clearDue,
		Status:          status,
		Notes:           textPatch(req.Notes),
	}
	if req.Items != nil {
		update.Items = toLineInputs(req.Items)
		update.ReplaceItems = true
	}

	invoice, err := h.service.Update(c.Request.Context(), principal, companyID, recordID(c, "id"), update)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Delete handles DELETE /companies/:company_id/invoices/:id. Lines go with it.
func (h *InvoiceHandler) Delete(c *gin.Context) {
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
