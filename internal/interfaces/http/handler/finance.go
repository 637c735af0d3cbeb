package handler

import (
	"github.com/gin-gonic/gin"
	appfinance "github.com/ledgerbook/backend/internal/application/finance"
	"github.com/ledgerbook/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateIncomeRequest records income
type CreateIncomeRequest struct {
	Description  string           `json:"description" binding:"required,max=255"`
	Amount       *decimal.Decimal `json:"amount" binding:"required"`
	DateReceived string           `json:"date_received" binding:"required"`
	Category     *string          `json:"category" binding:"omitempty,max=100"`
	Notes        *string          `json:"notes"`
}

// UpdateIncomeRequest is a partial income update
type UpdateIncomeRequest struct {
	Description  *string          `json:"description" binding:"omitempty,max=255"`
	Amount       *decimal.Decimal `json:"amount"`
	DateReceived *string          `json:"date_received"`
	Category     Optional[string] `json:"category"`
	Notes        Optional[string] `json:"notes"`
}

// CreateExpenseRequest records an expense
type CreateExpenseRequest struct {
	Description  string           `json:"description" binding:"required,max=255"`
	Amount       *decimal.Decimal `json:"amount" binding:"required"`
	DateIncurred string           `json:"date_incurred" binding:"required"`
	Category     *string          `json:"category" binding:"omitempty,max=100"`
	Vendor       *string          `json:"vendor" binding:"omitempty,max=150"`
	Notes        *string          `json:"notes"`
}

// UpdateExpenseRequest is a partial expense update
type UpdateExpenseRequest struct {
	Description  *string          `json:"description" binding:"omitempty,max=255"`
	Amount       *decimal.Decimal `json:"amount"`
	DateIncurred *string          `json:"date_incurred"`
	Category     Optional[string] `json:"category"`
	Vendor       Optional[string] `json:"vendor"`
	Notes        Optional[string] `json:"notes"`
}

// FinanceHandler serves income and expense records
type FinanceHandler struct {
	BaseHandler
	service *appfinance.ExpenseIncomeService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(service *appfinance.ExpenseIncomeService, log *zap.Logger) *FinanceHandler {
	return &FinanceHandler{BaseHandler: NewBaseHandler(log), service: service}
}

// RegisterRoutes mounts /companies/:company_id/income and /expenses
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	income := rg.Group("/companies/:company_id/income")
	income.GET("", h.ListIncome)
	income.POST("", h.CreateIncome)
	income.GET("/:id", h.GetIncome)
	income.PUT("/:id", h.UpdateIncome)
	income.DELETE("/:id", h.DeleteIncome)

	expenses := rg.Group("/companies/:company_id/expenses")
	expenses.GET("", h.ListExpenses)
	expenses.POST("", h.CreateExpense)
	expenses.GET("/:id", h.GetExpense)
	expenses.PUT("/:id", h.UpdateExpense)
	expenses.DELETE("/:id", h.DeleteExpense)
}

// ListIncome handles GET /companies/:company_id/income
func (h *FinanceHandler) ListIncome(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	period, ok := h.optionalPeriod(c)
	if !ok {
		return
	}
	records, err := h.service.ListIncome(c.Request.Context(), principal, companyID, period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, records)
}

// CreateIncome handles POST /companies/:company_id/income
func (h *FinanceHandler) CreateIncome(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req CreateIncomeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	received, err := parseDateField("date_received", req.DateReceived)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	record, err := h.service.CreateIncome(c.Request.Context(), principal, companyID, finance.IncomeInput{
		Description:  req.Description,
		Amount:       *req.Amount,
		DateReceived: received,
		Category:     req.Category,
		Notes:        req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, record)
}

// GetIncome handles GET /companies/:company_id/income/:id
func (h *FinanceHandler) GetIncome(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	record, err := h.service.GetIncome(c.Request.Context(), principal, companyID, recordID(c, "id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, record)
}

// UpdateIncome handles PUT /companies/:company_id/income/:id
func (h *FinanceHandler) UpdateIncome(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req UpdateIncomeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	update := finance.IncomeUpdate{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    textPatch(req.Category),
		Notes:       textPatch(req.Notes),
	}
	if req.DateReceived != nil {
		received, err := parseDateField("date_received", *req.DateReceived)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		update.DateReceived = &received
	}

	record, err := h.service.UpdateIncome(c.Request.Context(), principal, companyID, recordID(c, "id"), update)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, record)
}

// DeleteIncome handles DELETE /companies/:company_id/income/:id
func (h *FinanceHandler) DeleteIncome(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	if err := h.service.DeleteIncome(c.Request.Context(), principal, companyID, recordID(c, "id")); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// ListExpenses handles GET /companies/:company_id/expenses
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	period, ok := h.optionalPeriod(c)
	if !ok {
		return
	}
	records, err := h.service.ListExpenses(c.Request.Context(), principal, companyID, period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, records)
}

// CreateExpense handles POST /companies/:company_id/expenses
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req CreateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	incurred, err := parseDateField("date_incurred", req.DateIncurred)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	record, err := h.service.CreateExpense(c.Request.Context(), principal, companyID, finance.ExpenseInput{
		Description:  req.Description,
		Amount:       *req.Amount,
		DateIncurred: incurred,
		Category:     req.Category,
		Vendor:       req.Vendor,
		Notes:        req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, record)
}

// GetExpense handles GET /companies/:company_id/expenses/:id
func (h *FinanceHandler) GetExpense(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	record, err := h.service.GetExpense(c.Request.Context(), principal, companyID, recordID(c, "id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, record)
}

// UpdateExpense handles PUT /companies/:company_id/expenses/:id
func (h *FinanceHandler) UpdateExpense(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req UpdateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	update := finance.ExpenseUpdate{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    textPatch(req.Category),
		Vendor:      textPatch(req.Vendor),
		Notes:       textPatch(req.Notes),
	}
	if req.DateIncurred != nil {
		incurred, err := parseDateField("date_incurred", *req.DateIncurred)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		update.DateIncurred = &incurred
	}

	record, err := h.service.UpdateExpense(c.Request.Context(), principal, companyID, recordID(c, "id"), update)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, record)
}

// DeleteExpense handles DELETE /companies/:company_id/expenses/:id
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	if err := h.service.DeleteExpense(c.Request.Context(), principal, companyID, recordID(c, "id")); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
