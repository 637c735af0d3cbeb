package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appreport "github.com/ledgerbook/backend/internal/application/report"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReportHandler serves the read-only company reports
type ReportHandler struct {
	BaseHandler
	service *appreport.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *appreport.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{BaseHandler: NewBaseHandler(log), service: service}
}

// RegisterRoutes mounts /companies/:company_id/reports
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/companies/:company_id/reports")
	g.GET("/profit-loss", h.periodReport(func(ctx context.Context, p *authz.Principal, id uuid.UUID, r shared.DateRange) (any, error) {
		return h.service.ProfitAndLoss(ctx, p, id, r)
	}))
	g.GET("/sales", h.periodReport(func(ctx context.Context, p *authz.Principal, id uuid.UUID, r shared.DateRange) (any, error) {
		return h.service.Sales(ctx, p, id, r)
	}))
	g.GET("/income-breakdown", h.periodReport(func(ctx context.Context, p *authz.Principal, id uuid.UUID, r shared.DateRange) (any, error) {
		return h.service.IncomeBreakdown(ctx, p, id, r)
	}))
	g.GET("/expense-breakdown", h.periodReport(func(ctx context.Context, p *authz.Principal, id uuid.UUID, r shared.DateRange) (any, error) {
		return h.service.ExpenseBreakdown(ctx, p, id, r)
	}))
	g.GET("/payroll", h.periodReport(func(ctx context.Context, p *authz.Principal, id uuid.UUID, r shared.DateRange) (any, error) {
		return h.service.Payroll(ctx, p, id, r)
	}))
	g.GET("/inventory", h.InventorySnapshot)
}

type periodReportFunc func(ctx context.Context, p *authz.Principal, companyID uuid.UUID, period shared.DateRange) (any, error)

// periodReport adapts a report that needs both start_date and end_date
func (h *ReportHandler) periodReport(run periodReportFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, companyID, ok := h.scope(c)
		if !ok {
			return
		}
		period, ok := h.requiredPeriod(c)
		if !ok {
			return
		}
		result, err := run(c.Request.Context(), principal, companyID, period)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, result)
	}
}

// InventorySnapshot handles GET /companies/:company_id/reports/inventory
func (h *ReportHandler) InventorySnapshot(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	snapshot, err := h.service.InventorySnapshot(c.Request.Context(), principal, companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, snapshot)
}
