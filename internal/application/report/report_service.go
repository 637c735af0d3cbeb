package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	apptenancy "github.com/ledgerbook/backend/internal/application/tenancy"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/inventory"
	"github.com/ledgerbook/backend/internal/domain/invoicing"
	"github.com/ledgerbook/backend/internal/domain/report"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReportService provides application-level report operations
type ReportService struct {
	financeRepo report.FinanceReportRepository
	invoiceRepo invoicing.InvoiceRepository
	itemRepo    inventory.ItemRepository
	authorizer  *apptenancy.Authorizer
	logger      *zap.Logger
	now         func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	financeRepo report.FinanceReportRepository,
	invoiceRepo invoicing.InvoiceRepository,
	itemRepo inventory.ItemRepository,
	authorizer *apptenancy.Authorizer,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		financeRepo: financeRepo,
		invoiceRepo: invoiceRepo,
		itemRepo:    itemRepo,
		authorizer:  authorizer,
		logger:      logger,
		now:         time.Now,
	}
}

// ProfitAndLoss reports income against general expenses and gross salaries
func (s *ReportService) ProfitAndLoss(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, period shared.DateRange) (*ProfitAndLossResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "report.profit_and_loss"); err != nil {
		return nil, err
	}

	income, err := s.financeRepo.SumIncome(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	expenses, err := s.financeRepo.SumExpenses(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	salaries, err := s.financeRepo.SumSalariesGross(ctx, companyID, period)
	if err != nil {
		return nil, err
	}

	return toProfitAndLossResponse(report.NewProfitAndLoss(companyID, period, income, expenses, salaries)), nil
}

// Sales lists the invoices issued in the period with their total
func (s *ReportService) Sales(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, period shared.DateRange) (*SalesReportResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "report.sales"); err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, companyID, &period)
	if err != nil {
		return nil, err
	}
	return toSalesReportResponse(report.NewSalesReport(companyID, period, invoices)), nil
}

// IncomeBreakdown groups income in the period by category
func (s *ReportService) IncomeBreakdown(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, period shared.DateRange) (*BreakdownResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "report.income_breakdown"); err != nil {
		return nil, err
	}

	totals, err := s.financeRepo.IncomeByCategory(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	return toBreakdownResponse(report.NewCategoryBreakdown(companyID, period, totals)), nil
}

// ExpenseBreakdown groups expenses in the period by category
func (s *ReportService) ExpenseBreakdown(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, period shared.DateRange) (*BreakdownResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "report.expense_breakdown"); err != nil {
		return nil, err
	}

	totals, err := s.financeRepo.ExpensesByCategory(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	return toBreakdownResponse(report.NewCategoryBreakdown(companyID, period, totals)), nil
}

// InventorySnapshot values the company's current stock
func (s *ReportService) InventorySnapshot(ctx context.Context, principal *authz.Principal, companyID uuid.UUID) (*InventorySnapshotResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "report.inventory_snapshot"); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindAll(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return toInventorySnapshotResponse(report.NewInventorySnapshot(companyID, items, s.now().UTC())), nil
}

// Payroll summarizes the salaries paid in the period
func (s *ReportService) Payroll(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, period shared.DateRange) (*PayrollSummaryResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "report.payroll"); err != nil {
		return nil, err
	}

	lines, err := s.financeRepo.PayrollLines(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	return toPayrollSummaryResponse(report.NewPayrollSummary(companyID, period, lines)), nil
}
