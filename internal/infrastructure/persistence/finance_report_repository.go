package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/report"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormFinanceReportRepository implements report.FinanceReportRepository using GORM
type GormFinanceReportRepository struct {
	db *gorm.DB
}

// NewGormFinanceReportRepository creates a new GormFinanceReportRepository
func NewGormFinanceReportRepository(db *gorm.DB) *GormFinanceReportRepository {
	return &GormFinanceReportRepository{db: db}
}

type sumRow struct {
	Total decimal.Decimal
}

type categoryRow struct {
	Category    *string
	TotalAmount decimal.Decimal
	Count       int64
}

type payrollRow struct {
	SalaryID    uuid.UUID
	EmployeeID  uuid.UUID
	FirstName   string
	LastName    string
	PaymentDate time.Time
	GrossAmount decimal.Decimal
	Deductions  decimal.Decimal
	NetAmount   decimal.Decimal
}

// SumIncome sums income received in the period
func (r *GormFinanceReportRepository) SumIncome(ctx context.Context, companyID uuid.UUID, period shared.DateRange) (decimal.Decimal, error) {
	return r.sum(ctx, "income", "amount", "date_received", companyID, period)
}

// SumExpenses sums expenses incurred in the period
func (r *GormFinanceReportRepository) SumExpenses(ctx context.Context, companyID uuid.UUID, period shared.DateRange) (decimal.Decimal, error) {
	return r.sum(ctx, "expenses", "amount", "date_incurred", companyID, period)
}

// SumSalariesGross sums gross salaries paid in the period
func (r *GormFinanceReportRepository) SumSalariesGross(ctx context.Context, companyID uuid.UUID, period shared.DateRange) (decimal.Decimal, error) {
	return r.sum(ctx, "salaries", "gross_amount", "payment_date", companyID, period)
}

func (r *GormFinanceReportRepository) sum(ctx context.Context, table, column, dateColumn string, companyID uuid.UUID, period shared.DateRange) (decimal.Decimal, error) {
	var row sumRow
	if err := r.db.WithContext(ctx).Table(table).
		Select("COALESCE(SUM("+column+"), 0) AS total").
		Scopes(inCompany(companyID), inPeriod(dateColumn, &period)).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total.Round(2), nil
}

// IncomeByCategory groups income in the period by category
func (r *GormFinanceReportRepository) IncomeByCategory(ctx context.Context, companyID uuid.UUID, period shared.DateRange) ([]report.CategoryTotal, error) {
	return r.byCategory(ctx, "income", "date_received", companyID, period)
}

// ExpensesByCategory groups expenses in the period by category
func (r *GormFinanceReportRepository) ExpensesByCategory(ctx context.Context, companyID uuid.UUID, period shared.DateRange) ([]report.CategoryTotal, error) {
	return r.byCategory(ctx, "expenses", "date_incurred", companyID, period)
}

func (r *GormFinanceReportRepository) byCategory(ctx context.Context, table, dateColumn string, companyID uuid.UUID, period shared.DateRange) ([]report.CategoryTotal, error) {
	var rows []categoryRow
	if err := r.db.WithContext(ctx).Table(table).
		Select("category, COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS count").
		Scopes(inCompany(companyID), inPeriod(dateColumn, &period)).
		Group("category").
		Order("category ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]report.CategoryTotal, len(rows))
	for i, row := range rows {
		out[i] = report.CategoryTotal{
			Category:    row.Category,
			TotalAmount: row.TotalAmount.Round(2),
			Count:       row.Count,
		}
	}
	return out, nil
}

// PayrollLines lists salaries paid in the period to employees of the company, oldest first
func (r *GormFinanceReportRepository) PayrollLines(ctx context.Context, companyID uuid.UUID, period shared.DateRange) ([]report.PayrollLine, error) {
	var rows []payrollRow
	if err := r.db.WithContext(ctx).Table("salaries s").
		Select("s.id AS salary_id, s.employee_id, e.first_name, e.last_name, s.payment_date, s.gross_amount, s.deductions, s.net_amount").
		Joins("JOIN employees e ON e.id = s.employee_id").
		Where("e.company_id = ?", companyID).
		Scopes(inPeriod("s.payment_date", &period)).
		Order("s.payment_date ASC").Order("e.last_name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]report.PayrollLine, len(rows))
	for i, row := range rows {
		out[i] = report.PayrollLine{
			SalaryID:     row.SalaryID,
			EmployeeID:   row.EmployeeID,
			EmployeeName: strings.TrimSpace(row.FirstName + " " + row.LastName),
			PaymentDate:  shared.TruncateDate(row.PaymentDate),
			GrossAmount:  row.GrossAmount.Round(2),
			Deductions:   row.Deductions.Round(2),
			NetAmount:    row.NetAmount.Round(2),
		}
	}
	return out, nil
}

var _ report.FinanceReportRepository = (*GormFinanceReportRepository)(nil)
