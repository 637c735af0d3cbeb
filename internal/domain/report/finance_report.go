package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UncategorizedLabel is the bucket for records without a category
const UncategorizedLabel = "Uncategorized"

// ProfitAndLoss is a read model for the profit and loss statement.
// Salaries are counted at gross and reported apart from general expenses.
type ProfitAndLoss struct {
	CompanyID            uuid.UUID
	Period               shared.DateRange
	TotalIncome          decimal.Decimal
	TotalGeneralExpenses decimal.Decimal
	TotalSalariesPaid    decimal.Decimal
	TotalExpenses        decimal.Decimal
	ProfitOrLoss         decimal.Decimal
}

// NewProfitAndLoss derives totals from the three sums
func NewProfitAndLoss(companyID uuid.UUID, period shared.DateRange, income, generalExpenses, salariesGross decimal.Decimal) *ProfitAndLoss {
	totalExpenses := generalExpenses.Add(salariesGross)
	return &ProfitAndLoss{
		CompanyID:            companyID,
		Period:               period,
		TotalIncome:          income,
		TotalGeneralExpenses: generalExpenses,
		TotalSalariesPaid:    salariesGross,
		TotalExpenses:        totalExpenses,
		ProfitOrLoss:         income.Sub(totalExpenses),
	}
}

// CategoryTotal is the sum of one category. A nil Category is a record without one.
type CategoryTotal struct {
	Category    *string
	TotalAmount decimal.Decimal
	Count       int64
}

// CategoryLine is one bucket of a breakdown report
type CategoryLine struct {
	Category    string
	TotalAmount decimal.Decimal
	Count       int64
}

// CategoryBreakdown is an income or expense report grouped by category
type CategoryBreakdown struct {
	CompanyID  uuid.UUID
	Period     shared.DateRange
	Categories []CategoryLine
	GrandTotal decimal.Decimal
}

// NewCategoryBreakdown merges null and blank categories into UncategorizedLabel,
// orders buckets by label and sums the grand total.
func NewCategoryBreakdown(companyID uuid.UUID, period shared.DateRange, totals []CategoryTotal) *CategoryBreakdown {
	buckets := make(map[string]*CategoryLine)
	order := make([]string, 0, len(totals))
	grand := decimal.Zero

	for _, t := range totals {
		label := UncategorizedLabel
		if c := shared.OptionalString(t.Category); c != nil {
			label = *c
		}
		b, ok := buckets[label]
		if !ok {
			b = &CategoryLine{Category: label, TotalAmount: decimal.Zero}
			buckets[label] = b
			order = append(order, label)
		}
		b.TotalAmount = b.TotalAmount.Add(t.TotalAmount)
		b.Count += t.Count
		grand = grand.Add(t.TotalAmount)
	}

	sort.Strings(order)
	lines := make([]CategoryLine, 0, len(order))
	for _, label := range order {
		lines = append(lines, *buckets[label])
	}

	return &CategoryBreakdown{
		CompanyID:  companyID,
		Period:     period,
		Categories: lines,
		GrandTotal: grand,
	}
}

// PayrollLine is one salary payment in the payroll summary
type PayrollLine struct {
	SalaryID     uuid.UUID
	EmployeeID   uuid.UUID
	EmployeeName string
	PaymentDate  time.Time
	GrossAmount  decimal.Decimal
	Deductions   decimal.Decimal
	NetAmount    decimal.Decimal
}

// PayrollSummary totals the salaries paid in a period
type PayrollSummary struct {
	CompanyID       uuid.UUID
	Period          shared.DateRange
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal
	PaymentCount    int
	Payments        []PayrollLine
}

// NewPayrollSummary sums the given payments
func NewPayrollSummary(companyID uuid.UUID, period shared.DateRange, payments []PayrollLine) *PayrollSummary {
	s := &PayrollSummary{
		CompanyID:       companyID,
		Period:          period,
		TotalGross:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
		PaymentCount:    len(payments),
		Payments:        payments,
	}
	for _, p := range payments {
		s.TotalGross = s.TotalGross.Add(p.GrossAmount)
		s.TotalDeductions = s.TotalDeductions.Add(p.Deductions)
		s.TotalNet = s.TotalNet.Add(p.NetAmount)
	}
	return s
}

// FinanceReportRepository defines the aggregate queries behind the finance reports.
// Every query is scoped to one company and an inclusive date range.
type FinanceReportRepository interface {
	// SumIncome sums income amounts received in the period
	SumIncome(ctx context.Context, companyID uuid.UUID, period shared.DateRange) (decimal.Decimal, error)

	// SumExpenses sums general expense amounts incurred in the period
	SumExpenses(ctx context.Context, companyID uuid.UUID, period shared.DateRange) (decimal.Decimal, error)

	// SumSalariesGross sums gross salary amounts paid in the period
	SumSalariesGross(ctx context.Context, companyID uuid.UUID, period shared.DateRange) (decimal.Decimal, error)

	// IncomeByCategory groups income in the period by raw category
	IncomeByCategory(ctx context.Context, companyID uuid.UUID, period shared.DateRange) ([]CategoryTotal, error)

	// ExpensesByCategory groups expenses in the period by raw category
	ExpensesByCategory(ctx context.Context, companyID uuid.UUID, period shared.DateRange) ([]CategoryTotal, error)

	// PayrollLines lists salaries paid in the period to the company's employees, oldest first
	PayrollLines(ctx context.Context, companyID uuid.UUID, period shared.DateRange) ([]PayrollLine, error)
}
