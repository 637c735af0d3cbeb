package report

import (
	"time"

	"github.com/google/uuid"
	appinvoicing "github.com/ledgerbook/backend/internal/application/invoicing"
	"github.com/ledgerbook/backend/internal/domain/report"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PeriodResponse is the inclusive range a report covers
type PeriodResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func toPeriod(r shared.DateRange) PeriodResponse {
	return PeriodResponse{StartDate: shared.FormatDate(r.Start), EndDate: shared.FormatDate(r.End)}
}

// ProfitAndLossResponse represents the profit and loss statement
type ProfitAndLossResponse struct {
	CompanyID            uuid.UUID       `json:"company_id"`
	Period               PeriodResponse  `json:"period"`
	TotalIncome          decimal.Decimal `json:"total_income"`
	TotalGeneralExpenses decimal.Decimal `json:"total_general_expenses"`
	TotalSalariesPaid    decimal.Decimal `json:"total_salaries_paid"`
	TotalExpenses        decimal.Decimal `json:"total_expenses"`
	ProfitOrLoss         decimal.Decimal `json:"profit_or_loss"`
}

func toProfitAndLossResponse(pl *report.ProfitAndLoss) *ProfitAndLossResponse {
	return &ProfitAndLossResponse{
		CompanyID:            pl.CompanyID,
		Period:               toPeriod(pl.Period),
		TotalIncome:          pl.TotalIncome,
		TotalGeneralExpenses: pl.TotalGeneralExpenses,
		TotalSalariesPaid:    pl.TotalSalariesPaid,
		TotalExpenses:        pl.TotalExpenses,
		ProfitOrLoss:         pl.ProfitOrLoss,
	}
}

// SalesReportResponse lists the invoices issued in a period
type SalesReportResponse struct {
	CompanyID      uuid.UUID                      `json:"company_id"`
	Period         PeriodResponse                 `json:"period"`
	TotalSales     decimal.Decimal                `json:"total_sales"`
	CancelledTotal decimal.Decimal                `json:"cancelled_total"`
	InvoiceCount   int                            `json:"invoice_count"`
	Invoices       []appinvoicing.InvoiceResponse `json:"invoices"`
}

func toSalesReportResponse(r *report.SalesReport) *SalesReportResponse {
	invoices := make([]appinvoicing.InvoiceResponse, 0, len(r.Invoices))
	for _, inv := range r.Invoices {
		invoices = append(invoices, appinvoicing.ToInvoiceResponse(inv))
	}
	return &SalesReportResponse{
		CompanyID:      r.CompanyID,
		Period:         toPeriod(r.Period),
		TotalSales:     r.TotalSales,
		CancelledTotal: r.CancelledTotal,
		InvoiceCount:   r.InvoiceCount,
		Invoices:       invoices,
	}
}

// CategoryLineResponse is one category bucket
type CategoryLineResponse struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int64           `json:"count"`
}

// BreakdownResponse is an income or expense breakdown by category
type BreakdownResponse struct {
	CompanyID  uuid.UUID              `json:"company_id"`
	Period     PeriodResponse         `json:"period"`
	Categories []CategoryLineResponse `json:"categories"`
	GrandTotal decimal.Decimal        `json:"grand_total"`
}

func toBreakdownResponse(b *report.CategoryBreakdown) *BreakdownResponse {
	lines := make([]CategoryLineResponse, 0, len(b.Categories))
	for _, l := range b.Categories {
		lines = append(lines, CategoryLineResponse{Category: l.Category, TotalAmount: l.TotalAmount, Count: l.Count})
	}
	return &BreakdownResponse{
		CompanyID:  b.CompanyID,
		Period:     toPeriod(b.Period),
		Categories: lines,
		GrandTotal: b.GrandTotal,
	}
}

// InventoryLineResponse is the valuation of one item
type InventoryLineResponse struct {
	ItemID                    uuid.UUID        `json:"item_id"`
	Name                      string           `json:"name"`
	SKU                       *string          `json:"sku"`
	QuantityOnHand            int64            `json:"quantity_on_hand"`
	SalePrice                 decimal.Decimal  `json:"sale_price"`
	PurchasePrice             *decimal.Decimal `json:"purchase_price"`
	TotalValueAtSalePrice     decimal.Decimal  `json:"total_value_at_sale_price"`
	TotalValueAtPurchasePrice decimal.Decimal  `json:"total_value_at_purchase_price"`
}

// InventorySnapshotResponse is the stock valuation report
type InventorySnapshotResponse struct {
	CompanyID                          uuid.UUID               `json:"company_id"`
	GeneratedAt                        time.Time               `json:"generated_at"`
	Items                              []InventoryLineResponse `json:"items"`
	TotalItemsInStock                  int64                   `json:"total_items_in_stock"`
	TotalInventoryValueAtSalePrice     decimal.Decimal         `json:"total_inventory_value_at_sale_price"`
	TotalInventoryValueAtPurchasePrice decimal.Decimal         `json:"total_inventory_value_at_purchase_price"`
}

func toInventorySnapshotResponse(s *report.InventorySnapshot) *InventorySnapshotResponse {
	items := make([]InventoryLineResponse, 0, len(s.Items))
	for _, l := range s.Items {
		items = append(items, InventoryLineResponse(l))
	}
	return &InventorySnapshotResponse{
		CompanyID:                          s.CompanyID,
		GeneratedAt:                        s.GeneratedAt,
		Items:                              items,
		TotalItemsInStock:                  s.TotalItemsInStock,
		TotalInventoryValueAtSalePrice:     s.TotalInventoryValueAtSalePrice,
		TotalInventoryValueAtPurchasePrice: s.TotalInventoryValueAtPurchasePrice,
	}
}

// PayrollLineResponse is one salary payment
type PayrollLineResponse struct {
	SalaryID     uuid.UUID       `json:"salary_id"`
	EmployeeID   uuid.UUID       `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	PaymentDate  string          `json:"payment_date"`
	GrossAmount  decimal.Decimal `json:"gross_amount"`
	Deductions   decimal.Decimal `json:"deductions"`
	NetAmount    decimal.Decimal `json:"net_amount"`
}

// PayrollSummaryResponse totals the salaries paid in a period
type PayrollSummaryResponse struct {
	CompanyID       uuid.UUID             `json:"company_id"`
	Period          PeriodResponse        `json:"period"`
	TotalGross      decimal.Decimal       `json:"total_gross"`
	TotalDeductions decimal.Decimal       `json:"total_deductions"`
	TotalNet        decimal.Decimal       `json:"total_net"`
	PaymentCount    int                   `json:"payment_count"`
	Payments        []PayrollLineResponse `json:"payments"`
}

func toPayrollSummaryResponse(s *report.PayrollSummary) *PayrollSummaryResponse {
	payments := make([]PayrollLineResponse, 0, len(s.Payments))
	for _, p := range s.Payments {
		payments = append(payments, PayrollLineResponse{
			SalaryID:     p.SalaryID,
			EmployeeID:   p.EmployeeID,
			EmployeeName: p.EmployeeName,
			PaymentDate:  shared.FormatDate(p.PaymentDate),
			GrossAmount:  p.GrossAmount,
			Deductions:   p.Deductions,
			NetAmount:    p.NetAmount,
		})
	}
	return &PayrollSummaryResponse{
		CompanyID:       s.CompanyID,
		Period:          toPeriod(s.Period),
		TotalGross:      s.TotalGross,
		TotalDeductions: s.TotalDeductions,
		TotalNet:        s.TotalNet,
		PaymentCount:    s.PaymentCount,
		Payments:        payments,
	}
}
