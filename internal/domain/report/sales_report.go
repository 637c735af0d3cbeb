package report

import (
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/invoicing"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SalesReport lists invoices issued in a period. TotalSales covers every listed
// invoice; CancelledTotal is the part of it carried by cancelled invoices.
type SalesReport struct {
	CompanyID      uuid.UUID
	Period         shared.DateRange
	TotalSales     decimal.Decimal
	CancelledTotal decimal.Decimal
	InvoiceCount   int
	Invoices       []*invoicing.Invoice
}

// NewSalesReport totals the given invoices
func NewSalesReport(companyID uuid.UUID, period shared.DateRange, invoices []*invoicing.Invoice) *SalesReport {
	r := &SalesReport{
		CompanyID:      companyID,
		Period:         period,
		TotalSales:     decimal.Zero,
		CancelledTotal: decimal.Zero,
		InvoiceCount:   len(invoices),
		Invoices:       invoices,
	}
	for _, inv := range invoices {
		r.TotalSales = r.TotalSales.Add(inv.TotalAmount)
		if inv.IsCancelled() {
			r.CancelledTotal = r.CancelledTotal.Add(inv.TotalAmount)
		}
	}
	return r
}
