package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/inventory"
	"github.com/ledgerbook/backend/internal/domain/invoicing"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func period(t *testing.T) shared.DateRange {
	t.Helper()
	r, err := shared.NewDateRange("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	return r
}

func TestNewProfitAndLoss(t *testing.T) {
	pl := NewProfitAndLoss(uuid.New(), period(t), dec("1000"), dec("300"), dec("400"))

	assert.True(t, dec("700").Equal(pl.TotalExpenses))
	assert.True(t, dec("300").Equal(pl.ProfitOrLoss))
}

func TestNewProfitAndLoss_Loss(t *testing.T) {
	pl := NewProfitAndLoss(uuid.New(), period(t), dec("100"), dec("300"), dec("0"))

	assert.True(t, dec("-200").Equal(pl.ProfitOrLoss))
}

func TestNewCategoryBreakdown(t *testing.T) {
	totals := []CategoryTotal{
		{Category: ptr("Sales"), TotalAmount: dec("500"), Count: 2},
		{Category: nil, TotalAmount: dec("100"), Count: 1},
		{Category: ptr(""), TotalAmount: dec("50"), Count: 1},
		{Category: ptr("Consulting"), TotalAmount: dec("250"), Count: 3},
	}

	b := NewCategoryBreakdown(uuid.New(), period(t), totals)

	require.Len(t, b.Categories, 3)
	assert.Equal(t, "Consulting", b.Categories[0].Category)
	assert.Equal(t, "Sales", b.Categories[1].Category)
	assert.Equal(t, UncategorizedLabel, b.Categories[2].Category)
	assert.True(t, dec("150").Equal(b.Categories[2].TotalAmount))
	assert.Equal(t, int64(2), b.Categories[2].Count)
	assert.True(t, dec("900").Equal(b.GrandTotal))
}

func TestNewCategoryBreakdown_Empty(t *testing.T) {
	b := NewCategoryBreakdown(uuid.New(), period(t), nil)

	assert.Empty(t, b.Categories)
	assert.True(t, b.GrandTotal.IsZero())
}

func TestNewPayrollSummary(t *testing.T) {
	payments := []PayrollLine{
		{GrossAmount: dec("2000"), Deductions: dec("150"), NetAmount: dec("1850")},
		{GrossAmount: dec("1000"), Deductions: dec("0"), NetAmount: dec("1000")},
	}

	s := NewPayrollSummary(uuid.New(), period(t), payments)

	assert.Equal(t, 2, s.PaymentCount)
	assert.True(t, dec("3000").Equal(s.TotalGross))
	assert.True(t, dec("150").Equal(s.TotalDeductions))
	assert.True(t, dec("2850").Equal(s.TotalNet))
}

func TestNewInventorySnapshot(t *testing.T) {
	companyID := uuid.New()
	a, err := inventory.NewInventoryItem(companyID, inventory.ItemInput{
		Name: "A", SalePrice: dec("10"), PurchasePrice: ptr(dec("6")), QuantityOnHand: 3,
	})
	require.NoError(t, err)
	b, err := inventory.NewInventoryItem(companyID, inventory.ItemInput{
		Name: "B", SalePrice: dec("2.5"), QuantityOnHand: 4,
	})
	require.NoError(t, err)

	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewInventorySnapshot(companyID, []*inventory.InventoryItem{a, b}, at)

	require.Len(t, s.Items, 2)
	assert.Equal(t, int64(7), s.TotalItemsInStock)
	assert.True(t, dec("40").Equal(s.TotalInventoryValueAtSalePrice))
	assert.True(t, dec("18").Equal(s.TotalInventoryValueAtPurchasePrice))
	assert.True(t, s.Items[1].TotalValueAtPurchasePrice.IsZero())
	assert.Equal(t, at, s.GeneratedAt)
}

func TestNewSalesReport(t *testing.T) {
	companyID := uuid.New()
	mk := func(status invoicing.InvoiceStatus, price string) *invoicing.Invoice {
		inv, err := invoicing.NewInvoice(companyID, uuid.New(), invoicing.InvoiceInput{
			InvoiceNumber: "INV-1",
			CustomerName:  "Acme",
			Status:        &status,
			Items:         []invoicing.LineInput{{ItemDescription: "x", Quantity: 1, UnitPrice: dec(price)}},
		})
		require.NoError(t, err)
		return inv
	}

	r := NewSalesReport(companyID, period(t), []*invoicing.Invoice{
		mk(invoicing.InvoiceStatusPaid, "100"),
		mk(invoicing.InvoiceStatusSent, "50"),
		mk(invoicing.InvoiceStatusCancelled, "999"),
	})

	assert.Equal(t, 3, r.InvoiceCount)
	assert.True(t, dec("1149").Equal(r.TotalSales), r.TotalSales.String())
	assert.True(t, dec("999").Equal(r.CancelledTotal), r.CancelledTotal.String())
	assert.True(t, dec("150").Equal(r.TotalSales.Sub(r.CancelledTotal)))
}
