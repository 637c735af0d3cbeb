package invoicing

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
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

func sampleInput() InvoiceInput {
	return InvoiceInput{
		InvoiceNumber: "INV-20250101-AAAA",
		CustomerName:  "Globex",
		Items: []LineInput{
			{ItemDescription: "Widget", Quantity: 2, UnitPrice: dec("10.0")},
			{ItemDescription: "Service", Quantity: 1, UnitPrice: dec("5.0")},
		},
	}
}

func TestNewInvoice(t *testing.T) {
	companyID, userID := uuid.New(), uuid.New()

	t.Run("sums line totals", func(t *testing.T) {
		inv, err := NewInvoice(companyID, userID, sampleInput())

		require.NoError(t, err)
		assert.True(t, dec("25").Equal(inv.TotalAmount), inv.TotalAmount.String())
		require.Len(t, inv.Items, 2)
		assert.True(t, dec("20").Equal(inv.Items[0].LineTotal))
		assert.Equal(t, 1, inv.Items[0].Position)
		assert.Equal(t, 2, inv.Items[1].Position)
		assert.Equal(t, inv.ID, inv.Items[1].InvoiceID)
	})

	t.Run("defaults to draft issued today", func(t *testing.T) {
		inv, err := NewInvoice(companyID, userID, sampleInput())

		require.NoError(t, err)
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		y, m, d := time.Now().UTC().Date()
		assert.Equal(t, time.Date(y, m, d, 0, 0, 0, 0, time.UTC), inv.IssueDate)
	})

	t.Run("one invalid line rejects the invoice", func(t *testing.T) {
		in := sampleInput()
		in.Items = append(in.Items, LineInput{ItemDescription: "Broken", Quantity: 0, UnitPrice: dec("1")})

		inv, err := NewInvoice(companyID, userID, in)
		assert.Error(t, err)
		assert.Nil(t, inv)
		assert.Contains(t, err.Error(), "items[2]")
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		in := sampleInput()
		in.Items[0].UnitPrice = dec("-1")

		_, err := NewInvoice(companyID, userID, in)
		assert.Error(t, err)
	})

	t.Run("rejects sub-cent unit price", func(t *testing.T) {
		in := sampleInput()
		in.Items[1].UnitPrice = dec("4.995")

		_, err := NewInvoice(companyID, userID, in)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Contains(t, err.Error(), "items[1]")
	})

	t.Run("rejects total beyond the column range", func(t *testing.T) {
		in := sampleInput()
		in.Items = []LineInput{{ItemDescription: "Bulk", Quantity: 1_000_000, UnitPrice: dec("1000000.00")}}

		_, err := NewInvoice(companyID, userID, in)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects text wider than the columns", func(t *testing.T) {
		long := func(n int) string { return strings.Repeat("x", n) }

		in := sampleInput()
		in.InvoiceNumber = long(MaxInvoiceNumberLen + 1)
		_, err := NewInvoice(companyID, userID, in)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		in = sampleInput()
		in.CustomerName = long(MaxCustomerNameLen + 1)
		_, err = NewInvoice(companyID, userID, in)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		in = sampleInput()
		in.Items[0].ItemDescription = long(MaxItemDescriptionLen + 1)
		_, err = NewInvoice(companyID, userID, in)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		in = sampleInput()
		in.CustomerName = long(MaxCustomerNameLen)
		in.InvoiceNumber = long(MaxInvoiceNumberLen)
		_, err = NewInvoice(companyID, userID, in)
		assert.NoError(t, err)
	})

	t.Run("rejects missing items", func(t *testing.T) {
		in := sampleInput()
		in.Items = nil

		_, err := NewInvoice(companyID, userID, in)
		assert.Error(t, err)
	})

	t.Run("rejects due date before issue date", func(t *testing.T) {
		in := sampleInput()
		in.IssueDate = ptr(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
		in.DueDate = ptr(time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC))

		_, err := NewInvoice(companyID, userID, in)
		assert.Error(t, err)
	})
}

func TestInvoice_Apply(t *testing.T) {
	newInvoice := func(t *testing.T) *Invoice {
		inv, err := NewInvoice(uuid.New(), uuid.New(), sampleInput())
		require.NoError(t, err)
		return inv
	}

	t.Run("replacing items recomputes total", func(t *testing.T) {
		inv := newInvoice(t)
		err := inv.Apply(InvoiceUpdate{
			ReplaceItems: true,
			Items:        []LineInput{{ItemDescription: "Bulk", Quantity: 3, UnitPrice: dec("7.5")}},
		})

		require.NoError(t, err)
		require.Len(t, inv.Items, 1)
		assert.True(t, dec("22.5").Equal(inv.TotalAmount))
	})

	t.Run("invalid replacement leaves lines intact", func(t *testing.T) {
		inv := newInvoice(t)
		err := inv.Apply(InvoiceUpdate{
			CustomerName: ptr("Initech"),
			ReplaceItems: true,
			Items: []LineInput{
				{ItemDescription: "ok", Quantity: 1, UnitPrice: dec("1")},
				{ItemDescription: "", Quantity: 1, UnitPrice: dec("1")},
			},
		})

		assert.Error(t, err)
		assert.Equal(t, "Globex", inv.CustomerName)
		assert.Len(t, inv.Items, 2)
		assert.True(t, dec("25").Equal(inv.TotalAmount))
	})

	t.Run("header update keeps total consistent", func(t *testing.T) {
		inv := newInvoice(t)
		inv.TotalAmount = dec("999")
		require.NoError(t, inv.Apply(InvoiceUpdate{Status: ptr(InvoiceStatusSent)}))

		assert.Equal(t, InvoiceStatusSent, inv.Status)
		assert.True(t, dec("25").Equal(inv.TotalAmount))
	})

	t.Run("recalculation is idempotent", func(t *testing.T) {
		inv := newInvoice(t)
		assert.True(t, inv.RecalculateTotal().Equal(inv.RecalculateTotal()))
	})
}

func TestLinkedItemIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ids := LinkedItemIDs([]LineInput{{ItemID: &a}, {}, {ItemID: &b}, {ItemID: &a}})
	assert.Equal(t, []uuid.UUID{a, b}, ids)
}

func TestParseInvoiceStatus(t *testing.T) {
	s, err := ParseInvoiceStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, InvoiceStatusPaid, s)

	_, err = ParseInvoiceStatus("refunded")
	assert.Error(t, err)
}

func TestNumberGenerator(t *testing.T) {
	fixed := func() time.Time { return time.Date(2025, 1, 1, 15, 0, 0, 0, time.UTC) }

	t.Run("formats INV-YYYYMMDD-XXXX", func(t *testing.T) {
		g := NewNumberGeneratorWithSource(bytes.NewReader([]byte{0, 1, 2, 35}), fixed)
		n, err := g.Next()

		require.NoError(t, err)
		assert.Equal(t, "INV-20250101-ABC9", n)
		assert.True(t, IsGeneratedNumber(n))
	})

	t.Run("crypto generator yields valid shape", func(t *testing.T) {
		g := NewNumberGenerator()
		for i := 0; i < 20; i++ {
			n, err := g.Next()
			require.NoError(t, err)
			assert.True(t, IsGeneratedNumber(n), n)
		}
	})

	t.Run("exhausted source errors", func(t *testing.T) {
		g := NewNumberGeneratorWithSource(bytes.NewReader([]byte{1}), fixed)
		_, err := g.Next()
		assert.Error(t, err)
	})
}
