package inventory

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNewInventoryItem(t *testing.T) {
	companyID := uuid.New()

	t.Run("creates item", func(t *testing.T) {
		item, err := NewInventoryItem(companyID, ItemInput{
			Name:           "Widget",
			SKU:            ptr("X1"),
			SalePrice:      decimal.RequireFromString("9.99"),
			PurchasePrice:  ptr(decimal.RequireFromString("4.50")),
			QuantityOnHand: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, companyID, item.CompanyID)
		assert.Equal(t, "X1", *item.SKU)
		assert.True(t, decimal.RequireFromString("99.9").Equal(item.ValueAtSalePrice()))
		assert.True(t, decimal.RequireFromString("45").Equal(item.ValueAtPurchasePrice()))
	})

	t.Run("purchase value is zero without purchase price", func(t *testing.T) {
		item, err := NewInventoryItem(companyID, ItemInput{Name: "Gadget", SalePrice: decimal.NewFromInt(1), QuantityOnHand: 3})

		require.NoError(t, err)
		assert.True(t, item.ValueAtPurchasePrice().IsZero())
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewInventoryItem(companyID, ItemInput{Name: "Bad", SalePrice: decimal.NewFromInt(-1)})
		assert.Error(t, err)
	})

	t.Run("rejects sub-cent prices", func(t *testing.T) {
		_, err := NewInventoryItem(companyID, ItemInput{Name: "Bad", SalePrice: decimal.RequireFromString("9.999")})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = NewInventoryItem(companyID, ItemInput{Name: "Bad", SalePrice: decimal.NewFromInt(1), PurchasePrice: ptr(decimal.RequireFromString("0.001"))})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects sku wider than the column", func(t *testing.T) {
		_, err := NewInventoryItem(companyID, ItemInput{Name: "Bad", SKU: ptr(strings.Repeat("s", 101)), SalePrice: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewInventoryItem(companyID, ItemInput{Name: "Bad", SalePrice: decimal.NewFromInt(1), QuantityOnHand: -1})
		assert.Error(t, err)
	})

	t.Run("requires name", func(t *testing.T) {
		_, err := NewInventoryItem(companyID, ItemInput{SalePrice: decimal.NewFromInt(1)})
		assert.Error(t, err)
	})
}

func TestInventoryItem_Apply(t *testing.T) {
	item, err := NewInventoryItem(uuid.New(), ItemInput{Name: "Widget", SalePrice: decimal.NewFromInt(5), QuantityOnHand: 2})
	require.NoError(t, err)

	require.NoError(t, item.Apply(ItemUpdate{QuantityOnHand: ptr(int64(7)), SKU: ptr("W-7")}))
	assert.Equal(t, int64(7), item.QuantityOnHand)
	assert.Equal(t, "W-7", *item.SKU)
	assert.Equal(t, "Widget", item.Name)

	assert.Error(t, item.Apply(ItemUpdate{QuantityOnHand: ptr(int64(-3))}))
	assert.Equal(t, int64(7), item.QuantityOnHand)
}
