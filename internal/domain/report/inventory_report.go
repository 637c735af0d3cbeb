package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// InventoryLine is the valuation of one stocked item
type InventoryLine struct {
	ItemID                    uuid.UUID
	Name                      string
	SKU                       *string
	QuantityOnHand            int64
	SalePrice                 decimal.Decimal
	PurchasePrice             *decimal.Decimal
	TotalValueAtSalePrice     decimal.Decimal
	TotalValueAtPurchasePrice decimal.Decimal
}

// InventorySnapshot is a point-in-time valuation of a company's stock
type InventorySnapshot struct {
	CompanyID                          uuid.UUID
	GeneratedAt                        time.Time
	Items                              []InventoryLine
	TotalItemsInStock                  int64
	TotalInventoryValueAtSalePrice     decimal.Decimal
	TotalInventoryValueAtPurchasePrice decimal.Decimal
}

// NewInventorySnapshot values every item at sale and purchase price
func NewInventorySnapshot(companyID uuid.UUID, items []*inventory.InventoryItem, at time.Time) *InventorySnapshot {
	s := &InventorySnapshot{
		CompanyID:                          companyID,
		GeneratedAt:                        at,
		Items:                              make([]InventoryLine, 0, len(items)),
		TotalInventoryValueAtSalePrice:     decimal.Zero,
		TotalInventoryValueAtPurchasePrice: decimal.Zero,
	}
	for _, it := range items {
		line := InventoryLine{
			ItemID:                    it.ID,
			Name:                      it.Name,
			SKU:                       it.SKU,
			QuantityOnHand:            it.QuantityOnHand,
			SalePrice:                 it.SalePrice,
			PurchasePrice:             it.PurchasePrice,
			TotalValueAtSalePrice:     it.ValueAtSalePrice(),
			TotalValueAtPurchasePrice: it.ValueAtPurchasePrice(),
		}
		s.Items = append(s.Items, line)
		s.TotalItemsInStock += it.QuantityOnHand
		s.TotalInventoryValueAtSalePrice = s.TotalInventoryValueAtSalePrice.Add(line.TotalValueAtSalePrice)
		s.TotalInventoryValueAtPurchasePrice = s.TotalInventoryValueAtPurchasePrice.Add(line.TotalValueAtPurchasePrice)
	}
	return s
}
