package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID             uuid.UUID        `json:"id"`
	CompanyID      uuid.UUID        `json:"company_id"`
	Name           string           `json:"name"`
	Description    *string          `json:"description"`
	SKU            *string          `json:"sku"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price"`
	SalePrice      decimal.Decimal  `json:"sale_price"`
	QuantityOnHand int64            `json:"quantity_on_hand"`
	UnitOfMeasure  *string          `json:"unit_of_measure"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToItemResponse converts a domain item
func ToItemResponse(i *inventory.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:             i.ID,
		CompanyID:      i.CompanyID,
		Name:           i.Name,
		Description:    i.Description,
		SKU:            i.SKU,
		PurchasePrice:  i.PurchasePrice,
		SalePrice:      i.SalePrice,
		QuantityOnHand: i.QuantityOnHand,
		UnitOfMeasure:  i.UnitOfMeasure,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
