package inventory

import (
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked product of a company.
// Name and SKU are unique within the company.
type InventoryItem struct {
	shared.CompanyEntity
	Name           string
	Description    *string
	SKU            *string
	PurchasePrice  *decimal.Decimal
	SalePrice      decimal.Decimal
	QuantityOnHand int64
	UnitOfMeasure  *string
}

// ItemInput carries the fields used to create an inventory item
type ItemInput struct {
	Name           string
	Description    *string
	SKU            *string
	PurchasePrice  *decimal.Decimal
	SalePrice      decimal.Decimal
	QuantityOnHand int64
	UnitOfMeasure  *string
}

// NewInventoryItem creates an item for companyID
func NewInventoryItem(companyID uuid.UUID, in ItemInput) (*InventoryItem, error) {
	name, err := shared.RequireText("name", in.Name, 200)
	if err != nil {
		return nil, err
	}
	sku, err := shared.OptionalText("sku", in.SKU, 100)
	if err != nil {
		return nil, err
	}
	unit, err := shared.OptionalText("unit_of_measure", in.UnitOfMeasure, 50)
	if err != nil {
		return nil, err
	}
	if err := validatePrices(in.PurchasePrice, in.SalePrice); err != nil {
		return nil, err
	}
	if err := validateQuantity(in.QuantityOnHand); err != nil {
		return nil, err
	}

	return &InventoryItem{
		CompanyEntity:  shared.NewCompanyEntity(companyID),
		Name:           name,
		Description:    shared.OptionalString(in.Description),
		SKU:            sku,
		PurchasePrice:  in.PurchasePrice,
		SalePrice:      in.SalePrice,
		QuantityOnHand: in.QuantityOnHand,
		UnitOfMeasure:  unit,
	}, nil
}

// ItemUpdate holds a partial update of an inventory item
type ItemUpdate struct {
	Name               *string
	Description        *string
	SKU                *string
	PurchasePrice      *decimal.Decimal
	ClearPurchasePrice bool
	SalePrice          *decimal.Decimal
	QuantityOnHand     *int64
	UnitOfMeasure      *string
}

// Apply mutates the item with the fields present in u
func (i *InventoryItem) Apply(u ItemUpdate) error {
	name := i.Name
	if u.Name != nil {
		v, err := shared.RequireText("name", *u.Name, 200)
		if err != nil {
			return err
		}
		name = v
	}
	sku, unit := i.SKU, i.UnitOfMeasure
	if u.SKU != nil {
		v, err := shared.OptionalText("sku", u.SKU, 100)
		if err != nil {
			return err
		}
		sku = v
	}
	if u.UnitOfMeasure != nil {
		v, err := shared.OptionalText("unit_of_measure", u.UnitOfMeasure, 50)
		if err != nil {
			return err
		}
		unit = v
	}
	purchase, sale := i.PurchasePrice, i.SalePrice
	if u.ClearPurchasePrice {
		purchase = nil
	} else if u.PurchasePrice != nil {
		purchase = u.PurchasePrice
	}
	if u.SalePrice != nil {
		sale = *u.SalePrice
	}
	if err := validatePrices(purchase, sale); err != nil {
		return err
	}
	qty := i.QuantityOnHand
	if u.QuantityOnHand != nil {
		qty = *u.QuantityOnHand
	}
	if err := validateQuantity(qty); err != nil {
		return err
	}

	i.Name = name
	i.PurchasePrice, i.SalePrice = purchase, sale
	i.QuantityOnHand = qty
	i.SKU, i.UnitOfMeasure = sku, unit
	if u.Description != nil {
		i.Description = shared.OptionalString(u.Description)
	}
	i.Touch()
	return nil
}

// ValueAtSalePrice returns quantity on hand times sale price
func (i *InventoryItem) ValueAtSalePrice() decimal.Decimal {
	return i.SalePrice.Mul(decimal.NewFromInt(i.QuantityOnHand))
}

// ValueAtPurchasePrice returns quantity on hand times purchase price, or zero when unknown
func (i *InventoryItem) ValueAtPurchasePrice() decimal.Decimal {
	if i.PurchasePrice == nil {
		return decimal.Zero
	}
	return i.PurchasePrice.Mul(decimal.NewFromInt(i.QuantityOnHand))
}

func validatePrices(purchase *decimal.Decimal, sale decimal.Decimal) error {
	if sale.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "sale_price cannot be negative")
	}
	if purchase != nil && purchase.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "purchase_price cannot be negative")
	}
	if err := shared.CheckMoney("sale_price", sale); err != nil {
		return err
	}
	if purchase != nil {
		return shared.CheckMoney("purchase_price", *purchase)
	}
	return nil
}

func validateQuantity(qty int64) error {
	if qty < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "quantity_on_hand cannot be negative")
	}
	return nil
}
