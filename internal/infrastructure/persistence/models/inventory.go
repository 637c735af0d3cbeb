package models

import (
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for the InventoryItem entity.
// (company_id, name) and (company_id, sku) are unique.
type InventoryItemModel struct {
	BaseModel
	CompanyID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_company_name,priority:1;uniqueIndex:idx_inventory_company_sku,priority:1"`
	Name           string           `gorm:"type:varchar(200);not null;uniqueIndex:idx_inventory_company_name,priority:2"`
	Description    *string          `gorm:"type:text"`
	SKU            *string          `gorm:"column:sku;type:varchar(100);uniqueIndex:idx_inventory_company_sku,priority:2"`
	PurchasePrice  *decimal.Decimal `gorm:"type:numeric(14,2)"`
	SalePrice      decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	QuantityOnHand int64            `gorm:"not null;default:0"`
	UnitOfMeasure  *string          `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem.
func (m *InventoryItemModel) ToDomain() *inventory.InventoryItem {
	item := &inventory.InventoryItem{
		Name:           m.Name,
		Description:    m.Description,
		SKU:            m.SKU,
		PurchasePrice:  m.PurchasePrice,
		SalePrice:      m.SalePrice,
		QuantityOnHand: m.QuantityOnHand,
		UnitOfMeasure:  m.UnitOfMeasure,
	}
	item.BaseEntity = m.BaseModel.toEntity()
	item.CompanyID = m.CompanyID
	return item
}

// InventoryItemModelFromDomain creates a persistence model from a domain InventoryItem.
func InventoryItemModelFromDomain(i *inventory.InventoryItem) *InventoryItemModel {
	return &InventoryItemModel{
		BaseModel:      baseFromEntity(i.BaseEntity),
		CompanyID:      i.CompanyID,
		Name:           i.Name,
		Description:    i.Description,
		SKU:            i.SKU,
		PurchasePrice:  i.PurchasePrice,
		SalePrice:      i.SalePrice,
		QuantityOnHand: i.QuantityOnHand,
		UnitOfMeasure:  i.UnitOfMeasure,
	}
}
