package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/inventory"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item within the company
func (r *GormItemRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).Scopes(inCompany(companyID)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "inventory item")
	}
	return model.ToDomain(), nil
}

// FindAll lists the company's items ordered by name
func (r *GormItemRepository) FindAll(ctx context.Context, companyID uuid.UUID) ([]*inventory.InventoryItem, error) {
	var rows []models.InventoryItemModel
	if err := r.db.WithContext(ctx).Scopes(inCompany(companyID)).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*inventory.InventoryItem, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByName checks if another item of the company has this name
func (r *GormItemRepository) ExistsByName(ctx context.Context, companyID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.InventoryItemModel{}, excludeID, "company_id = ? AND name = ?", companyID, name)
}

// ExistsBySKU checks if another item of the company has this SKU
func (r *GormItemRepository) ExistsBySKU(ctx context.Context, companyID uuid.UUID, sku string, excludeID *uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.InventoryItemModel{}, excludeID, "company_id = ? AND sku = ?", companyID, sku)
}

// Save inserts or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	err := r.db.WithContext(ctx).Save(models.InventoryItemModelFromDomain(item)).Error
	return translateWrite(err, "inventory item name or SKU already exists")
}

// Delete removes an item. Invoice lines that referenced it keep their text.
func (r *GormItemRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.InvoiceItemModel{}).
			Where("item_id = ?", id).
			Update("item_id", nil).Error; err != nil {
			return err
		}
		return deleteScoped(tx, &models.InventoryItemModel{}, companyID, id, "inventory item")
	})
}

var _ inventory.ItemRepository = (*GormItemRepository)(nil)
