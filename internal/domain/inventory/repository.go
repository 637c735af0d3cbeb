package inventory

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines the interface for inventory item persistence
type ItemRepository interface {
	// FindByID finds an item within the company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*InventoryItem, error)

	// FindAll lists the company's items ordered by name
	FindAll(ctx context.Context, companyID uuid.UUID) ([]*InventoryItem, error)

	// ExistsByName checks if another item of the company has this name
	ExistsByName(ctx context.Context, companyID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)

	// ExistsBySKU checks if another item of the company has this SKU
	ExistsBySKU(ctx context.Context, companyID uuid.UUID, sku string, excludeID *uuid.UUID) (bool, error)

	// Save inserts or updates an item
	Save(ctx context.Context, item *InventoryItem) error

	// Delete removes an item; invoice lines referencing it keep their text and lose the link
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
