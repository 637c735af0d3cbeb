package inventory

import (
	"context"

	"github.com/google/uuid"
	apptenancy "github.com/ledgerbook/backend/internal/application/tenancy"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/inventory"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// InventoryService handles inventory item operations
type InventoryService struct {
	itemRepo   inventory.ItemRepository
	authorizer *apptenancy.Authorizer
	logger     *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(itemRepo inventory.ItemRepository, authorizer *apptenancy.Authorizer, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		itemRepo:   itemRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// Create adds an item to the company's stock
func (s *InventoryService) Create(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, input inventory.ItemInput) (*ItemResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.WritePolicy, "inventory.create"); err != nil {
		return nil, err
	}

	item, err := inventory.NewInventoryItem(companyID, input)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, item, nil); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Inventory item created",
		zap.String("company_id", companyID.String()),
		zap.String("item_id", item.ID.String()))

	resp := ToItemResponse(item)
	return &resp, nil
}

// Get returns one item
func (s *InventoryService) Get(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID) (*ItemResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "inventory.get"); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// List returns the company's items ordered by name
func (s *InventoryService) List(ctx context.Context, principal *authz.Principal, companyID uuid.UUID) ([]ItemResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "inventory.list"); err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindAll(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = ToItemResponse(it)
	}
	return out, nil
}

// Update applies a partial update; uniqueness is re-checked only for changed fields
func (s *InventoryService) Update(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID, update inventory.ItemUpdate) (*ItemResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.WritePolicy, "inventory.update"); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	before := *item

	if err := item.Apply(update); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, item, &before); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// Delete removes an item; invoice lines keep their description
func (s *InventoryService) Delete(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID) error {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.AdminPolicy, "inventory.delete"); err != nil {
		return err
	}
	if err := s.itemRepo.Delete(ctx, companyID, id); err != nil {
		return err
	}

	logger.Enrich(ctx, s.logger).Info("Inventory item deleted",
		zap.String("company_id", companyID.String()),
		zap.String("item_id", id.String()))
	return nil
}

// checkUnique verifies name and SKU within the company. before is the stored
// state on update; unchanged fields are skipped.
func (s *InventoryService) checkUnique(ctx context.Context, item *inventory.InventoryItem, before *inventory.InventoryItem) error {
	var exclude *uuid.UUID
	if before != nil {
		exclude = &item.ID
	}

	if before == nil || before.Name != item.Name {
		taken, err := s.itemRepo.ExistsByName(ctx, item.CompanyID, item.Name, exclude)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewConflictError("Inventory item with name '" + item.Name + "' already exists")
		}
	}

	if item.SKU != nil && (before == nil || shared.StringValue(before.SKU) != *item.SKU) {
		taken, err := s.itemRepo.ExistsBySKU(ctx, item.CompanyID, *item.SKU, exclude)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewConflictError("Inventory item with SKU '" + *item.SKU + "' already exists")
		}
	}
	return nil
}
