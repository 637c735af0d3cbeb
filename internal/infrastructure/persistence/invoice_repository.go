package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/invoicing"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements invoicing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice with its items within the company
func (r *GormInvoiceRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*invoicing.Invoice, error) {
	db := r.db.WithContext(ctx)

	var model models.InvoiceModel
	if err := db.Scopes(inCompany(companyID)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "invoice")
	}
	if err := db.Where("invoice_id = ?", model.ID).Order("position ASC").Find(&model.Items).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists invoices with their items, newest issue date first
func (r *GormInvoiceRepository) FindAll(ctx context.Context, companyID uuid.UUID, period *shared.DateRange) ([]*invoicing.Invoice, error) {
	db := r.db.WithContext(ctx)

	var rows []models.InvoiceModel
	if err := db.Scopes(inCompany(companyID), inPeriod("issue_date", period)).
		Order("issue_date DESC").Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*invoicing.Invoice{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	var items []models.InvoiceItemModel
	if err := db.Where("invoice_id IN ?", ids).Order("position ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	byInvoice := make(map[uuid.UUID][]models.InvoiceItemModel, len(rows))
	for _, it := range items {
		byInvoice[it.InvoiceID] = append(byInvoice[it.InvoiceID], it)
	}

	out := make([]*invoicing.Invoice, len(rows))
	for i := range rows {
		rows[i].Items = byInvoice[rows[i].ID]
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByNumber checks if the company already has an invoice with this number
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, companyID uuid.UUID, number string) (bool, error) {
	return exists(ctx, r.db, &models.InvoiceModel{}, nil, "company_id = ? AND invoice_number = ?", companyID, number)
}

// Save writes the header and replaces every item of the invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", model.ID).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
	return translateWrite(err, "Invoice number '"+invoice.InvoiceNumber+"' already exists")
}

// Delete removes an invoice and its items
func (r *GormInvoiceRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.InvoiceModel{}).Scopes(inCompany(companyID)).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.NewNotFoundError("invoice not found")
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		return deleteScoped(tx, &models.InvoiceModel{}, companyID, id, "invoice")
	})
}

var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)
