package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCompanyRepository implements tenancy.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "company")
	}
	return model.ToDomain(), nil
}

// FindAll returns every company ordered by name
func (r *GormCompanyRepository) FindAll(ctx context.Context) ([]*tenancy.Company, error) {
	var rows []models.CompanyModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return companiesToDomain(rows), nil
}

// FindAccessibleByUser returns companies owned by the user or where it holds a membership
func (r *GormCompanyRepository) FindAccessibleByUser(ctx context.Context, userID uuid.UUID) ([]*tenancy.Company, error) {
	memberOf := r.db.Model(&models.MembershipModel{}).Select("company_id").Where("user_id = ?", userID)

	var rows []models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return companiesToDomain(rows), nil
}

// ExistsByName checks if a company name is taken by anyone but excludeID
func (r *GormCompanyRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.CompanyModel{}, excludeID, "name = ?", name)
}

// CountOwnedBy counts companies owned by userID
func (r *GormCompanyRepository) CountOwnedBy(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CompanyModel{}).Where("owner_id = ?", userID).Count(&count).Error
	return count, err
}

// Save inserts or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *tenancy.Company) error {
	err := r.db.WithContext(ctx).Save(models.CompanyModelFromDomain(company)).Error
	return translateWrite(err, "Company name '"+company.Name+"' already exists")
}

// Delete removes the company and everything scoped to it in one transaction.
// Children go first so the foreign keys never dangle mid-transaction.
func (r *GormCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoices := tx.Model(&models.InvoiceModel{}).Select("id").Where("company_id = ?", id)
		steps := []struct {
			model any
			query string
			arg   any
		}{
			{&models.InvoiceItemModel{}, "invoice_id IN (?)", invoices},
			{&models.InvoiceModel{}, "company_id = ?", id},
			{&models.SalaryModel{}, "company_id = ?", id},
			{&models.EmployeeModel{}, "company_id = ?", id},
			{&models.IncomeModel{}, "company_id = ?", id},
			{&models.ExpenseModel{}, "company_id = ?", id},
			{&models.InventoryItemModel{}, "company_id = ?", id},
			{&models.MembershipModel{}, "company_id = ?", id},
		}
		for _, s := range steps {
			if err := tx.Where(s.query, s.arg).Delete(s.model).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.CompanyModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("company not found")
		}
		return nil
	})
}

func companiesToDomain(rows []models.CompanyModel) []*tenancy.Company {
	out := make([]*tenancy.Company, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}

var _ tenancy.CompanyRepository = (*GormCompanyRepository)(nil)
