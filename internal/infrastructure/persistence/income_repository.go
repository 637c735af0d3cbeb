package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/finance"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormIncomeRepository implements finance.IncomeRepository using GORM
type GormIncomeRepository struct {
	db *gorm.DB
}

// NewGormIncomeRepository creates a new GormIncomeRepository
func NewGormIncomeRepository(db *gorm.DB) *GormIncomeRepository {
	return &GormIncomeRepository{db: db}
}

// FindByID finds an income record within the company
func (r *GormIncomeRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*finance.Income, error) {
	var model models.IncomeModel
	if err := r.db.WithContext(ctx).Scopes(inCompany(companyID)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "income record")
	}
	return model.ToDomain(), nil
}

// FindAll lists income of the company, newest first
func (r *GormIncomeRepository) FindAll(ctx context.Context, companyID uuid.UUID, period *shared.DateRange) ([]*finance.Income, error) {
	var rows []models.IncomeModel
	if err := r.db.WithContext(ctx).
		Scopes(inCompany(companyID), inPeriod("date_received", period)).
		Order("date_received DESC").Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*finance.Income, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Save inserts or updates an income record
func (r *GormIncomeRepository) Save(ctx context.Context, income *finance.Income) error {
	return r.db.WithContext(ctx).Save(models.IncomeModelFromDomain(income)).Error
}

// Delete removes an income record
func (r *GormIncomeRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return deleteScoped(r.db.WithContext(ctx), &models.IncomeModel{}, companyID, id, "income record")
}

var _ finance.IncomeRepository = (*GormIncomeRepository)(nil)
