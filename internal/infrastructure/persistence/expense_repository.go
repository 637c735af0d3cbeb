package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/finance"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense within the company
func (r *GormExpenseRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).Scopes(inCompany(companyID)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "expense")
	}
	return model.ToDomain(), nil
}

// FindAll lists expenses of the company, newest first
func (r *GormExpenseRepository) FindAll(ctx context.Context, companyID uuid.UUID, period *shared.DateRange) ([]*finance.Expense, error) {
	var rows []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Scopes(inCompany(companyID), inPeriod("date_incurred", period)).
		Order("date_incurred DESC").Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*finance.Expense, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Save inserts or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return r.db.WithContext(ctx).Save(models.ExpenseModelFromDomain(expense)).Error
}

// Delete removes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return deleteScoped(r.db.WithContext(ctx), &models.ExpenseModel{}, companyID, id, "expense")
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
