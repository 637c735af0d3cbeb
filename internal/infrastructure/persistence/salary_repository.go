package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/payroll"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSalaryRepository implements payroll.SalaryRepository using GORM
type GormSalaryRepository struct {
	db *gorm.DB
}

// NewGormSalaryRepository creates a new GormSalaryRepository
func NewGormSalaryRepository(db *gorm.DB) *GormSalaryRepository {
	return &GormSalaryRepository{db: db}
}

// FindByID finds a salary of employeeID within the company
func (r *GormSalaryRepository) FindByID(ctx context.Context, companyID, employeeID, id uuid.UUID) (*payroll.Salary, error) {
	var model models.SalaryModel
	if err := r.db.WithContext(ctx).
		Scopes(inCompany(companyID)).
		Where("employee_id = ?", employeeID).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "salary")
	}
	return model.ToDomain(), nil
}

// FindByEmployee lists salaries of an employee, newest payment first
func (r *GormSalaryRepository) FindByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]*payroll.Salary, error) {
	var rows []models.SalaryModel
	if err := r.db.WithContext(ctx).
		Scopes(inCompany(companyID)).
		Where("employee_id = ?", employeeID).
		Order("payment_date DESC").Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*payroll.Salary, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Save inserts or updates a salary
func (r *GormSalaryRepository) Save(ctx context.Context, salary *payroll.Salary) error {
	return r.db.WithContext(ctx).Save(models.SalaryModelFromDomain(salary)).Error
}

// Delete removes a salary
func (r *GormSalaryRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return deleteScoped(r.db.WithContext(ctx), &models.SalaryModel{}, companyID, id, "salary")
}

var _ payroll.SalaryRepository = (*GormSalaryRepository)(nil)
