package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/payroll"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements payroll.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee within the company
func (r *GormEmployeeRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*payroll.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).Scopes(inCompany(companyID)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "employee")
	}
	return model.ToDomain(), nil
}

// FindAll lists the company's employees by last name, then first name
func (r *GormEmployeeRepository) FindAll(ctx context.Context, companyID uuid.UUID) ([]*payroll.Employee, error) {
	var rows []models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Scopes(inCompany(companyID)).
		Order("last_name ASC").Order("first_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*payroll.Employee, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByEmail checks if another employee of the company uses email
func (r *GormEmployeeRepository) ExistsByEmail(ctx context.Context, companyID uuid.UUID, email string, excludeID *uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.EmployeeModel{}, excludeID,
		"company_id = ? AND LOWER(email) = ?", companyID, strings.ToLower(strings.TrimSpace(email)))
}

// ExistsByUserID checks if any other employee is linked to userID
func (r *GormEmployeeRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.EmployeeModel{}, excludeID, "user_id = ?", userID)
}

// Save inserts or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *payroll.Employee) error {
	err := r.db.WithContext(ctx).Save(models.EmployeeModelFromDomain(employee)).Error
	return translateWrite(err, "employee email or user link already in use")
}

// Delete removes the employee together with its salaries
func (r *GormEmployeeRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(inCompany(companyID)).
			Where("employee_id = ?", id).
			Delete(&models.SalaryModel{}).Error; err != nil {
			return err
		}
		return deleteScoped(tx, &models.EmployeeModel{}, companyID, id, "employee")
	})
}

// UnlinkUser clears the user link of any employee pointing to userID
func (r *GormEmployeeRepository) UnlinkUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.EmployeeModel{}).
		Where("user_id = ?", userID).
		Update("user_id", nil).Error
}

var _ payroll.EmployeeRepository = (*GormEmployeeRepository)(nil)
