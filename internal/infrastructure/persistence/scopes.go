package persistence

import (
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// inCompany restricts a query to rows of one company
func inCompany(companyID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// inPeriod restricts column to the inclusive period. A nil period or a zero
// bound leaves that side open.
func inPeriod(column string, period *shared.DateRange) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if period == nil {
			return db
		}
		if !period.Start.IsZero() {
			db = db.Where(column+" >= ?", shared.TruncateDate(period.Start))
		}
		if !period.End.IsZero() {
			db = db.Where(column+" <= ?", shared.TruncateDate(period.End))
		}
		return db
	}
}

// deleteScoped deletes one row of model owned by companyID, reporting a miss as NOT_FOUND
func deleteScoped(db *gorm.DB, model any, companyID, id uuid.UUID, what string) error {
	result := db.Scopes(inCompany(companyID)).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(what + " not found")
	}
	return nil
}
