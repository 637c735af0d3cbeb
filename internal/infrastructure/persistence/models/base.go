package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (m *BaseModel) toEntity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func baseFromEntity(e shared.BaseEntity) BaseModel {
	return BaseModel{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

// CompanyScopedModel adds the tenant column to BaseModel
type CompanyScopedModel struct {
	BaseModel
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (m *CompanyScopedModel) toEntity() shared.CompanyEntity {
	return shared.CompanyEntity{BaseEntity: m.BaseModel.toEntity(), CompanyID: m.CompanyID}
}

func scopedFromEntity(e shared.CompanyEntity) CompanyScopedModel {
	return CompanyScopedModel{BaseModel: baseFromEntity(e.BaseEntity), CompanyID: e.CompanyID}
}

// AllModels lists every persistence model, parents before children
func AllModels() []any {
	return []any{
		&UserModel{},
		&CompanyModel{},
		&MembershipModel{},
		&EmployeeModel{},
		&SalaryModel{},
		&IncomeModel{},
		&ExpenseModel{},
		&InventoryItemModel{},
		&InvoiceModel{},
		&InvoiceItemModel{},
	}
}

func utcDate(t time.Time) time.Time {
	return shared.TruncateDate(t.UTC())
}

func utcDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := utcDate(*t)
	return &d
}
