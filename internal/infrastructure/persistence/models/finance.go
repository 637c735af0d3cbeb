package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// IncomeModel is the persistence model for the Income entity.
type IncomeModel struct {
	CompanyScopedModel
	Description  string          `gorm:"type:varchar(255);not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DateReceived time.Time       `gorm:"type:date;not null;index"`
	Category     *string         `gorm:"type:varchar(100);index"`
	Notes        *string         `gorm:"type:text"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (IncomeModel) TableName() string {
	return "income"
}

// ToDomain converts the persistence model to a domain Income.
func (m *IncomeModel) ToDomain() *finance.Income {
	return &finance.Income{
		CompanyEntity: m.CompanyScopedModel.toEntity(),
		Description:   m.Description,
		Amount:        m.Amount,
		DateReceived:  utcDate(m.DateReceived),
		Category:      m.Category,
		Notes:         m.Notes,
		UserID:        m.UserID,
	}
}

// IncomeModelFromDomain creates a persistence model from a domain Income.
func IncomeModelFromDomain(i *finance.Income) *IncomeModel {
	return &IncomeModel{
		CompanyScopedModel: scopedFromEntity(i.CompanyEntity),
		Description:        i.Description,
		Amount:             i.Amount,
		DateReceived:       utcDate(i.DateReceived),
		Category:           i.Category,
		Notes:              i.Notes,
		UserID:             i.UserID,
	}
}

// ExpenseModel is the persistence model for the Expense entity.
type ExpenseModel struct {
	CompanyScopedModel
	Description  string          `gorm:"type:varchar(255);not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DateIncurred time.Time       `gorm:"type:date;not null;index"`
	Category     *string         `gorm:"type:varchar(100);index"`
	Vendor       *string         `gorm:"type:varchar(150)"`
	Notes        *string         `gorm:"type:text"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		CompanyEntity: m.CompanyScopedModel.toEntity(),
		Description:   m.Description,
		Amount:        m.Amount,
		DateIncurred:  utcDate(m.DateIncurred),
		Category:      m.Category,
		Vendor:        m.Vendor,
		Notes:         m.Notes,
		UserID:        m.UserID,
	}
}

// ExpenseModelFromDomain creates a persistence model from a domain Expense.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	return &ExpenseModel{
		CompanyScopedModel: scopedFromEntity(e.CompanyEntity),
		Description:        e.Description,
		Amount:             e.Amount,
		DateIncurred:       utcDate(e.DateIncurred),
		Category:           e.Category,
		Vendor:             e.Vendor,
		Notes:              e.Notes,
		UserID:             e.UserID,
	}
}
