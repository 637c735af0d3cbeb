package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// EmployeeModel is the persistence model for the Employee entity.
type EmployeeModel struct {
	BaseModel
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_employee_company_email,priority:1"`
	FirstName   string     `gorm:"type:varchar(100);not null"`
	LastName    string     `gorm:"type:varchar(100);not null"`
	Email       *string    `gorm:"type:varchar(120);uniqueIndex:idx_employee_company_email,priority:2"`
	PhoneNumber *string    `gorm:"type:varchar(30)"`
	Position    *string    `gorm:"type:varchar(100)"`
	HireDate    *time.Time `gorm:"type:date"`
	IsActive    bool       `gorm:"not null;default:true"`
	UserID      *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee.
func (m *EmployeeModel) ToDomain() *payroll.Employee {
	e := &payroll.Employee{
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Position:    m.Position,
		HireDate:    utcDatePtr(m.HireDate),
		IsActive:    m.IsActive,
		UserID:      m.UserID,
	}
	e.BaseEntity = m.BaseModel.toEntity()
	e.CompanyID = m.CompanyID
	return e
}

// EmployeeModelFromDomain creates a persistence model from a domain Employee.
func EmployeeModelFromDomain(e *payroll.Employee) *EmployeeModel {
	return &EmployeeModel{
		BaseModel:   baseFromEntity(e.BaseEntity),
		CompanyID:   e.CompanyID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		PhoneNumber: e.PhoneNumber,
		Position:    e.Position,
		HireDate:    utcDatePtr(e.HireDate),
		IsActive:    e.IsActive,
		UserID:      e.UserID,
	}
}

// SalaryModel is the persistence model for the Salary entity.
type SalaryModel struct {
	CompanyScopedModel
	EmployeeID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentDate        time.Time       `gorm:"type:date;not null;index"`
	GrossAmount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Deductions         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetAmount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentPeriodStart *time.Time      `gorm:"type:date"`
	PaymentPeriodEnd   *time.Time      `gorm:"type:date"`
	Notes              *string         `gorm:"type:text"`
	RecordedByUserID   uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (SalaryModel) TableName() string {
	return "salaries"
}

// ToDomain converts the persistence model to a domain Salary.
func (m *SalaryModel) ToDomain() *payroll.Salary {
	return &payroll.Salary{
		CompanyEntity:      m.CompanyScopedModel.toEntity(),
		EmployeeID:         m.EmployeeID,
		PaymentDate:        utcDate(m.PaymentDate),
		GrossAmount:        m.GrossAmount,
		Deductions:         m.Deductions,
		NetAmount:          m.NetAmount,
		PaymentPeriodStart: utcDatePtr(m.PaymentPeriodStart),
		PaymentPeriodEnd:   utcDatePtr(m.PaymentPeriodEnd),
		Notes:              m.Notes,
		RecordedByUserID:   m.RecordedByUserID,
	}
}

// SalaryModelFromDomain creates a persistence model from a domain Salary.
func SalaryModelFromDomain(s *payroll.Salary) *SalaryModel {
	return &SalaryModel{
		CompanyScopedModel: scopedFromEntity(s.CompanyEntity),
		EmployeeID:         s.EmployeeID,
		PaymentDate:        utcDate(s.PaymentDate),
		GrossAmount:        s.GrossAmount,
		Deductions:         s.Deductions,
		NetAmount:          s.NetAmount,
		PaymentPeriodStart: utcDatePtr(s.PaymentPeriodStart),
		PaymentPeriodEnd:   utcDatePtr(s.PaymentPeriodEnd),
		Notes:              s.Notes,
		RecordedByUserID:   s.RecordedByUserID,
	}
}
