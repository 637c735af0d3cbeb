package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/payroll"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EmployeeResponse is the employee representation returned to callers
type EmployeeResponse struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       *string    `json:"email"`
	PhoneNumber *string    `json:"phone_number"`
	Position    *string    `json:"position"`
	HireDate    *string    `json:"hire_date"`
	IsActive    bool       `json:"is_active"`
	UserID      *uuid.UUID `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToEmployeeResponse converts a domain employee
func ToEmployeeResponse(e *payroll.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		PhoneNumber: e.PhoneNumber,
		Position:    e.Position,
		HireDate:    shared.FormatOptionalDate(e.HireDate),
		IsActive:    e.IsActive,
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// SalaryResponse is the salary representation returned to callers
type SalaryResponse struct {
	ID                 uuid.UUID       `json:"id"`
	CompanyID          uuid.UUID       `json:"company_id"`
	EmployeeID         uuid.UUID       `json:"employee_id"`
	PaymentDate        string          `json:"payment_date"`
	GrossAmount        decimal.Decimal `json:"gross_amount"`
	Deductions         decimal.Decimal `json:"deductions"`
	NetAmount          decimal.Decimal `json:"net_amount"`
	PaymentPeriodStart *string         `json:"payment_period_start"`
	PaymentPeriodEnd   *string         `json:"payment_period_end"`
	Notes              *string         `json:"notes"`
	RecordedByUserID   uuid.UUID       `json:"recorded_by_user_id"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToSalaryResponse converts a domain salary
func ToSalaryResponse(s *payroll.Salary) SalaryResponse {
	return SalaryResponse{
		ID:                 s.ID,
		CompanyID:          s.CompanyID,
		EmployeeID:         s.EmployeeID,
		PaymentDate:        shared.FormatDate(s.PaymentDate),
		GrossAmount:        s.GrossAmount,
		Deductions:         s.Deductions,
		NetAmount:          s.NetAmount,
		PaymentPeriodStart: shared.FormatOptionalDate(s.PaymentPeriodStart),
		PaymentPeriodEnd:   shared.FormatOptionalDate(s.PaymentPeriodEnd),
		Notes:              s.Notes,
		RecordedByUserID:   s.RecordedByUserID,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// PromoteInput creates a platform account for an employee
type PromoteInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

// PromoteResult is the created account and the linked employee
type PromoteResult struct {
	UserID   uuid.UUID        `json:"user_id"`
	Username string           `json:"username"`
	Email    string           `json:"email"`
	Role     string           `json:"role"`
	Employee EmployeeResponse `json:"employee"`
}
