package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Salary is one payment to an employee. NetAmount is always GrossAmount - Deductions.
type Salary struct {
	shared.CompanyEntity
	EmployeeID         uuid.UUID
	PaymentDate        time.Time
	GrossAmount        decimal.Decimal
	Deductions         decimal.Decimal
	NetAmount          decimal.Decimal
	PaymentPeriodStart *time.Time
	PaymentPeriodEnd   *time.Time
	Notes              *string
	RecordedByUserID   uuid.UUID
}

// SalaryInput carries the fields used to record a salary payment
type SalaryInput struct {
	PaymentDate        time.Time
	GrossAmount        decimal.Decimal
	Deductions         *decimal.Decimal
	PaymentPeriodStart *time.Time
	PaymentPeriodEnd   *time.Time
	Notes              *string
}

// NewSalary records a payment to employee, stamped with the recording user
func NewSalary(employee *Employee, recordedBy uuid.UUID, in SalaryInput) (*Salary, error) {
	if employee == nil {
		return nil, shared.NewValidationError("employee is required")
	}
	if in.PaymentDate.IsZero() {
		return nil, shared.NewValidationError("payment_date is required")
	}
	deductions := decimal.Zero
	if in.Deductions != nil {
		deductions = *in.Deductions
	}
	if err := validateAmounts(in.GrossAmount, deductions); err != nil {
		return nil, err
	}
	if err := validatePeriod(in.PaymentPeriodStart, in.PaymentPeriodEnd); err != nil {
		return nil, err
	}

	s := &Salary{
		CompanyEntity:      shared.NewCompanyEntity(employee.CompanyID),
		EmployeeID:         employee.ID,
		PaymentDate:        in.PaymentDate,
		GrossAmount:        in.GrossAmount,
		Deductions:         deductions,
		PaymentPeriodStart: in.PaymentPeriodStart,
		PaymentPeriodEnd:   in.PaymentPeriodEnd,
		Notes:              shared.OptionalString(in.Notes),
		RecordedByUserID:   recordedBy,
	}
	s.RecalculateNet()
	return s, nil
}

// SalaryUpdate holds a partial update of a salary record
type SalaryUpdate struct {
	PaymentDate        *time.Time
	GrossAmount        *decimal.Decimal
	Deductions         *decimal.Decimal
	PaymentPeriodStart *time.Time
	ClearPeriodStart   bool
	PaymentPeriodEnd   *time.Time
	ClearPeriodEnd     bool
	Notes              *string
}

// Apply mutates the salary and recomputes the net amount
func (s *Salary) Apply(u SalaryUpdate) error {
	gross, deductions := s.GrossAmount, s.Deductions
	if u.GrossAmount != nil {
		gross = *u.GrossAmount
	}
	if u.Deductions != nil {
		deductions = *u.Deductions
	}
	if err := validateAmounts(gross, deductions); err != nil {
		return err
	}

	start, end := s.PaymentPeriodStart, s.PaymentPeriodEnd
	if u.ClearPeriodStart {
		start = nil
	} else if u.PaymentPeriodStart != nil {
		start = u.PaymentPeriodStart
	}
	if u.ClearPeriodEnd {
		end = nil
	} else if u.PaymentPeriodEnd != nil {
		end = u.PaymentPeriodEnd
	}
	if err := validatePeriod(start, end); err != nil {
		return err
	}

	if u.PaymentDate != nil {
		s.PaymentDate = *u.PaymentDate
	}
	if u.Notes != nil {
		s.Notes = shared.OptionalString(u.Notes)
	}
	s.GrossAmount, s.Deductions = gross, deductions
	s.PaymentPeriodStart, s.PaymentPeriodEnd = start, end
	s.RecalculateNet()
	s.Touch()
	return nil
}

// RecalculateNet derives NetAmount from gross and deductions
func (s *Salary) RecalculateNet() decimal.Decimal {
	s.NetAmount = s.GrossAmount.Sub(s.Deductions)
	return s.NetAmount
}

func validateAmounts(gross, deductions decimal.Decimal) error {
	if gross.IsNegative() || deductions.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Gross amount and deductions cannot be negative")
	}
	if err := shared.CheckMoney("gross_amount", gross); err != nil {
		return err
	}
	return shared.CheckMoney("deductions", deductions)
}

func validatePeriod(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return shared.NewValidationError("payment_period_start must be on or before payment_period_end")
	}
	return nil
}
