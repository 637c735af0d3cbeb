package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Expense is money spent by a company (salaries are tracked separately)
type Expense struct {
	shared.CompanyEntity
	Description  string
	Amount       decimal.Decimal
	DateIncurred time.Time
	Category     *string
	Vendor       *string
	Notes        *string
	UserID       uuid.UUID
}

// ExpenseInput carries the fields used to record an expense
type ExpenseInput struct {
	Description  string
	Amount       decimal.Decimal
	DateIncurred time.Time
	Category     *string
	Vendor       *string
	Notes        *string
}

// NewExpense records an expense for companyID entered by userID
func NewExpense(companyID, userID uuid.UUID, in ExpenseInput) (*Expense, error) {
	description, err := shared.RequireText("description", in.Description, MaxDescriptionLen)
	if err != nil {
		return nil, err
	}
	category, err := shared.OptionalText("category", in.Category, MaxCategoryLen)
	if err != nil {
		return nil, err
	}
	vendor, err := shared.OptionalText("vendor", in.Vendor, MaxVendorLen)
	if err != nil {
		return nil, err
	}
	if err := validatePositiveAmount(in.Amount); err != nil {
		return nil, err
	}
	if in.DateIncurred.IsZero() {
		return nil, shared.NewValidationError("date_incurred is required")
	}

	return &Expense{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Description:   description,
		Amount:        in.Amount,
		DateIncurred:  in.DateIncurred,
		Category:      category,
		Vendor:        vendor,
		Notes:         shared.OptionalString(in.Notes),
		UserID:        userID,
	}, nil
}

// ExpenseUpdate holds a partial update of an expense record
type ExpenseUpdate struct {
	Description  *string
	Amount       *decimal.Decimal
	DateIncurred *time.Time
	Category     *string
	Vendor       *string
	Notes        *string
}

// Apply mutates the record with the fields present in u
func (e *Expense) Apply(u ExpenseUpdate) error {
	description := e.Description
	if u.Description != nil {
		v, err := shared.RequireText("description", *u.Description, MaxDescriptionLen)
		if err != nil {
			return err
		}
		description = v
	}
	category, vendor := e.Category, e.Vendor
	if u.Category != nil {
		v, err := shared.OptionalText("category", u.Category, MaxCategoryLen)
		if err != nil {
			return err
		}
		category = v
	}
	if u.Vendor != nil {
		v, err := shared.OptionalText("vendor", u.Vendor, MaxVendorLen)
		if err != nil {
			return err
		}
		vendor = v
	}
	if u.Amount != nil {
		if err := validatePositiveAmount(*u.Amount); err != nil {
			return err
		}
		e.Amount = *u.Amount
	}
	e.Description = description
	e.Category, e.Vendor = category, vendor
	if u.DateIncurred != nil {
		e.DateIncurred = *u.DateIncurred
	}
	if u.Notes != nil {
		e.Notes = shared.OptionalString(u.Notes)
	}
	e.Touch()
	return nil
}
