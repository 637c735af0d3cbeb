package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Column widths of the finance tables
const (
	MaxDescriptionLen = 255
	MaxCategoryLen    = 100
	MaxVendorLen      = 150
)

// Income is money received by a company
type Income struct {
	shared.CompanyEntity
	Description  string
	Amount       decimal.Decimal
	DateReceived time.Time
	Category     *string
	Notes        *string
	UserID       uuid.UUID
}

// IncomeInput carries the fields used to record income
type IncomeInput struct {
	Description  string
	Amount       decimal.Decimal
	DateReceived time.Time
	Category     *string
	Notes        *string
}

// NewIncome records income for companyID entered by userID
func NewIncome(companyID, userID uuid.UUID, in IncomeInput) (*Income, error) {
	description, err := shared.RequireText("description", in.Description, MaxDescriptionLen)
	if err != nil {
		return nil, err
	}
	category, err := shared.OptionalText("category", in.Category, MaxCategoryLen)
	if err != nil {
		return nil, err
	}
	if err := validatePositiveAmount(in.Amount); err != nil {
		return nil, err
	}
	if in.DateReceived.IsZero() {
		return nil, shared.NewValidationError("date_received is required")
	}

	return &Income{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Description:   description,
		Amount:        in.Amount,
		DateReceived:  in.DateReceived,
		Category:      category,
		Notes:         shared.OptionalString(in.Notes),
		UserID:        userID,
	}, nil
}

// IncomeUpdate holds a partial update of an income record
type IncomeUpdate struct {
	Description  *string
	Amount       *decimal.Decimal
	DateReceived *time.Time
	Category     *string
	Notes        *string
}

// Apply mutates the record with the fields present in u
func (i *Income) Apply(u IncomeUpdate) error {
	description := i.Description
	if u.Description != nil {
		v, err := shared.RequireText("description", *u.Description, MaxDescriptionLen)
		if err != nil {
			return err
		}
		description = v
	}
	category := i.Category
	if u.Category != nil {
		v, err := shared.OptionalText("category", u.Category, MaxCategoryLen)
		if err != nil {
			return err
		}
		category = v
	}
	if u.Amount != nil {
		if err := validatePositiveAmount(*u.Amount); err != nil {
			return err
		}
		i.Amount = *u.Amount
	}
	i.Description = description
	i.Category = category
	if u.DateReceived != nil {
		i.DateReceived = *u.DateReceived
	}
	if u.Notes != nil {
		i.Notes = shared.OptionalString(u.Notes)
	}
	i.Touch()
	return nil
}

func validatePositiveAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	return shared.CheckMoney("amount", amount)
}
