package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
)

// IncomeRepository defines the interface for income persistence
type IncomeRepository interface {
	// FindByID finds an income record within the company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Income, error)

	// FindAll lists income ordered by date received, newest first; period may be nil
	FindAll(ctx context.Context, companyID uuid.UUID, period *shared.DateRange) ([]*Income, error)

	// Save inserts or updates an income record
	Save(ctx context.Context, income *Income) error

	// Delete removes an income record
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense within the company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Expense, error)

	// FindAll lists expenses ordered by date incurred, newest first; period may be nil
	FindAll(ctx context.Context, companyID uuid.UUID, period *shared.DateRange) ([]*Expense, error)

	// Save inserts or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// Delete removes an expense
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
