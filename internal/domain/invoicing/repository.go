package invoicing

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
)

// InvoiceRepository defines the interface for invoice persistence.
// Invoices are loaded and saved together with their items.
type InvoiceRepository interface {
	// FindByID finds an invoice with its items within the company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Invoice, error)

	// FindAll lists invoices with items ordered by issue date, newest first; period may be nil
	FindAll(ctx context.Context, companyID uuid.UUID, period *shared.DateRange) ([]*Invoice, error)

	// ExistsByNumber checks if the company already has an invoice with this number
	ExistsByNumber(ctx context.Context, companyID uuid.UUID, number string) (bool, error)

	// Save inserts or updates the invoice header and replaces its items
	Save(ctx context.Context, invoice *Invoice) error

	// Delete removes an invoice and its items
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
