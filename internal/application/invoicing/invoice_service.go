package invoicing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	apptenancy "github.com/ledgerbook/backend/internal/application/tenancy"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/inventory"
	"github.com/ledgerbook/backend/internal/domain/invoicing"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// MaxNumberAttempts bounds how many generated numbers are tried before giving up
const MaxNumberAttempts = 10

// ErrNumberExhausted is returned when no free generated number was found
var ErrNumberExhausted = errors.New("could not allocate a unique invoice number")

// InvoiceRecorder counts created invoices
type InvoiceRecorder interface {
	RecordInvoiceCreated(ctx context.Context, companyID uuid.UUID)
}

// NumberSource yields candidate invoice numbers
type NumberSource interface {
	Next() (string, error)
}

// InvoiceService handles invoice operations. Writes that touch lines go
// through the transaction scope.
type InvoiceService struct {
	invoiceRepo invoicing.InvoiceRepository
	txScope     TransactionScope
	numbers     NumberSource
	authorizer  *apptenancy.Authorizer
	recorder    InvoiceRecorder
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService. recorder may be nil.
func NewInvoiceService(
	invoiceRepo invoicing.InvoiceRepository,
	txScope TransactionScope,
	numbers NumberSource,
	authorizer *apptenancy.Authorizer,
	recorder InvoiceRecorder,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		txScope:     txScope,
		numbers:     numbers,
		authorizer:  authorizer,
		recorder:    recorder,
		logger:      logger,
	}
}

// Create writes an invoice and all its lines atomically. Without a client
// number one is generated; generated collisions are retried.
func (s *InvoiceService) Create(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, input invoicing.InvoiceInput) (*InvoiceResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.WritePolicy, "invoice.create"); err != nil {
		return nil, err
	}
	if err := invoicing.ValidateLines(input.Items); err != nil {
		return nil, err
	}

	clientNumber := input.InvoiceNumber != ""
	attempts := MaxNumberAttempts
	if clientNumber {
		attempts = 1
	}

	var invoice *invoicing.Invoice
	for attempt := 1; attempt <= attempts; attempt++ {
		if !clientNumber {
			number, err := s.numbers.Next()
			if err != nil {
				return nil, err
			}
			input.InvoiceNumber = number
		}

		inv, err := invoicing.NewInvoice(companyID, principal.UserID, input)
		if err != nil {
			return nil, err
		}

		err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
			if err := checkLinkedItems(ctx, repos.ItemRepo(), companyID, inv.LinkedItemIDs()); err != nil {
				return err
			}
			taken, err := repos.InvoiceRepo().ExistsByNumber(ctx, companyID, inv.InvoiceNumber)
			if err != nil {
				return err
			}
			if taken {
				return numberConflict(inv.InvoiceNumber)
			}
			return repos.InvoiceRepo().Save(ctx, inv)
		})
		if err == nil {
			invoice = inv
			break
		}
		if clientNumber || !shared.IsConflict(err) {
			return nil, err
		}
		logger.Enrich(ctx, s.logger).Debug("Generated invoice number collided",
			zap.String("invoice_number", inv.InvoiceNumber),
			zap.Int("attempt", attempt))
	}
	if invoice == nil {
		logger.Enrich(ctx, s.logger).Error("Invoice number generation exhausted",
			zap.String("company_id", companyID.String()),
			zap.Int("attempts", attempts))
		return nil, ErrNumberExhausted
	}

	logger.Enrich(ctx, s.logger).Info("Invoice created",
		zap.String("company_id", companyID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Int("items", len(invoice.Items)))
	if s.recorder != nil {
		s.recorder.RecordInvoiceCreated(ctx, companyID)
	}

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// Get returns an invoice with its lines
func (s *InvoiceService) Get(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID) (*InvoiceResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "invoice.get"); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// List returns the company's invoices, newest issue date first
func (s *InvoiceService) List(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, period *shared.DateRange) ([]InvoiceResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "invoice.list"); err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.FindAll(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	out := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		out[i] = ToInvoiceResponse(inv)
	}
	return out, nil
}

// Update applies a partial update. When lines are supplied they replace the
// stored ones atomically; otherwise the total is recomputed from stored lines.
func (s *InvoiceService) Update(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID, update invoicing.InvoiceUpdate) (*InvoiceResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.WritePolicy, "invoice.update"); err != nil {
		return nil, err
	}

	var invoice *invoicing.Invoice
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := repos.InvoiceRepo().FindByID(ctx, companyID, id)
		if err != nil {
			return err
		}
		if err := inv.Apply(update); err != nil {
			return err
		}
		if update.ReplaceItems {
			if err := checkLinkedItems(ctx, repos.ItemRepo(), companyID, inv.LinkedItemIDs()); err != nil {
				return err
			}
		}
		if err := repos.InvoiceRepo().Save(ctx, inv); err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Invoice updated",
		zap.String("company_id", companyID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.Bool("items_replaced", update.ReplaceItems))

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// Delete removes an invoice and its lines
func (s *InvoiceService) Delete(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID) error {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.AdminPolicy, "invoice.delete"); err != nil {
		return err
	}
	if err := s.invoiceRepo.Delete(ctx, companyID, id); err != nil {
		return err
	}

	logger.Enrich(ctx, s.logger).Info("Invoice deleted",
		zap.String("company_id", companyID.String()),
		zap.String("invoice_id", id.String()))
	return nil
}

// checkLinkedItems verifies every referenced inventory item belongs to the company
func checkLinkedItems(ctx context.Context, items inventory.ItemRepository, companyID uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		if _, err := items.FindByID(ctx, companyID, id); err != nil {
			if shared.IsNotFound(err) {
				return shared.NewNotFoundError("Product with ID " + id.String() + " not found or does not belong to this company")
			}
			return err
		}
	}
	return nil
}

func numberConflict(number string) error {
	return shared.NewConflictError("Invoice number " + number + " already exists. Please use a unique invoice number or let the system generate one.")
}
