package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	appinvoicing "github.com/ledgerbook/backend/internal/application/invoicing"
	apptenancy "github.com/ledgerbook/backend/internal/application/tenancy"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

var (
	_ apptenancy.DenialRecorder    = (*LedgerMetrics)(nil)
	_ appinvoicing.InvoiceRecorder = (*LedgerMetrics)(nil)
)

// LedgerMetrics holds the business counters of the ledger.
type LedgerMetrics struct {
	invoicesCreated metric.Int64Counter
	authzDenials    metric.Int64Counter
}

// NewLedgerMetrics registers the counters on meter.
func NewLedgerMetrics(meter metric.Meter, logger *zap.Logger) (*LedgerMetrics, error) {
	if meter == nil {
		return nil, errors.New("NewLedgerMetrics: meter cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	invoices, err := meter.Int64Counter("ledger_invoices_created_total",
		metric.WithDescription("Invoices created"), metric.WithUnit("{invoice}"))
	if err != nil {
		return nil, fmt.Errorf("register invoice counter: %w", err)
	}
	denials, err := meter.Int64Counter("ledger_authz_denials_total",
		metric.WithDescription("Authorization denials"), metric.WithUnit("{denial}"))
	if err != nil {
		return nil, fmt.Errorf("register denial counter: %w", err)
	}

	logger.Debug("Ledger metrics registered")
	return &LedgerMetrics{invoicesCreated: invoices, authzDenials: denials}, nil
}

// RecordInvoiceCreated counts a committed invoice.
func (m *LedgerMetrics) RecordInvoiceCreated(ctx context.Context, companyID uuid.UUID) {
	m.invoicesCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("company_id", companyID.String())))
}

// RecordAuthzDenial counts a refused operation by policy.
func (m *LedgerMetrics) RecordAuthzDenial(ctx context.Context, operation, policy string) {
	m.authzDenials.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("policy", policy),
	))
}
