package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"
	apptenancy "github.com/ledgerbook/backend/internal/application/tenancy"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/finance"
	"github.com/ledgerbook/backend/internal/domain/inventory"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExportResource names a CSV-exportable collection
type ExportResource string

const (
	ExportIncome    ExportResource = "income"
	ExportExpenses  ExportResource = "expenses"
	ExportInventory ExportResource = "inventory"
)

// CSVContentType is the media type of every export
const CSVContentType = "text/csv"

// DefaultArchiveURLExpiry is how long an archive download link stays valid
const DefaultArchiveURLExpiry = time.Hour

var (
	incomeHeader    = []string{"ID", "Description", "Amount", "Date Received", "Category", "Notes", "User ID", "Created At"}
	expenseHeader   = []string{"ID", "Description", "Amount", "Date Incurred", "Category", "Vendor", "Notes", "User ID", "Created At"}
	inventoryHeader = []string{"ID", "Name", "Description", "SKU", "Purchase Price", "Sale Price", "Quantity on Hand", "Unit of Measure", "Created At", "Updated At"}
)

// ParseExportResource validates a resource path segment
func ParseExportResource(s string) (ExportResource, error) {
	switch r := ExportResource(s); r {
	case ExportIncome, ExportExpenses, ExportInventory:
		return r, nil
	default:
		return "", shared.NewValidationError(fmt.Sprintf("Unsupported export resource '%s'", s))
	}
}

// ArchiveStorage is the object store that receives archived exports
type ArchiveStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}

// ExportFile is a rendered CSV document
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ArchiveResponse points at an archived export
type ArchiveResponse struct {
	Key         string    `json:"key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
	SizeBytes   int       `json:"size_bytes"`
}

// ExportService renders company data as CSV
type ExportService struct {
	incomeRepo  finance.IncomeRepository
	expenseRepo finance.ExpenseRepository
	itemRepo    inventory.ItemRepository
	storage     ArchiveStorage
	authorizer  *apptenancy.Authorizer
	logger      *zap.Logger
	urlExpiry   time.Duration
	now         func() time.Time
}

// NewExportService creates a new ExportService
func NewExportService(
	incomeRepo finance.IncomeRepository,
	expenseRepo finance.ExpenseRepository,
	itemRepo inventory.ItemRepository,
	storage ArchiveStorage,
	authorizer *apptenancy.Authorizer,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		itemRepo:    itemRepo,
		storage:     storage,
		authorizer:  authorizer,
		logger:      logger,
		urlExpiry:   DefaultArchiveURLExpiry,
		now:         time.Now,
	}
}

// Export renders a resource as CSV. The period applies to income and expenses only.
func (s *ExportService) Export(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, resource ExportResource, period *shared.DateRange) (*ExportFile, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "export."+string(resource)); err != nil {
		return nil, err
	}
	data, err := s.render(ctx, companyID, resource, period)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Filename:    string(resource) + "_export.csv",
		ContentType: CSVContentType,
		Data:        data,
	}, nil
}

// Archive renders a resource as CSV and stores it under exports/<company_id>/
func (s *ExportService) Archive(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, resource ExportResource, period *shared.DateRange) (*ArchiveResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.AdminPolicy, "export.archive"); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_UNAVAILABLE", "Object storage is not configured")
	}

	data, err := s.render(ctx, companyID, resource, period)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/%s/%s-%s.csv", companyID, resource, s.now().UTC().Format("20060102T150405Z"))
	if err := s.storage.Upload(ctx, key, data, CSVContentType); err != nil {
		return nil, fmt.Errorf("failed to archive export: %w", err)
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, s.urlExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign archive url: %w", err)
	}

	logger.Enrich(ctx, s.logger).Info("Export archived",
		zap.String("company_id", companyID.String()),
		zap.String("resource", string(resource)),
		zap.String("key", key),
		zap.Int("size_bytes", len(data)),
	)

	return &ArchiveResponse{Key: key, DownloadURL: url, ExpiresAt: expiresAt, SizeBytes: len(data)}, nil
}

func (s *ExportService) render(ctx context.Context, companyID uuid.UUID, resource ExportResource, period *shared.DateRange) ([]byte, error) {
	var rows [][]string
	switch resource {
	case ExportIncome:
		records, err := s.incomeRepo.FindAll(ctx, companyID, period)
		if err != nil {
			return nil, err
		}
		rows = append(rows, incomeHeader)
		for _, r := range records {
			rows = append(rows, []string{
				r.ID.String(), r.Description, money(r.Amount), shared.FormatDate(r.DateReceived),
				text(r.Category), text(r.Notes), r.UserID.String(), timestamp(r.CreatedAt),
			})
		}
	case ExportExpenses:
		records, err := s.expenseRepo.FindAll(ctx, companyID, period)
		if err != nil {
			return nil, err
		}
		rows = append(rows, expenseHeader)
		for _, r := range records {
			rows = append(rows, []string{
				r.ID.String(), r.Description, money(r.Amount), shared.FormatDate(r.DateIncurred),
				text(r.Category), text(r.Vendor), text(r.Notes), r.UserID.String(), timestamp(r.CreatedAt),
			})
		}
	case ExportInventory:
		items, err := s.itemRepo.FindAll(ctx, companyID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, inventoryHeader)
		for _, it := range items {
			purchase := ""
			if it.PurchasePrice != nil {
				purchase = money(*it.PurchasePrice)
			}
			rows = append(rows, []string{
				it.ID.String(), it.Name, text(it.Description), text(it.SKU), purchase, money(it.SalePrice),
				fmt.Sprintf("%d", it.QuantityOnHand), text(it.UnitOfMeasure), timestamp(it.CreatedAt), timestamp(it.UpdatedAt),
			})
		}
	default:
		return nil, shared.NewValidationError(fmt.Sprintf("Unsupported export resource '%s'", resource))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
