package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	apptenancy "github.com/ledgerbook/backend/internal/application/tenancy"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/finance"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseIncomeService provides application-level expense and income operations
type ExpenseIncomeService struct {
	incomeRepo  finance.IncomeRepository
	expenseRepo finance.ExpenseRepository
	authorizer  *apptenancy.Authorizer
	logger      *zap.Logger
}

// NewExpenseIncomeService creates a new ExpenseIncomeService
func NewExpenseIncomeService(
	incomeRepo finance.IncomeRepository,
	expenseRepo finance.ExpenseRepository,
	authorizer *apptenancy.Authorizer,
	logger *zap.Logger,
) *ExpenseIncomeService {
	return &ExpenseIncomeService{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// ===================== Income Operations =====================

// IncomeResponse represents an income record in API responses
type IncomeResponse struct {
	ID           uuid.UUID       `json:"id"`
	CompanyID    uuid.UUID       `json:"company_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	DateReceived string          `json:"date_received"`
	Category     *string         `json:"category"`
	Notes        *string         `json:"notes"`
	UserID       uuid.UUID       `json:"user_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToIncomeResponse converts a domain income record
func ToIncomeResponse(i *finance.Income) IncomeResponse {
	return IncomeResponse{
		ID:           i.ID,
		CompanyID:    i.CompanyID,
		Description:  i.Description,
		Amount:       i.Amount,
		DateReceived: shared.FormatDate(i.DateReceived),
		Category:     i.Category,
		Notes:        i.Notes,
		UserID:       i.UserID,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// CreateIncome records income for the company
func (s *ExpenseIncomeService) CreateIncome(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, input finance.IncomeInput) (*IncomeResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.WritePolicy, "income.create"); err != nil {
		return nil, err
	}
	income, err := finance.NewIncome(companyID, principal.UserID, input)
	if err != nil {
		return nil, err
	}
	if err := s.incomeRepo.Save(ctx, income); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Income recorded",
		zap.String("company_id", companyID.String()),
		zap.String("income_id", income.ID.String()))

	resp := ToIncomeResponse(income)
	return &resp, nil
}

// GetIncome returns one income record
func (s *ExpenseIncomeService) GetIncome(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID) (*IncomeResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "income.get"); err != nil {
		return nil, err
	}
	income, err := s.incomeRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToIncomeResponse(income)
	return &resp, nil
}

// ListIncome returns income of the company, optionally limited to a period
func (s *ExpenseIncomeService) ListIncome(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, period *shared.DateRange) ([]IncomeResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "income.list"); err != nil {
		return nil, err
	}
	records, err := s.incomeRepo.FindAll(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	out := make([]IncomeResponse, len(records))
	for i, r := range records {
		out[i] = ToIncomeResponse(r)
	}
	return out, nil
}

// UpdateIncome applies a partial update
func (s *ExpenseIncomeService) UpdateIncome(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID, update finance.IncomeUpdate) (*IncomeResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.WritePolicy, "income.update"); err != nil {
		return nil, err
	}
	income, err := s.incomeRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := income.Apply(update); err != nil {
		return nil, err
	}
	if err := s.incomeRepo.Save(ctx, income); err != nil {
		return nil, err
	}
	resp := ToIncomeResponse(income)
	return &resp, nil
}

// DeleteIncome removes an income record
func (s *ExpenseIncomeService) DeleteIncome(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID) error {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.AdminPolicy, "income.delete"); err != nil {
		return err
	}
	return s.incomeRepo.Delete(ctx, companyID, id)
}

// ===================== Expense Operations =====================

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID           uuid.UUID       `json:"id"`
	CompanyID    uuid.UUID       `json:"company_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	DateIncurred string          `json:"date_incurred"`
	Category     *string         `json:"category"`
	Vendor       *string         `json:"vendor"`
	Notes        *string         `json:"notes"`
	UserID       uuid.UUID       `json:"user_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToExpenseResponse converts a domain expense
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:           e.ID,
		CompanyID:    e.CompanyID,
		Description:  e.Description,
		Amount:       e.Amount,
		DateIncurred: shared.FormatDate(e.DateIncurred),
		Category:     e.Category,
		Vendor:       e.Vendor,
		Notes:        e.Notes,
		UserID:       e.UserID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// CreateExpense records an expense for the company
func (s *ExpenseIncomeService) CreateExpense(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, input finance.ExpenseInput) (*ExpenseResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.WritePolicy, "expense.create"); err != nil {
		return nil, err
	}
	expense, err := finance.NewExpense(companyID, principal.UserID, input)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Expense recorded",
		zap.String("company_id", companyID.String()),
		zap.String("expense_id", expense.ID.String()))

	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// GetExpense returns one expense
func (s *ExpenseIncomeService) GetExpense(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID) (*ExpenseResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "expense.get"); err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// ListExpenses returns expenses of the company, optionally limited to a period
func (s *ExpenseIncomeService) ListExpenses(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, period *shared.DateRange) ([]ExpenseResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "expense.list"); err != nil {
		return nil, err
	}
	records, err := s.expenseRepo.FindAll(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	out := make([]ExpenseResponse, len(records))
	for i, r := range records {
		out[i] = ToExpenseResponse(r)
	}
	return out, nil
}

// UpdateExpense applies a partial update
func (s *ExpenseIncomeService) UpdateExpense(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID, update finance.ExpenseUpdate) (*ExpenseResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.WritePolicy, "expense.update"); err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := expense.Apply(update); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// DeleteExpense removes an expense
func (s *ExpenseIncomeService) DeleteExpense(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID) error {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.AdminPolicy, "expense.delete"); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, companyID, id)
}
