package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/finance"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
	"github.com/ledgerbook/backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockIncomeRepository struct {
	mock.Mock
}

func (m *MockIncomeRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*finance.Income, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Income), args.Error(1)
}

func (m *MockIncomeRepository) FindAll(ctx context.Context, companyID uuid.UUID, period *shared.DateRange) ([]*finance.Income, error) {
	args := m.Called(ctx, companyID, period)
	return args.Get(0).([]*finance.Income), args.Error(1)
}

func (m *MockIncomeRepository) Save(ctx context.Context, income *finance.Income) error {
	return m.Called(ctx, income).Error(0)
}

func (m *MockIncomeRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return m.Called(ctx, companyID, id).Error(0)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, companyID uuid.UUID, period *shared.DateRange) ([]*finance.Expense, error) {
	args := m.Called(ctx, companyID, period)
	return args.Get(0).([]*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return m.Called(ctx, companyID, id).Error(0)
}

type financeFixture struct {
	tenant   *testutil.Tenant
	income   *MockIncomeRepository
	expenses *MockExpenseRepository
	svc      *ExpenseIncomeService
}

func newFinanceFixture(t *testing.T) *financeFixture {
	t.Helper()
	f := &financeFixture{
		tenant:   testutil.NewTenant(t, "Acme"),
		income:   new(MockIncomeRepository),
		expenses: new(MockExpenseRepository),
	}
	f.svc = NewExpenseIncomeService(f.income, f.expenses, f.tenant.Authorizer, zap.NewNop())
	return f
}

var jan15 = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func TestExpenseIncomeService_CreateIncome(t *testing.T) {
	ctx := context.Background()

	t.Run("records the caller as author", func(t *testing.T) {
		f := newFinanceFixture(t)
		editor := f.tenant.Member(t, tenancy.CompanyRoleEditor)
		f.income.On("Save", mock.Anything, mock.AnythingOfType("*finance.Income")).Return(nil)

		resp, err := f.svc.CreateIncome(ctx, editor, f.tenant.ID(), finance.IncomeInput{
			Description:  "Consulting",
			Amount:       decimal.RequireFromString("1200.50"),
			DateReceived: jan15,
		})

		require.NoError(t, err)
		assert.Equal(t, editor.UserID, resp.UserID)
		assert.Equal(t, "2024-01-15", resp.DateReceived)
		assert.True(t, decimal.RequireFromString("1200.50").Equal(resp.Amount))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		f := newFinanceFixture(t)

		_, err := f.svc.CreateIncome(ctx, f.tenant.Owner, f.tenant.ID(), finance.IncomeInput{
			Description:  "Refund",
			Amount:       decimal.Zero,
			DateReceived: jan15,
		})

		require.Error(t, err)
		f.income.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("viewer forbidden", func(t *testing.T) {
		f := newFinanceFixture(t)

		_, err := f.svc.CreateIncome(ctx, f.tenant.Member(t, tenancy.CompanyRoleViewer), f.tenant.ID(), finance.IncomeInput{
			Description:  "Consulting",
			Amount:       decimal.NewFromInt(10),
			DateReceived: jan15,
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("outsider forbidden", func(t *testing.T) {
		f := newFinanceFixture(t)

		_, err := f.svc.ListIncome(ctx, f.tenant.Outsider(), f.tenant.ID(), nil)

		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.income.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExpenseIncomeService_ListIncome_PassesPeriod(t *testing.T) {
	f := newFinanceFixture(t)
	period, err := shared.NewDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	income, err := finance.NewIncome(f.tenant.ID(), f.tenant.Owner.UserID, finance.IncomeInput{
		Description:  "Consulting",
		Amount:       decimal.NewFromInt(100),
		DateReceived: jan15,
	})
	require.NoError(t, err)
	f.income.On("FindAll", mock.Anything, f.tenant.ID(), &period).Return([]*finance.Income{income}, nil)

	out, err := f.svc.ListIncome(context.Background(), f.tenant.Member(t, tenancy.CompanyRoleViewer), f.tenant.ID(), &period)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, income.ID, out[0].ID)
}

func TestExpenseIncomeService_UpdateExpense(t *testing.T) {
	f := newFinanceFixture(t)
	expense, err := finance.NewExpense(f.tenant.ID(), f.tenant.Owner.UserID, finance.ExpenseInput{
		Description:  "Rent",
		Amount:       decimal.NewFromInt(800),
		DateIncurred: jan15,
	})
	require.NoError(t, err)
	f.expenses.On("FindByID", mock.Anything, f.tenant.ID(), expense.ID).Return(expense, nil)
	f.expenses.On("Save", mock.Anything, expense).Return(nil)

	amount := decimal.NewFromInt(850)
	resp, err := f.svc.UpdateExpense(context.Background(), f.tenant.Owner, f.tenant.ID(), expense.ID, finance.ExpenseUpdate{Amount: &amount})

	require.NoError(t, err)
	assert.True(t, amount.Equal(resp.Amount))
	assert.Equal(t, "Rent", resp.Description)
}

func TestExpenseIncomeService_GetExpense_OtherCompany(t *testing.T) {
	f := newFinanceFixture(t)
	id := uuid.New()
	f.expenses.On("FindByID", mock.Anything, f.tenant.ID(), id).Return(nil, shared.ErrNotFound)

	_, err := f.svc.GetExpense(context.Background(), f.tenant.Owner, f.tenant.ID(), id)

	assert.True(t, shared.IsNotFound(err))
}

func TestExpenseIncomeService_DeleteExpense_RequiresAdmin(t *testing.T) {
	f := newFinanceFixture(t)

	err := f.svc.DeleteExpense(context.Background(), f.tenant.Member(t, tenancy.CompanyRoleEditor), f.tenant.ID(), uuid.New())

	assert.ErrorIs(t, err, shared.ErrForbidden)
	f.expenses.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
