package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appidentity "github.com/ledgerbook/backend/internal/application/identity"
	"github.com/ledgerbook/backend/internal/domain/finance"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/inventory"
	"github.com/ledgerbook/backend/internal/domain/invoicing"
	"github.com/ledgerbook/backend/internal/domain/payroll"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
	"github.com/ledgerbook/backend/internal/infrastructure/config"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(context.Background()))
	return db.DB
}

type seeded struct {
	db      *gorm.DB
	owner   *identity.User
	company *tenancy.Company
}

func seedCompany(t *testing.T, db *gorm.DB, username, company string) seeded {
	t.Helper()
	ctx := context.Background()
	owner, err := identity.NewUser(username, username+"@example.com", "secret123", identity.PlatformRoleUser)
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Save(ctx, owner))
	c, err := tenancy.NewCompany(company, owner.ID)
	require.NoError(t, err)
	require.NoError(t, NewGormCompanyRepository(db).Save(ctx, c))
	return seeded{db: db, owner: owner, company: c}
}

func ptr[T any](v T) *T { return &v }

func date(s string) time.Time {
	d, err := shared.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestUserRepository_Uniqueness(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	alice, err := identity.NewUser("alice", "Alice@Example.com", "secret123", identity.PlatformRoleUser)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, alice))

	taken, err := repo.ExistsByEmail(ctx, "alice@example.com", nil)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByUsername(ctx, "alice", &alice.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	clone, err := identity.NewUser("alice", "other@example.com", "secret123", identity.PlatformRoleUser)
	require.NoError(t, err)
	err = repo.Save(ctx, clone)
	assert.True(t, shared.IsConflict(err))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, shared.IsNotFound(err))
}

func TestCompanyRepository_AccessibleByUser(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	acme := seedCompany(t, db, "olivia", "Acme")
	globex := seedCompany(t, db, "gary", "Globex")
	seedCompany(t, db, "ivan", "Initech")

	require.NoError(t, NewGormMembershipRepository(db).Save(ctx,
		mustMembership(t, acme.owner.ID, globex.company.ID, tenancy.CompanyRoleViewer)))

	companies, err := NewGormCompanyRepository(db).FindAccessibleByUser(ctx, acme.owner.ID)
	require.NoError(t, err)

	names := make([]string, len(companies))
	for i, c := range companies {
		names[i] = c.Name
	}
	assert.ElementsMatch(t, []string{"Acme", "Globex"}, names)
}

func TestCompanyRepository_DuplicateName(t *testing.T) {
	db := newSQLiteDB(t)
	acme := seedCompany(t, db, "olivia", "Acme")

	dup, err := tenancy.NewCompany("Acme", acme.owner.ID)
	require.NoError(t, err)
	err = NewGormCompanyRepository(db).Save(context.Background(), dup)

	assert.True(t, shared.IsConflict(err))
}

func TestMembershipRepository_ListByUser(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	repo := NewGormMembershipRepository(db)
	acme := seedCompany(t, db, "olivia", "Acme")
	globex := seedCompany(t, db, "gary", "Globex")
	initech := seedCompany(t, db, "ivan", "Initech")

	require.NoError(t, repo.Save(ctx, mustMembership(t, acme.owner.ID, globex.company.ID, tenancy.CompanyRoleViewer)))
	require.NoError(t, repo.Save(ctx, mustMembership(t, acme.owner.ID, initech.company.ID, tenancy.CompanyRoleAdmin)))
	require.NoError(t, repo.Save(ctx, mustMembership(t, globex.owner.ID, initech.company.ID, tenancy.CompanyRoleEditor)))

	memberships, err := repo.ListByUser(ctx, acme.owner.ID)
	require.NoError(t, err)

	roles := map[uuid.UUID]tenancy.CompanyRole{}
	for _, m := range memberships {
		assert.Equal(t, acme.owner.ID, m.UserID)
		roles[m.CompanyID] = m.Role
	}
	assert.Equal(t, map[uuid.UUID]tenancy.CompanyRole{
		globex.company.ID:  tenancy.CompanyRoleViewer,
		initech.company.ID: tenancy.CompanyRoleAdmin,
	}, roles)
}

func mustMembership(t *testing.T, userID, companyID uuid.UUID, role tenancy.CompanyRole) *tenancy.Membership {
	t.Helper()
	m, err := tenancy.NewMembership(userID, companyID, role)
	require.NoError(t, err)
	return m
}

func TestCompanyRepository_DeleteCascades(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	acme := seedCompany(t, db, "olivia", "Acme")
	other := seedCompany(t, db, "gary", "Globex")
	companyID := acme.company.ID

	employee, err := payroll.NewEmployee(companyID, payroll.EmployeeInput{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	require.NoError(t, NewGormEmployeeRepository(db).Save(ctx, employee))
	salary, err := payroll.NewSalary(employee, acme.owner.ID, payroll.SalaryInput{
		PaymentDate: date("2024-01-31"),
		GrossAmount: decimal.NewFromInt(2000),
	})
	require.NoError(t, err)
	require.NoError(t, NewGormSalaryRepository(db).Save(ctx, salary))

	item, err := inventory.NewInventoryItem(companyID, inventory.ItemInput{Name: "Widget", SalePrice: decimal.NewFromInt(5)})
	require.NoError(t, err)
	require.NoError(t, NewGormItemRepository(db).Save(ctx, item))

	invoice, err := invoicing.NewInvoice(companyID, acme.owner.ID, invoicing.InvoiceInput{
		InvoiceNumber: "INV-20240101-0001",
		CustomerName:  "Bob",
		Items:         []invoicing.LineInput{{ItemID: &item.ID, ItemDescription: "Widget", Quantity: 2, UnitPrice: decimal.NewFromInt(5)}},
	})
	require.NoError(t, err)
	require.NoError(t, NewGormInvoiceRepository(db).Save(ctx, invoice))

	income, err := finance.NewIncome(companyID, acme.owner.ID, finance.IncomeInput{
		Description: "Sale", Amount: decimal.NewFromInt(10), DateReceived: date("2024-01-02"),
	})
	require.NoError(t, err)
	require.NoError(t, NewGormIncomeRepository(db).Save(ctx, income))

	member := seedCompany(t, db, "vera", "Vera Co")
	require.NoError(t, NewGormMembershipRepository(db).Save(ctx,
		mustMembership(t, member.owner.ID, companyID, tenancy.CompanyRoleViewer)))

	otherIncome, err := finance.NewIncome(other.company.ID, other.owner.ID, finance.IncomeInput{
		Description: "Other", Amount: decimal.NewFromInt(7), DateReceived: date("2024-01-02"),
	})
	require.NoError(t, err)
	require.NoError(t, NewGormIncomeRepository(db).Save(ctx, otherIncome))

	require.NoError(t, NewGormCompanyRepository(db).Delete(ctx, companyID))

	for _, model := range []any{
		&models.EmployeeModel{}, &models.SalaryModel{}, &models.InventoryItemModel{},
		&models.InvoiceModel{}, &models.IncomeModel{}, &models.MembershipModel{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Where("company_id = ?", companyID).Count(&count).Error)
		assert.Zero(t, count, "%T", model)
	}
	var lines int64
	require.NoError(t, db.Model(&models.InvoiceItemModel{}).Where("invoice_id = ?", invoice.ID).Count(&lines).Error)
	assert.Zero(t, lines)

	remaining, err := NewGormIncomeRepository(db).FindAll(ctx, other.company.ID, nil)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	err = NewGormCompanyRepository(db).Delete(ctx, companyID)
	assert.True(t, shared.IsNotFound(err))
}

func TestItemRepository_SKUScopedToCompany(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	repo := NewGormItemRepository(db)
	acme := seedCompany(t, db, "olivia", "Acme")
	globex := seedCompany(t, db, "gary", "Globex")

	a, err := inventory.NewInventoryItem(acme.company.ID, inventory.ItemInput{Name: "Widget", SKU: ptr("W-1"), SalePrice: decimal.NewFromInt(1)})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, a))

	b, err := inventory.NewInventoryItem(globex.company.ID, inventory.ItemInput{Name: "Widget", SKU: ptr("W-1"), SalePrice: decimal.NewFromInt(1)})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, b))

	taken, err := repo.ExistsBySKU(ctx, acme.company.ID, "W-1", nil)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsBySKU(ctx, acme.company.ID, "W-1", &a.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	c, err := inventory.NewInventoryItem(acme.company.ID, inventory.ItemInput{Name: "Gadget", SKU: ptr("W-1"), SalePrice: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.True(t, shared.IsConflict(repo.Save(ctx, c)))

	_, err = repo.FindByID(ctx, globex.company.ID, a.ID)
	assert.True(t, shared.IsNotFound(err))
}

func TestItemRepository_DeleteKeepsInvoiceLines(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	acme := seedCompany(t, db, "olivia", "Acme")

	item, err := inventory.NewInventoryItem(acme.company.ID, inventory.ItemInput{Name: "Widget", SalePrice: decimal.NewFromInt(5)})
	require.NoError(t, err)
	require.NoError(t, NewGormItemRepository(db).Save(ctx, item))

	invoice, err := invoicing.NewInvoice(acme.company.ID, acme.owner.ID, invoicing.InvoiceInput{
		InvoiceNumber: "INV-20240101-0002",
		CustomerName:  "Bob",
		Items:         []invoicing.LineInput{{ItemID: &item.ID, ItemDescription: "Widget", Quantity: 1, UnitPrice: decimal.NewFromInt(5)}},
	})
	require.NoError(t, err)
	require.NoError(t, NewGormInvoiceRepository(db).Save(ctx, invoice))

	require.NoError(t, NewGormItemRepository(db).Delete(ctx, acme.company.ID, item.ID))

	stored, err := NewGormInvoiceRepository(db).FindByID(ctx, acme.company.ID, invoice.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Nil(t, stored.Items[0].ItemID)
	assert.Equal(t, "Widget", stored.Items[0].ItemDescription)
}

func TestInvoiceRepository_NumberUniquePerCompany(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	repo := NewGormInvoiceRepository(db)
	acme := seedCompany(t, db, "olivia", "Acme")
	globex := seedCompany(t, db, "gary", "Globex")

	newInvoice := func(companyID, userID uuid.UUID) *invoicing.Invoice {
		inv, err := invoicing.NewInvoice(companyID, userID, invoicing.InvoiceInput{
			InvoiceNumber: "INV-20240101-ABCD",
			CustomerName:  "Bob",
			Items:         []invoicing.LineInput{{ItemDescription: "Service", Quantity: 3, UnitPrice: decimal.RequireFromString("4.5")}},
		})
		require.NoError(t, err)
		return inv
	}

	first := newInvoice(acme.company.ID, acme.owner.ID)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, newInvoice(globex.company.ID, globex.owner.ID)))

	err := repo.Save(ctx, newInvoice(acme.company.ID, acme.owner.ID))
	assert.True(t, shared.IsConflict(err))

	exists, err := repo.ExistsByNumber(ctx, acme.company.ID, "INV-20240101-ABCD")
	require.NoError(t, err)
	assert.True(t, exists)

	stored, err := repo.FindByID(ctx, acme.company.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("13.5").Equal(stored.TotalAmount))
	require.Len(t, stored.Items, 1)
}

func TestInvoiceRepository_SaveReplacesItems(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	repo := NewGormInvoiceRepository(db)
	acme := seedCompany(t, db, "olivia", "Acme")

	inv, err := invoicing.NewInvoice(acme.company.ID, acme.owner.ID, invoicing.InvoiceInput{
		InvoiceNumber: "INV-20240101-0003",
		CustomerName:  "Bob",
		Items: []invoicing.LineInput{
			{ItemDescription: "A", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
			{ItemDescription: "B", Quantity: 1, UnitPrice: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, inv))

	require.NoError(t, inv.Apply(invoicing.InvoiceUpdate{
		Items:        []invoicing.LineInput{{ItemDescription: "C", Quantity: 2, UnitPrice: decimal.NewFromInt(10)}},
		ReplaceItems: true,
	}))
	require.NoError(t, repo.Save(ctx, inv))

	stored, err := repo.FindByID(ctx, acme.company.ID, inv.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "C", stored.Items[0].ItemDescription)
	assert.True(t, decimal.NewFromInt(20).Equal(stored.TotalAmount))
}

func TestIncomeRepository_FindAllPeriod(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	repo := NewGormIncomeRepository(db)
	acme := seedCompany(t, db, "olivia", "Acme")

	for _, d := range []string{"2023-12-31", "2024-01-01", "2024-01-31", "2024-02-01"} {
		income, err := finance.NewIncome(acme.company.ID, acme.owner.ID, finance.IncomeInput{
			Description: "Sale " + d, Amount: decimal.NewFromInt(1), DateReceived: date(d),
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, income))
	}

	period, err := shared.NewDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	records, err := repo.FindAll(ctx, acme.company.ID, &period)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "Sale 2024-01-31", records[0].Description)
	assert.Equal(t, "Sale 2024-01-01", records[1].Description)
}

func TestFinanceReportRepository_ProfitAndLossSums(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	acme := seedCompany(t, db, "olivia", "Acme")
	id := acme.company.ID

	for _, amount := range []string{"1000", "250.50"} {
		income, err := finance.NewIncome(id, acme.owner.ID, finance.IncomeInput{
			Description: "Sale", Amount: decimal.RequireFromString(amount), DateReceived: date("2024-01-10"),
		})
		require.NoError(t, err)
		require.NoError(t, NewGormIncomeRepository(db).Save(ctx, income))
	}
	expense, err := finance.NewExpense(id, acme.owner.ID, finance.ExpenseInput{
		Description: "Rent", Amount: decimal.NewFromInt(400), DateIncurred: date("2024-01-05"), Category: ptr("Office"),
	})
	require.NoError(t, err)
	require.NoError(t, NewGormExpenseRepository(db).Save(ctx, expense))

	employee, err := payroll.NewEmployee(id, payroll.EmployeeInput{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	require.NoError(t, NewGormEmployeeRepository(db).Save(ctx, employee))
	salary, err := payroll.NewSalary(employee, acme.owner.ID, payroll.SalaryInput{
		PaymentDate: date("2024-01-31"),
		GrossAmount: decimal.NewFromInt(600),
		Deductions:  ptr(decimal.NewFromInt(100)),
	})
	require.NoError(t, err)
	require.NoError(t, NewGormSalaryRepository(db).Save(ctx, salary))

	period, err := shared.NewDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	repo := NewGormFinanceReportRepository(db)

	income, err := repo.SumIncome(ctx, id, period)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1250.50").Equal(income), income.String())

	expenses, err := repo.SumExpenses(ctx, id, period)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(400).Equal(expenses))

	gross, err := repo.SumSalariesGross(ctx, id, period)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(600).Equal(gross))

	lines, err := repo.PayrollLines(ctx, id, period)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	empty, err := shared.NewDateRange("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	none, err := repo.SumIncome(ctx, id, empty)
	require.NoError(t, err)
	assert.True(t, none.IsZero())
}

func TestAccountTransactionScope_RollsBack(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	acme := seedCompany(t, db, "olivia", "Acme")

	employee, err := payroll.NewEmployee(acme.company.ID, payroll.EmployeeInput{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	require.NoError(t, NewGormEmployeeRepository(db).Save(ctx, employee))

	user, err := identity.NewUser("ada", "ada@example.com", "secret123", identity.PlatformRoleUser)
	require.NoError(t, err)

	err = NewGormAccountTransactionScope(db).Execute(ctx, func(repos appidentity.TransactionalRepositories) error {
		if err := repos.UserRepo().Save(ctx, user); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = NewGormUserRepository(db).FindByID(ctx, user.ID)
	assert.True(t, shared.IsNotFound(err))
}
