// Package bootstrap wires repositories, services and HTTP handlers into a
// ready gin engine. cmd/server and the end-to-end tests share it.
package bootstrap

import (
	"context"

	"github.com/gin-gonic/gin"
	appfinance "github.com/ledgerbook/backend/internal/application/finance"
	appidentity "github.com/ledgerbook/backend/internal/application/identity"
	appinventory "github.com/ledgerbook/backend/internal/application/inventory"
	appinvoicing "github.com/ledgerbook/backend/internal/application/invoicing"
	apppayroll "github.com/ledgerbook/backend/internal/application/payroll"
	appreport "github.com/ledgerbook/backend/internal/application/report"
	apptenancy "github.com/ledgerbook/backend/internal/application/tenancy"
	"github.com/ledgerbook/backend/internal/domain/invoicing"
	"github.com/ledgerbook/backend/internal/infrastructure/auth"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence"
	"github.com/ledgerbook/backend/internal/interfaces/http/handler"
	"github.com/ledgerbook/backend/internal/interfaces/http/middleware"
	"github.com/ledgerbook/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Metrics receives the business counters. A nil Metrics disables them.
type Metrics interface {
	apptenancy.DenialRecorder
	appinvoicing.InvoiceRecorder
}

// Dependencies are the infrastructure pieces the container is built from
type Dependencies struct {
	DB        *gorm.DB
	JWT       *auth.JWTService
	Blacklist auth.TokenBlacklist
	Storage   appreport.ArchiveStorage
	Metrics   Metrics
	Logger    *zap.Logger
}

// Services groups the application services
type Services struct {
	Auth       *appidentity.AuthService
	Users      *appidentity.UserService
	Authorizer *apptenancy.Authorizer
	Companies  *apptenancy.CompanyService
	Members    *apptenancy.MembershipService
	Employees  *apppayroll.EmployeeService
	Salaries   *apppayroll.SalaryService
	Ledger     *appfinance.ExpenseIncomeService
	Inventory  *appinventory.InventoryService
	Invoices   *appinvoicing.InvoiceService
	Reports    *appreport.ReportService
	Exports    *appreport.ExportService
}

// NewServices builds every application service over the gorm repositories
func NewServices(deps Dependencies) *Services {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	db := deps.DB

	userRepo := persistence.NewGormUserRepository(db)
	companyRepo := persistence.NewGormCompanyRepository(db)
	membershipRepo := persistence.NewGormMembershipRepository(db)
	employeeRepo := persistence.NewGormEmployeeRepository(db)
	salaryRepo := persistence.NewGormSalaryRepository(db)
	incomeRepo := persistence.NewGormIncomeRepository(db)
	expenseRepo := persistence.NewGormExpenseRepository(db)
	itemRepo := persistence.NewGormItemRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	financeReportRepo := persistence.NewGormFinanceReportRepository(db)

	accountScope := persistence.NewGormAccountTransactionScope(db)
	invoiceScope := persistence.NewGormInvoiceTransactionScope(db)

	var denials apptenancy.DenialRecorder
	var invoiceRecorder appinvoicing.InvoiceRecorder
	if deps.Metrics != nil {
		denials = deps.Metrics
		invoiceRecorder = deps.Metrics
	}

	authorizer := apptenancy.NewAuthorizer(companyRepo, membershipRepo, denials, log)
	return &Services{
		Auth:       appidentity.NewAuthService(userRepo, deps.JWT, deps.Blacklist, log),
		Users:      appidentity.NewUserService(userRepo, companyRepo, accountScope, log),
		Authorizer: authorizer,
		Companies:  apptenancy.NewCompanyService(companyRepo, membershipRepo, authorizer, log),
		Members:    apptenancy.NewMembershipService(membershipRepo, userRepo, authorizer, log),
		Employees:  apppayroll.NewEmployeeService(employeeRepo, userRepo, authorizer, accountScope, log),
		Salaries:   apppayroll.NewSalaryService(salaryRepo, employeeRepo, authorizer, log),
		Ledger:     appfinance.NewExpenseIncomeService(incomeRepo, expenseRepo, authorizer, log),
		Inventory:  appinventory.NewInventoryService(itemRepo, authorizer, log),
		Invoices: appinvoicing.NewInvoiceService(
			invoiceRepo, invoiceScope, invoicing.NewNumberGenerator(), authorizer, invoiceRecorder, log,
		),
		Reports: appreport.NewReportService(financeReportRepo, invoiceRepo, itemRepo, authorizer, log),
		Exports: appreport.NewExportService(incomeRepo, expenseRepo, itemRepo, deps.Storage, authorizer, log),
	}
}

// NewEngine mounts every handler on engine and installs the middleware chain.
// opts are applied after the defaults and may override them.
func NewEngine(engine *gin.Engine, deps Dependencies, opts ...router.RouterOption) *Services {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	svc := NewServices(deps)

	base := []router.RouterOption{
		router.WithLogger(log),
		router.WithAuth(middleware.JWTAuthMiddleware(deps.JWT, svc.Auth, svc.Auth, log)),
		router.WithHealthCheck("database", func(ctx context.Context) error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	r := router.NewRouter(engine, append(base, opts...)...)

	authHandler := handler.NewAuthHandler(svc.Auth, log)
	r.RegisterPublic(authHandler)
	r.Register(authHandler).
		Register(handler.NewUserHandler(svc.Users, log)).
		Register(handler.NewCompanyHandler(svc.Companies, svc.Members, log)).
		Register(handler.NewPayrollHandler(svc.Employees, svc.Salaries, log)).
		Register(handler.NewFinanceHandler(svc.Ledger, log)).
		Register(handler.NewInventoryHandler(svc.Inventory, log)).
		Register(handler.NewInvoiceHandler(svc.Invoices, log)).
		Register(handler.NewReportHandler(svc.Reports, log)).
		Register(handler.NewExportHandler(svc.Exports, log))
	r.Setup()

	return svc
}
