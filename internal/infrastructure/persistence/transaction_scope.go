package persistence

import (
	"context"

	appidentity "github.com/ledgerbook/backend/internal/application/identity"
	appinvoicing "github.com/ledgerbook/backend/internal/application/invoicing"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/inventory"
	"github.com/ledgerbook/backend/internal/domain/invoicing"
	"github.com/ledgerbook/backend/internal/domain/payroll"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
	"gorm.io/gorm"
)

// GormAccountTransactionScope runs user, membership and employee writes in one GORM transaction.
type GormAccountTransactionScope struct {
	db *gorm.DB
}

// NewGormAccountTransactionScope creates a new GormAccountTransactionScope.
func NewGormAccountTransactionScope(db *gorm.DB) *GormAccountTransactionScope {
	return &GormAccountTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormAccountTransactionScope) Execute(ctx context.Context, fn func(repos appidentity.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormAccountRepositories{tx: tx})
	})
}

type gormAccountRepositories struct {
	tx *gorm.DB
}

func (r *gormAccountRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormAccountRepositories) MembershipRepo() tenancy.MembershipRepository {
	return NewGormMembershipRepository(r.tx)
}

func (r *gormAccountRepositories) EmployeeRepo() payroll.EmployeeRepository {
	return NewGormEmployeeRepository(r.tx)
}

// GormInvoiceTransactionScope runs invoice writes and their item checks in one GORM transaction.
type GormInvoiceTransactionScope struct {
	db *gorm.DB
}

// NewGormInvoiceTransactionScope creates a new GormInvoiceTransactionScope.
func NewGormInvoiceTransactionScope(db *gorm.DB) *GormInvoiceTransactionScope {
	return &GormInvoiceTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormInvoiceTransactionScope) Execute(ctx context.Context, fn func(repos appinvoicing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInvoiceRepositories{tx: tx})
	})
}

type gormInvoiceRepositories struct {
	tx *gorm.DB
}

func (r *gormInvoiceRepositories) InvoiceRepo() invoicing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *gormInvoiceRepositories) ItemRepo() inventory.ItemRepository {
	return NewGormItemRepository(r.tx)
}

var (
	_ appidentity.TransactionScope           = (*GormAccountTransactionScope)(nil)
	_ appidentity.TransactionalRepositories  = (*gormAccountRepositories)(nil)
	_ appinvoicing.TransactionScope          = (*GormInvoiceTransactionScope)(nil)
	_ appinvoicing.TransactionalRepositories = (*gormInvoiceRepositories)(nil)
)
