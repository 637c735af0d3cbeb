package identity

import (
	"context"

	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/payroll"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
)

// TransactionScope runs account changes that touch users, memberships and
// employee links atomically.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories sharing one transaction
type TransactionalRepositories interface {
	UserRepo() identity.UserRepository
	MembershipRepo() tenancy.MembershipRepository
	EmployeeRepo() payroll.EmployeeRepository
}

// NoOpTransactionScope runs fn against plain repositories. Used in tests.
type NoOpTransactionScope struct {
	userRepo       identity.UserRepository
	membershipRepo tenancy.MembershipRepository
	employeeRepo   payroll.EmployeeRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	userRepo identity.UserRepository,
	membershipRepo tenancy.MembershipRepository,
	employeeRepo payroll.EmployeeRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		employeeRepo:   employeeRepo,
	}
}

// Execute runs fn without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) UserRepo() identity.UserRepository { return s.userRepo }

func (s *NoOpTransactionScope) MembershipRepo() tenancy.MembershipRepository { return s.membershipRepo }

func (s *NoOpTransactionScope) EmployeeRepo() payroll.EmployeeRepository { return s.employeeRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
