package payroll

import (
	"context"

	"github.com/google/uuid"
	appidentity "github.com/ledgerbook/backend/internal/application/identity"
	apptenancy "github.com/ledgerbook/backend/internal/application/tenancy"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/payroll"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// EmployeeService handles employee records and their promotion to platform users
type EmployeeService struct {
	employeeRepo payroll.EmployeeRepository
	userRepo     identity.UserRepository
	authorizer   *apptenancy.Authorizer
	txScope      appidentity.TransactionScope
	logger       *zap.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(
	employeeRepo payroll.EmployeeRepository,
	userRepo identity.UserRepository,
	authorizer *apptenancy.Authorizer,
	txScope appidentity.TransactionScope,
	logger *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		authorizer:   authorizer,
		txScope:      txScope,
		logger:       logger,
	}
}

// Create adds an employee to the company
func (s *EmployeeService) Create(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, input payroll.EmployeeInput) (*EmployeeResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.WritePolicy, "employee.create"); err != nil {
		return nil, err
	}

	employee, err := payroll.NewEmployee(companyID, input)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, employee, nil); err != nil {
		return nil, err
	}
	if err := s.checkUserLink(ctx, employee.UserID, nil); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Employee created",
		zap.String("company_id", companyID.String()),
		zap.String("employee_id", employee.ID.String()))

	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// Get returns an employee of the company
func (s *EmployeeService) Get(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID) (*EmployeeResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "employee.get"); err != nil {
		return nil, err
	}
	employee, err := s.employeeRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// List returns the company's employees
func (s *EmployeeService) List(ctx context.Context, principal *authz.Principal, companyID uuid.UUID) ([]EmployeeResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "employee.list"); err != nil {
		return nil, err
	}
	employees, err := s.employeeRepo.FindAll(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		out[i] = ToEmployeeResponse(e)
	}
	return out, nil
}

// Update applies a partial update to an employee
func (s *EmployeeService) Update(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID, update payroll.EmployeeUpdate) (*EmployeeResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.WritePolicy, "employee.update"); err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	oldEmail, oldUser := shared.StringValue(employee.Email), employee.UserID

	if err := employee.Apply(update); err != nil {
		return nil, err
	}
	if shared.StringValue(employee.Email) != oldEmail {
		if err := s.checkEmail(ctx, employee, &employee.ID); err != nil {
			return nil, err
		}
	}
	if employee.UserID != nil && (oldUser == nil || *oldUser != *employee.UserID) {
		if err := s.checkUserLink(ctx, employee.UserID, &employee.ID); err != nil {
			return nil, err
		}
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// Delete removes an employee and its salaries
func (s *EmployeeService) Delete(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID) error {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.AdminPolicy, "employee.delete"); err != nil {
		return err
	}
	if err := s.employeeRepo.Delete(ctx, companyID, id); err != nil {
		return err
	}

	logger.Enrich(ctx, s.logger).Info("Employee deleted",
		zap.String("company_id", companyID.String()),
		zap.String("employee_id", id.String()))
	return nil
}

// Promote creates a platform account for the employee and links it.
// The account and the link are written in one transaction.
func (s *EmployeeService) Promote(ctx context.Context, principal *authz.Principal, companyID, id uuid.UUID, input PromoteInput) (*PromoteResult, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.AdminPolicy, "employee.promote"); err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if employee.HasUser() {
		return nil, shared.NewConflictError("Employee already has an associated user account")
	}

	email := input.Email
	if email == "" {
		email = shared.StringValue(employee.Email)
	}
	if input.Username == "" || input.Password == "" || email == "" {
		return nil, shared.NewValidationError("username, password and email are required")
	}

	role := identity.PlatformRoleUser
	if input.Role != "" {
		r, err := identity.ParsePlatformRole(input.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}
	if role != identity.PlatformRoleUser {
		if err := s.authorizer.RequireSystemAdmin(ctx, principal, "employee.promote.platform_role"); err != nil {
			return nil, err
		}
	}

	user, err := identity.NewUser(input.Username, email, input.Password, role)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos appidentity.TransactionalRepositories) error {
		users := repos.UserRepo()
		if taken, err := users.ExistsByUsername(ctx, user.Username, nil); err != nil {
			return err
		} else if taken {
			return shared.NewConflictError("User with username '" + user.Username + "' already exists")
		}
		if taken, err := users.ExistsByEmail(ctx, user.Email, nil); err != nil {
			return err
		} else if taken {
			return shared.NewConflictError("User with email '" + user.Email + "' already exists")
		}
		if err := users.Save(ctx, user); err != nil {
			return err
		}
		if err := employee.LinkUser(user.ID); err != nil {
			return err
		}
		return repos.EmployeeRepo().Save(ctx, employee)
	})
	if err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Employee promoted to user",
		zap.String("company_id", companyID.String()),
		zap.String("employee_id", employee.ID.String()),
		zap.String("user_id", user.ID.String()))

	return &PromoteResult{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role.String(),
		Employee: ToEmployeeResponse(employee),
	}, nil
}

func (s *EmployeeService) checkEmail(ctx context.Context, employee *payroll.Employee, excludeID *uuid.UUID) error {
	if employee.Email == nil {
		return nil
	}
	taken, err := s.employeeRepo.ExistsByEmail(ctx, employee.CompanyID, *employee.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewConflictError("Employee with email " + *employee.Email + " already exists")
	}
	return nil
}

// checkUserLink verifies the user exists and is not linked to another employee
func (s *EmployeeService) checkUserLink(ctx context.Context, userID *uuid.UUID, excludeID *uuid.UUID) error {
	if userID == nil {
		return nil
	}
	if _, err := s.userRepo.FindByID(ctx, *userID); err != nil {
		return err
	}
	linked, err := s.employeeRepo.ExistsByUserID(ctx, *userID, excludeID)
	if err != nil {
		return err
	}
	if linked {
		return shared.NewConflictError("User is already linked to another employee")
	}
	return nil
}
