package payroll

import (
	"context"

	"github.com/google/uuid"
	apptenancy "github.com/ledgerbook/backend/internal/application/tenancy"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/payroll"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// SalaryService records salary payments of employees
type SalaryService struct {
	salaryRepo   payroll.SalaryRepository
	employeeRepo payroll.EmployeeRepository
	authorizer   *apptenancy.Authorizer
	logger       *zap.Logger
}

// NewSalaryService creates a new SalaryService
func NewSalaryService(
	salaryRepo payroll.SalaryRepository,
	employeeRepo payroll.EmployeeRepository,
	authorizer *apptenancy.Authorizer,
	logger *zap.Logger,
) *SalaryService {
	return &SalaryService{
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
		authorizer:   authorizer,
		logger:       logger,
	}
}

// Create records a payment for an employee of the company
func (s *SalaryService) Create(ctx context.Context, principal *authz.Principal, companyID, employeeID uuid.UUID, input payroll.SalaryInput) (*SalaryResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.WritePolicy, "salary.create"); err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.FindByID(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	salary, err := payroll.NewSalary(employee, principal.UserID, input)
	if err != nil {
		return nil, err
	}
	if err := s.salaryRepo.Save(ctx, salary); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Salary recorded",
		zap.String("company_id", companyID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.String("salary_id", salary.ID.String()))

	resp := ToSalaryResponse(salary)
	return &resp, nil
}

// List returns an employee's salaries, newest first
func (s *SalaryService) List(ctx context.Context, principal *authz.Principal, companyID, employeeID uuid.UUID) ([]SalaryResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "salary.list"); err != nil {
		return nil, err
	}
	if _, err := s.employeeRepo.FindByID(ctx, companyID, employeeID); err != nil {
		return nil, err
	}
	salaries, err := s.salaryRepo.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]SalaryResponse, len(salaries))
	for i, sal := range salaries {
		out[i] = ToSalaryResponse(sal)
	}
	return out, nil
}

// Get returns one salary of an employee
func (s *SalaryService) Get(ctx context.Context, principal *authz.Principal, companyID, employeeID, id uuid.UUID) (*SalaryResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "salary.get"); err != nil {
		return nil, err
	}
	salary, err := s.salaryRepo.FindByID(ctx, companyID, employeeID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSalaryResponse(salary)
	return &resp, nil
}

// Update applies a partial update and recomputes the net amount
func (s *SalaryService) Update(ctx context.Context, principal *authz.Principal, companyID, employeeID, id uuid.UUID, update payroll.SalaryUpdate) (*SalaryResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.WritePolicy, "salary.update"); err != nil {
		return nil, err
	}
	salary, err := s.salaryRepo.FindByID(ctx, companyID, employeeID, id)
	if err != nil {
		return nil, err
	}
	if err := salary.Apply(update); err != nil {
		return nil, err
	}
	if err := s.salaryRepo.Save(ctx, salary); err != nil {
		return nil, err
	}
	resp := ToSalaryResponse(salary)
	return &resp, nil
}

// Delete removes a salary record
func (s *SalaryService) Delete(ctx context.Context, principal *authz.Principal, companyID, employeeID, id uuid.UUID) error {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.AdminPolicy, "salary.delete"); err != nil {
		return err
	}
	if _, err := s.salaryRepo.FindByID(ctx, companyID, employeeID, id); err != nil {
		return err
	}
	return s.salaryRepo.Delete(ctx, companyID, id)
}
