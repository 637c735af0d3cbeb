package payroll

import (
	"context"

	"github.com/google/uuid"
)

// EmployeeRepository defines the interface for employee persistence.
// Every method is scoped to a company.
type EmployeeRepository interface {
	// FindByID finds an employee by ID within the company; a miss in the company is shared.ErrNotFound
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Employee, error)

	// FindAll lists the company's employees ordered by last name, first name
	FindAll(ctx context.Context, companyID uuid.UUID) ([]*Employee, error)

	// ExistsByEmail checks if the email is used by another employee of the company
	ExistsByEmail(ctx context.Context, companyID uuid.UUID, email string, excludeID *uuid.UUID) (bool, error)

	// ExistsByUserID checks if any employee other than excludeID is linked to userID
	ExistsByUserID(ctx context.Context, userID uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// Save inserts or updates an employee
	Save(ctx context.Context, employee *Employee) error

	// Delete removes the employee and its salaries
	Delete(ctx context.Context, companyID, id uuid.UUID) error

	// UnlinkUser clears the user link of any employee pointing to userID
	UnlinkUser(ctx context.Context, userID uuid.UUID) error
}

// SalaryRepository defines the interface for salary persistence
type SalaryRepository interface {
	// FindByID finds a salary of the given employee within the company
	FindByID(ctx context.Context, companyID, employeeID, id uuid.UUID) (*Salary, error)

	// FindByEmployee lists salaries of an employee ordered by payment date, newest first
	FindByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]*Salary, error)

	// Save inserts or updates a salary
	Save(ctx context.Context, salary *Salary) error

	// Delete removes a salary
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
