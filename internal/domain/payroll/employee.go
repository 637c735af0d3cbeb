package payroll

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/shared"
)

// Employee is a person on a company's payroll. It may be linked to one platform user.
type Employee struct {
	shared.CompanyEntity
	FirstName   string
	LastName    string
	Email       *string
	PhoneNumber *string
	Position    *string
	HireDate    *time.Time
	IsActive    bool
	UserID      *uuid.UUID
}

// EmployeeInput carries the fields used to create an employee
type EmployeeInput struct {
	FirstName   string
	LastName    string
	Email       *string
	PhoneNumber *string
	Position    *string
	HireDate    *time.Time
	IsActive    *bool
	UserID      *uuid.UUID
}

// NewEmployee creates an employee for companyID
func NewEmployee(companyID uuid.UUID, in EmployeeInput) (*Employee, error) {
	first, err := shared.RequireText("first_name", in.FirstName, 100)
	if err != nil {
		return nil, err
	}
	last, err := shared.RequireText("last_name", in.LastName, 100)
	if err != nil {
		return nil, err
	}
	email, err := normalizeContactEmail(in.Email)
	if err != nil {
		return nil, err
	}
	phone, err := shared.OptionalText("phone_number", in.PhoneNumber, 30)
	if err != nil {
		return nil, err
	}
	position, err := shared.OptionalText("position", in.Position, 100)
	if err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return &Employee{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		FirstName:     first,
		LastName:      last,
		Email:         email,
		PhoneNumber:   phone,
		Position:      position,
		HireDate:      in.HireDate,
		IsActive:      active,
		UserID:        in.UserID,
	}, nil
}

// EmployeeUpdate holds a partial update. Nil fields are left untouched; an
// empty string clears an optional text field.
type EmployeeUpdate struct {
	FirstName     *string
	LastName      *string
	Email         *string
	PhoneNumber   *string
	Position      *string
	HireDate      *time.Time
	ClearHireDate bool
	IsActive      *bool
	UserID        *uuid.UUID
	UnlinkUser    bool
}

// Apply mutates the employee with the fields present in u
func (e *Employee) Apply(u EmployeeUpdate) error {
	if u.FirstName != nil {
		v, err := shared.RequireText("first_name", *u.FirstName, 100)
		if err != nil {
			return err
		}
		e.FirstName = v
	}
	if u.LastName != nil {
		v, err := shared.RequireText("last_name", *u.LastName, 100)
		if err != nil {
			return err
		}
		e.LastName = v
	}
	if u.Email != nil {
		email, err := normalizeContactEmail(u.Email)
		if err != nil {
			return err
		}
		e.Email = email
	}
	if u.PhoneNumber != nil {
		v, err := shared.OptionalText("phone_number", u.PhoneNumber, 30)
		if err != nil {
			return err
		}
		e.PhoneNumber = v
	}
	if u.Position != nil {
		v, err := shared.OptionalText("position", u.Position, 100)
		if err != nil {
			return err
		}
		e.Position = v
	}
	if u.ClearHireDate {
		e.HireDate = nil
	} else if u.HireDate != nil {
		e.HireDate = u.HireDate
	}
	if u.IsActive != nil {
		e.IsActive = *u.IsActive
	}
	if u.UnlinkUser {
		e.UserID = nil
	} else if u.UserID != nil {
		e.UserID = u.UserID
	}
	e.Touch()
	return nil
}

// FullName returns "First Last"
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// HasUser reports whether the employee is linked to a platform account
func (e *Employee) HasUser() bool {
	return e.UserID != nil
}

// LinkUser links the employee to a platform account
func (e *Employee) LinkUser(userID uuid.UUID) error {
	if e.HasUser() {
		return shared.NewConflictError("Employee already has an associated user account")
	}
	e.UserID = &userID
	e.Touch()
	return nil
}

func normalizeContactEmail(email *string) (*string, error) {
	v := shared.OptionalString(email)
	if v == nil {
		return nil, nil
	}
	if err := identity.ValidateEmail(*v); err != nil {
		return nil, err
	}
	lower := strings.ToLower(*v)
	return &lower, nil
}
