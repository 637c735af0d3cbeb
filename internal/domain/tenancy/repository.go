package tenancy

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// FindByID finds a company by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindAll returns every company ordered by name (platform admin view)
	FindAll(ctx context.Context) ([]*Company, error)

	// FindAccessibleByUser returns companies the user owns or is a member of, ordered by name
	FindAccessibleByUser(ctx context.Context, userID uuid.UUID) ([]*Company, error)

	// ExistsByName checks if a company name is taken by anyone but excludeID
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// CountOwnedBy counts companies owned by userID
	CountOwnedBy(ctx context.Context, userID uuid.UUID) (int64, error)

	// Save inserts or updates a company
	Save(ctx context.Context, company *Company) error

	// Delete removes the company and every record it owns
	Delete(ctx context.Context, id uuid.UUID) error
}

// MembershipRepository defines the interface for membership persistence
type MembershipRepository interface {
	// Find returns the membership for (userID, companyID) or shared.ErrNotFound
	Find(ctx context.Context, userID, companyID uuid.UUID) (*Membership, error)

	// ListByCompany returns members of a company with account details, ordered by username
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*MemberDetail, error)

	// ListByUser returns every membership held by userID
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Membership, error)

	// Save inserts or updates a membership
	Save(ctx context.Context, membership *Membership) error

	// Delete removes a membership
	Delete(ctx context.Context, userID, companyID uuid.UUID) error

	// DeleteByUser removes every membership held by userID
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
