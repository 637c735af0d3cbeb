package tenancy

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
)

// Company is the tenant boundary. Every ledger record belongs to exactly one company.
type Company struct {
	shared.BaseEntity
	Name    string
	OwnerID uuid.UUID
}

// NewCompany creates a company owned by ownerID
func NewCompany(name string, ownerID uuid.UUID) (*Company, error) {
	if err := validateCompanyName(name); err != nil {
		return nil, err
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Company owner is required")
	}
	return &Company{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		OwnerID:    ownerID,
	}, nil
}

// Rename changes the company name
func (c *Company) Rename(name string) error {
	if err := validateCompanyName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.Touch()
	return nil
}

// IsOwnedBy reports whether userID is the owner
func (c *Company) IsOwnedBy(userID uuid.UUID) bool {
	return c.OwnerID == userID
}

func validateCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name is required")
	}
	if len(name) > 150 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 150 characters")
	}
	return nil
}
