package tenancy

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
)

// CompanyRole is a user's role inside one company
type CompanyRole string

const (
	CompanyRoleAdmin  CompanyRole = "admin"
	CompanyRoleEditor CompanyRole = "editor"
	CompanyRoleViewer CompanyRole = "viewer"
)

// CompanyRoleOwner is reported for the owner's implicit membership. It is never stored.
const CompanyRoleOwner CompanyRole = "owner"

// IsValid reports whether r can be stored on a membership
func (r CompanyRole) IsValid() bool {
	switch r {
	case CompanyRoleAdmin, CompanyRoleEditor, CompanyRoleViewer:
		return true
	}
	return false
}

func (r CompanyRole) String() string {
	return string(r)
}

// ParseCompanyRole converts s into a storable CompanyRole
func ParseCompanyRole(s string) (CompanyRole, error) {
	r := CompanyRole(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", shared.NewDomainError("INVALID_ROLE",
			"Invalid role_in_company: "+s+" (valid: admin, editor, viewer)")
	}
	return r, nil
}

// Membership grants a user a role in a company. Unique per (user, company).
type Membership struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Role      CompanyRole
	JoinedAt  time.Time
}

// NewMembership creates a membership
func NewMembership(userID, companyID uuid.UUID, role CompanyRole) (*Membership, error) {
	if userID == uuid.Nil || companyID == uuid.Nil {
		return nil, shared.NewValidationError("user_id and company_id are required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Invalid role_in_company")
	}
	return &Membership{
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
		JoinedAt:  time.Now().UTC(),
	}, nil
}

// ChangeRole replaces the membership role
func (m *Membership) ChangeRole(role CompanyRole) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Invalid role_in_company")
	}
	m.Role = role
	return nil
}

// MemberDetail is a membership joined with the member's account details
type MemberDetail struct {
	Membership
	Username string
	Email    string
}
