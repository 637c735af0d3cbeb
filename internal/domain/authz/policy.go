// Package authz decides whether a principal may act on a company.
//
// Three grant paths are combined with OR semantics:
//   - system-admin override, when the policy opts in
//   - ownership override, when the policy opts in
//   - a membership whose role is listed in the policy
//
// Roles have no hierarchy: a policy that lists only editor does not admit admin.
package authz

import (
	"slices"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
)

// Principal is the authenticated user making a request
type Principal struct {
	UserID uuid.UUID
	Role   identity.PlatformRole
}

// IsSystemAdmin reports whether the principal holds the platform admin role
func (p *Principal) IsSystemAdmin() bool {
	return p != nil && p.Role == identity.PlatformRoleSystemAdmin
}

// Policy is the access rule an operation declares
type Policy struct {
	Name             string
	AllowedRoles     []tenancy.CompanyRole
	AllowOwner       bool
	AllowSystemAdmin bool
}

// Allows reports whether role is listed in the policy
func (p Policy) Allows(role tenancy.CompanyRole) bool {
	return slices.Contains(p.AllowedRoles, role)
}

var (
	// ReadPolicy guards list, get and report operations
	ReadPolicy = Policy{
		Name:             "read",
		AllowedRoles:     []tenancy.CompanyRole{tenancy.CompanyRoleAdmin, tenancy.CompanyRoleEditor, tenancy.CompanyRoleViewer},
		AllowOwner:       true,
		AllowSystemAdmin: true,
	}

	// WritePolicy guards create and update operations
	WritePolicy = Policy{
		Name:             "write",
		AllowedRoles:     []tenancy.CompanyRole{tenancy.CompanyRoleAdmin, tenancy.CompanyRoleEditor},
		AllowOwner:       true,
		AllowSystemAdmin: true,
	}

	// AdminPolicy guards deletes and company administration
	AdminPolicy = Policy{
		Name:             "admin",
		AllowedRoles:     []tenancy.CompanyRole{tenancy.CompanyRoleAdmin},
		AllowOwner:       true,
		AllowSystemAdmin: true,
	}

	// OwnerPolicy guards company deletion
	OwnerPolicy = Policy{
		Name:             "owner",
		AllowOwner:       true,
		AllowSystemAdmin: true,
	}
)

// CheckPermission returns true iff at least one enabled grant path matches.
// membership may be nil when the principal has no row for the company.
func CheckPermission(principal *Principal, company *tenancy.Company, membership *tenancy.Membership, policy Policy) bool {
	if principal == nil || company == nil {
		return false
	}
	if policy.AllowSystemAdmin && principal.IsSystemAdmin() {
		return true
	}
	if policy.AllowOwner && company.IsOwnedBy(principal.UserID) {
		return true
	}
	if membership == nil || membership.UserID != principal.UserID || membership.CompanyID != company.ID {
		return false
	}
	return policy.Allows(membership.Role)
}

// EffectiveRole reports the role the principal acts with inside the company.
// The owner resolves to CompanyRoleOwner even without a membership row; an
// empty role means no access through membership or ownership.
func EffectiveRole(principal *Principal, company *tenancy.Company, membership *tenancy.Membership) tenancy.CompanyRole {
	if principal == nil || company == nil {
		return ""
	}
	if company.IsOwnedBy(principal.UserID) {
		return tenancy.CompanyRoleOwner
	}
	if membership != nil && membership.UserID == principal.UserID && membership.CompanyID == company.ID {
		return membership.Role
	}
	return ""
}

// RequireSystemAdmin is the platform-level gate for user administration.
func RequireSystemAdmin(principal *Principal) bool {
	return principal.IsSystemAdmin()
}
