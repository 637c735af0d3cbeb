package authz

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allRoles = []tenancy.CompanyRole{tenancy.CompanyRoleAdmin, tenancy.CompanyRoleEditor, tenancy.CompanyRoleViewer}

// roleSubsets returns all 8 subsets of the company roles.
func roleSubsets() [][]tenancy.CompanyRole {
	subsets := make([][]tenancy.CompanyRole, 0, 8)
	for mask := 0; mask < 1<<len(allRoles); mask++ {
		var s []tenancy.CompanyRole
		for i, r := range allRoles {
			if mask&(1<<i) != 0 {
				s = append(s, r)
			}
		}
		subsets = append(subsets, s)
	}
	return subsets
}

func newCompany(t *testing.T, ownerID uuid.UUID) *tenancy.Company {
	t.Helper()
	c, err := tenancy.NewCompany("Acme", ownerID)
	require.NoError(t, err)
	return c
}

func TestCheckPermission_Exhaustive(t *testing.T) {
	ownerID := uuid.New()
	company := newCompany(t, ownerID)

	memberRoles := []tenancy.CompanyRole{"", tenancy.CompanyRoleAdmin, tenancy.CompanyRoleEditor, tenancy.CompanyRoleViewer}

	cases := 0
	for _, isSysAdmin := range []bool{false, true} {
		for _, isOwner := range []bool{false, true} {
			for _, memberRole := range memberRoles {
				principal := &Principal{UserID: uuid.New(), Role: identity.PlatformRoleUser}
				if isSysAdmin {
					principal.Role = identity.PlatformRoleSystemAdmin
				}
				if isOwner {
					principal.UserID = ownerID
				}
				var membership *tenancy.Membership
				if memberRole != "" {
					membership = &tenancy.Membership{UserID: principal.UserID, CompanyID: company.ID, Role: memberRole}
				}

				for _, allowSysAdmin := range []bool{false, true} {
					for _, allowOwner := range []bool{false, true} {
						for _, allowed := range roleSubsets() {
							policy := Policy{AllowedRoles: allowed, AllowOwner: allowOwner, AllowSystemAdmin: allowSysAdmin}

							roleMatch := false
							for _, r := range allowed {
								if r == memberRole {
									roleMatch = true
								}
							}
							want := (allowSysAdmin && isSysAdmin) || (allowOwner && isOwner) || roleMatch

							name := fmt.Sprintf("sys=%v owner=%v role=%q allowSys=%v allowOwner=%v allowed=%v",
								isSysAdmin, isOwner, memberRole, allowSysAdmin, allowOwner, allowed)
							assert.Equal(t, want, CheckPermission(principal, company, membership, policy), name)
							cases++
						}
					}
				}
			}
		}
	}
	assert.Equal(t, 2*2*4*2*2*8, cases)
}

func TestCheckPermission_NilInputs(t *testing.T) {
	company := newCompany(t, uuid.New())
	admin := &Principal{UserID: uuid.New(), Role: identity.PlatformRoleSystemAdmin}

	assert.False(t, CheckPermission(nil, company, nil, ReadPolicy))
	assert.False(t, CheckPermission(admin, nil, nil, ReadPolicy))
}

func TestCheckPermission_IgnoresForeignMembership(t *testing.T) {
	companyA := newCompany(t, uuid.New())
	companyB := newCompany(t, uuid.New())
	principal := &Principal{UserID: uuid.New(), Role: identity.PlatformRoleUser}

	t.Run("membership of another company", func(t *testing.T) {
		m := &tenancy.Membership{UserID: principal.UserID, CompanyID: companyB.ID, Role: tenancy.CompanyRoleAdmin}
		assert.False(t, CheckPermission(principal, companyA, m, ReadPolicy))
	})

	t.Run("membership of another user", func(t *testing.T) {
		m := &tenancy.Membership{UserID: uuid.New(), CompanyID: companyA.ID, Role: tenancy.CompanyRoleAdmin}
		assert.False(t, CheckPermission(principal, companyA, m, ReadPolicy))
	})
}

func TestPredefinedPolicies(t *testing.T) {
	ownerID := uuid.New()
	company := newCompany(t, ownerID)

	principalWith := func(role tenancy.CompanyRole) (*Principal, *tenancy.Membership) {
		p := &Principal{UserID: uuid.New(), Role: identity.PlatformRoleUser}
		return p, &tenancy.Membership{UserID: p.UserID, CompanyID: company.ID, Role: role}
	}

	tests := []struct {
		policy Policy
		admin  bool
		editor bool
		viewer bool
	}{
		{ReadPolicy, true, true, true},
		{WritePolicy, true, true, false},
		{AdminPolicy, true, false, false},
		{OwnerPolicy, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.policy.Name, func(t *testing.T) {
			p, m := principalWith(tenancy.CompanyRoleAdmin)
			assert.Equal(t, tt.admin, CheckPermission(p, company, m, tt.policy))
			p, m = principalWith(tenancy.CompanyRoleEditor)
			assert.Equal(t, tt.editor, CheckPermission(p, company, m, tt.policy))
			p, m = principalWith(tenancy.CompanyRoleViewer)
			assert.Equal(t, tt.viewer, CheckPermission(p, company, m, tt.policy))

			owner := &Principal{UserID: ownerID, Role: identity.PlatformRoleUser}
			assert.True(t, CheckPermission(owner, company, nil, tt.policy))

			sysadmin := &Principal{UserID: uuid.New(), Role: identity.PlatformRoleSystemAdmin}
			assert.True(t, CheckPermission(sysadmin, company, nil, tt.policy))

			stranger := &Principal{UserID: uuid.New(), Role: identity.PlatformRoleUser}
			assert.False(t, CheckPermission(stranger, company, nil, tt.policy))
		})
	}
}

func TestEffectiveRole(t *testing.T) {
	ownerID := uuid.New()
	company := newCompany(t, ownerID)

	owner := &Principal{UserID: ownerID}
	assert.Equal(t, tenancy.CompanyRoleOwner, EffectiveRole(owner, company, nil))

	editor := &Principal{UserID: uuid.New()}
	m := &tenancy.Membership{UserID: editor.UserID, CompanyID: company.ID, Role: tenancy.CompanyRoleEditor}
	assert.Equal(t, tenancy.CompanyRoleEditor, EffectiveRole(editor, company, m))

	stranger := &Principal{UserID: uuid.New()}
	assert.Equal(t, tenancy.CompanyRole(""), EffectiveRole(stranger, company, nil))
	assert.Equal(t, tenancy.CompanyRole(""), EffectiveRole(nil, company, nil))
}

func TestRequireSystemAdmin(t *testing.T) {
	assert.False(t, RequireSystemAdmin(nil))
	assert.False(t, RequireSystemAdmin(&Principal{UserID: uuid.New(), Role: identity.PlatformRoleUser}))
	assert.True(t, RequireSystemAdmin(&Principal{UserID: uuid.New(), Role: identity.PlatformRoleSystemAdmin}))
}
