package tenancy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMembershipService_AddOrUpdate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*authorizerFixture, *MockUserRepository, *MembershipService, *authz.Principal, *identity.User) {
		f := newAuthorizerFixture(t)
		users := new(MockUserRepository)
		svc := NewMembershipService(f.memberships, users, f.authorizer, zap.NewNop())
		owner := &authz.Principal{UserID: f.owner, Role: identity.PlatformRoleUser}
		f.memberships.On("Find", mock.Anything, f.owner, f.company.ID).Return(nil, shared.ErrNotFound)
		target, err := identity.NewUser("carol", "carol@example.com", "secret123", identity.PlatformRoleUser)
		require.NoError(t, err)
		users.On("FindByID", mock.Anything, target.ID).Return(target, nil)
		return f, users, svc, owner, target
	}

	t.Run("creates a new membership", func(t *testing.T) {
		f, _, svc, owner, target := setup(t)
		f.memberships.On("Find", mock.Anything, target.ID, f.company.ID).Return(nil, shared.ErrNotFound)
		f.memberships.On("Save", mock.Anything, mock.MatchedBy(func(m *tenancy.Membership) bool {
			return m.UserID == target.ID && m.Role == tenancy.CompanyRoleViewer
		})).Return(nil)

		resp, created, err := svc.AddOrUpdate(ctx, owner, f.company.ID, AddMemberInput{UserID: target.ID, RoleInCompany: "viewer"})

		require.NoError(t, err)
		assert.True(t, created)
		assert.NotNil(t, resp)
		f.memberships.AssertExpectations(t)
	})

	t.Run("changes the role of an existing member", func(t *testing.T) {
		f, _, svc, owner, target := setup(t)
		existing, err := tenancy.NewMembership(target.ID, f.company.ID, tenancy.CompanyRoleViewer)
		require.NoError(t, err)
		f.memberships.On("Find", mock.Anything, target.ID, f.company.ID).Return(existing, nil)
		f.memberships.On("Save", mock.Anything, existing).Return(nil)

		_, created, err := svc.AddOrUpdate(ctx, owner, f.company.ID, AddMemberInput{UserID: target.ID, RoleInCompany: "editor"})

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, tenancy.CompanyRoleEditor, existing.Role)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		f, _, svc, owner, target := setup(t)

		_, _, err := svc.AddOrUpdate(ctx, owner, f.company.ID, AddMemberInput{UserID: target.ID, RoleInCompany: "owner"})

		require.Error(t, err)
		f.memberships.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("owner cannot be given a membership", func(t *testing.T) {
		f, users, svc, owner, _ := setup(t)
		ownerUser, err := identity.NewUser("olivia", "olivia@example.com", "secret123", identity.PlatformRoleUser)
		require.NoError(t, err)
		ownerUser.ID = f.owner
		users.On("FindByID", mock.Anything, f.owner).Return(ownerUser, nil)

		_, _, err = svc.AddOrUpdate(ctx, owner, f.company.ID, AddMemberInput{UserID: f.owner, RoleInCompany: "admin"})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("editor is forbidden", func(t *testing.T) {
		f, _, svc, _, target := setup(t)
		editor := f.member(t, tenancy.CompanyRoleEditor)

		_, _, err := svc.AddOrUpdate(ctx, editor, f.company.ID, AddMemberInput{UserID: target.ID, RoleInCompany: "viewer"})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestMembershipService_Remove_OwnerProtected(t *testing.T) {
	f := newAuthorizerFixture(t)
	svc := NewMembershipService(f.memberships, new(MockUserRepository), f.authorizer, zap.NewNop())
	admin := f.member(t, tenancy.CompanyRoleAdmin)

	err := svc.Remove(context.Background(), admin, f.company.ID, f.owner)

	assert.ErrorIs(t, err, shared.ErrForbidden)
	f.memberships.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompanyService_Create_DuplicateName(t *testing.T) {
	f := newAuthorizerFixture(t)
	svc := NewCompanyService(f.companies, f.memberships, f.authorizer, zap.NewNop())
	f.companies.On("ExistsByName", mock.Anything, "Acme", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := svc.Create(context.Background(), &authz.Principal{UserID: uuid.New()}, "  Acme ")

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	f.companies.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCompanyService_Create_OwnerRole(t *testing.T) {
	f := newAuthorizerFixture(t)
	svc := NewCompanyService(f.companies, f.memberships, f.authorizer, zap.NewNop())
	principal := &authz.Principal{UserID: uuid.New()}
	f.companies.On("ExistsByName", mock.Anything, "Globex", (*uuid.UUID)(nil)).Return(false, nil)
	f.companies.On("Save", mock.Anything, mock.MatchedBy(func(c *tenancy.Company) bool {
		return c.OwnerID == principal.UserID
	})).Return(nil)

	resp, err := svc.Create(context.Background(), principal, "Globex")

	require.NoError(t, err)
	assert.Equal(t, "Globex", resp.Name)
	f.companies.AssertExpectations(t)
}

func TestCompanyService_List_SystemAdminSeesAll(t *testing.T) {
	f := newAuthorizerFixture(t)
	svc := NewCompanyService(f.companies, f.memberships, f.authorizer, zap.NewNop())
	admin := &authz.Principal{UserID: uuid.New(), Role: identity.PlatformRoleSystemAdmin}
	f.companies.On("FindAll", mock.Anything).Return([]*tenancy.Company{f.company}, nil)
	f.memberships.On("ListByUser", mock.Anything, admin.UserID).Return([]*tenancy.Membership{}, nil)

	out, err := svc.List(context.Background(), admin)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].MyRole)
	f.companies.AssertNotCalled(t, "FindAccessibleByUser", mock.Anything, mock.Anything)
}

func TestCompanyService_List_ReportsMemberRoles(t *testing.T) {
	f := newAuthorizerFixture(t)
	svc := NewCompanyService(f.companies, f.memberships, f.authorizer, zap.NewNop())
	user := &authz.Principal{UserID: uuid.New(), Role: identity.PlatformRoleUser}

	owned, err := tenancy.NewCompany("Globex", user.UserID)
	require.NoError(t, err)
	editorOf, err := tenancy.NewMembership(user.UserID, f.company.ID, tenancy.CompanyRoleEditor)
	require.NoError(t, err)

	f.companies.On("FindAccessibleByUser", mock.Anything, user.UserID).Return([]*tenancy.Company{f.company, owned}, nil)
	f.memberships.On("ListByUser", mock.Anything, user.UserID).Return([]*tenancy.Membership{editorOf}, nil)

	out, err := svc.List(context.Background(), user)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "editor", out[0].MyRole)
	assert.Equal(t, "owner", out[1].MyRole)
}

func TestCompanyService_Delete_AdminMemberForbidden(t *testing.T) {
	f := newAuthorizerFixture(t)
	svc := NewCompanyService(f.companies, f.memberships, f.authorizer, zap.NewNop())
	admin := f.member(t, tenancy.CompanyRoleAdmin)

	err := svc.Delete(context.Background(), admin, f.company.ID)

	assert.ErrorIs(t, err, shared.ErrForbidden)
	f.companies.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
