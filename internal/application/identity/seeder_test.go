package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedInput() SeedInput {
	return SeedInput{
		Username:    "admin",
		Email:       "admin@example.com",
		Password:    "adminpassword",
		CompanyName: "Default Company",
	}
}

func TestSeeder_FirstRunCreatesAdminAndCompany(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	companyRepo := new(MockCompanyRepository)

	var saved *identity.User
	userRepo.On("FindByUsername", ctx, "admin").Return(nil, shared.ErrNotFound)
	userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*identity.User) }).
		Return(nil)
	companyRepo.On("ExistsByName", ctx, "Default Company", (*uuid.UUID)(nil)).Return(false, nil)
	companyRepo.On("Save", ctx, mock.MatchedBy(func(c *tenancy.Company) bool {
		return c.Name == "Default Company" && saved != nil && c.OwnerID == saved.ID
	})).Return(nil)

	result, err := NewSeeder(userRepo, companyRepo, zap.NewNop()).Run(ctx, seedInput())

	require.NoError(t, err)
	assert.True(t, result.AdminCreated)
	assert.True(t, result.CompanyCreated)
	assert.Equal(t, identity.PlatformRoleSystemAdmin.String(), result.Admin.Role)
	assert.NotEmpty(t, result.CompanyID)
	require.NotNil(t, saved)
	assert.True(t, saved.VerifyPassword("adminpassword"))
	userRepo.AssertExpectations(t)
	companyRepo.AssertExpectations(t)
}

func TestSeeder_SecondRunIsNoOp(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	companyRepo := new(MockCompanyRepository)

	admin, err := identity.NewUser("admin", "admin@example.com", "adminpassword", identity.PlatformRoleSystemAdmin)
	require.NoError(t, err)
	company, err := tenancy.NewCompany("Default Company", admin.ID)
	require.NoError(t, err)

	userRepo.On("FindByUsername", ctx, "admin").Return(admin, nil)
	companyRepo.On("ExistsByName", ctx, "Default Company", (*uuid.UUID)(nil)).Return(true, nil)
	companyRepo.On("FindAccessibleByUser", ctx, admin.ID).Return([]*tenancy.Company{company}, nil)

	result, err := NewSeeder(userRepo, companyRepo, zap.NewNop()).Run(ctx, seedInput())

	require.NoError(t, err)
	assert.False(t, result.AdminCreated)
	assert.False(t, result.CompanyCreated)
	assert.Equal(t, company.ID.String(), result.CompanyID)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	companyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSeeder_RequiresPassword(t *testing.T) {
	input := seedInput()
	input.Password = ""

	_, err := NewSeeder(new(MockUserRepository), new(MockCompanyRepository), zap.NewNop()).Run(context.Background(), input)

	require.Error(t, err)
	assert.Equal(t, "INVALID_PASSWORD", domainCode(t, err))
}
