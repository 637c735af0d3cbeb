package identity

import (
	"context"
	"errors"

	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

// SeedInput names the initial administrator and the company it owns
type SeedInput struct {
	Username    string
	Email       string
	Password    string
	CompanyName string
}

// SeedResult reports what a seeding run created
type SeedResult struct {
	Admin          UserDTO
	AdminCreated   bool
	CompanyID      string
	CompanyCreated bool
}

// Seeder creates the bootstrap administrator and default company.
// Running it again leaves existing rows untouched.
type Seeder struct {
	userRepo    identity.UserRepository
	companyRepo tenancy.CompanyRepository
	logger      *zap.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(userRepo identity.UserRepository, companyRepo tenancy.CompanyRepository, logger *zap.Logger) *Seeder {
	return &Seeder{userRepo: userRepo, companyRepo: companyRepo, logger: logger}
}

// Run seeds the administrator, then the company owned by it
func (s *Seeder) Run(ctx context.Context, input SeedInput) (*SeedResult, error) {
	if input.Password == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Seed admin password is required")
	}

	result := &SeedResult{}
	admin, err := s.userRepo.FindByUsername(ctx, input.Username)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		admin, err = identity.NewUser(input.Username, input.Email, input.Password, identity.PlatformRoleSystemAdmin)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.Save(ctx, admin); err != nil {
			return nil, err
		}
		result.AdminCreated = true
		s.logger.Info("Admin user created", zap.String("user_id", admin.ID.String()))
	case err != nil:
		return nil, err
	default:
		s.logger.Info("Admin user already exists", zap.String("user_id", admin.ID.String()))
		if !admin.IsSystemAdmin() {
			s.logger.Warn("Existing seed user is not a system admin", zap.String("username", admin.Username))
		}
	}
	result.Admin = toUserDTO(admin)

	if input.CompanyName == "" {
		return result, nil
	}

	exists, err := s.companyRepo.ExistsByName(ctx, input.CompanyName, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		s.logger.Info("Default company already exists", zap.String("name", input.CompanyName))
		owned, err := s.companyRepo.FindAccessibleByUser(ctx, admin.ID)
		if err != nil {
			return nil, err
		}
		for _, c := range owned {
			if c.Name == input.CompanyName {
				result.CompanyID = c.ID.String()
			}
		}
		return result, nil
	}

	company, err := tenancy.NewCompany(input.CompanyName, admin.ID)
	if err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	result.CompanyID = company.ID.String()
	result.CompanyCreated = true
	s.logger.Info("Default company created",
		zap.String("company_id", company.ID.String()),
		zap.String("owner_id", admin.ID.String()))
	return result, nil
}
