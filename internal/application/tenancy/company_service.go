package tenancy

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CompanyService handles company lifecycle operations
type CompanyService struct {
	companyRepo    tenancy.CompanyRepository
	membershipRepo tenancy.MembershipRepository
	authorizer     *Authorizer
	logger         *zap.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(
	companyRepo tenancy.CompanyRepository,
	membershipRepo tenancy.MembershipRepository,
	authorizer *Authorizer,
	logger *zap.Logger,
) *CompanyService {
	return &CompanyService{
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		authorizer:     authorizer,
		logger:         logger,
	}
}

// Create creates a company owned by the principal
func (s *CompanyService) Create(ctx context.Context, principal *authz.Principal, name string) (*CompanyResponse, error) {
	if principal == nil {
		return nil, shared.ErrUnauthorized
	}

	company, err := tenancy.NewCompany(name, principal.UserID)
	if err != nil {
		return nil, err
	}

	taken, err := s.companyRepo.ExistsByName(ctx, company.Name, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewConflictError("Company name '" + company.Name + "' already exists")
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Company created",
		zap.String("company_id", company.ID.String()),
		zap.String("owner_id", company.OwnerID.String()),
	)

	resp := ToCompanyResponse(company, tenancy.CompanyRoleOwner)
	return &resp, nil
}

// List returns the companies visible to the principal. System admins see all of them.
func (s *CompanyService) List(ctx context.Context, principal *authz.Principal) ([]CompanyResponse, error) {
	if principal == nil {
		return nil, shared.ErrUnauthorized
	}

	var (
		companies []*tenancy.Company
		err       error
	)
	if principal.IsSystemAdmin() {
		companies, err = s.companyRepo.FindAll(ctx)
	} else {
		companies, err = s.companyRepo.FindAccessibleByUser(ctx, principal.UserID)
	}
	if err != nil {
		return nil, err
	}

	memberships, err := s.membershipRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	byCompany := make(map[uuid.UUID]*tenancy.Membership, len(memberships))
	for _, m := range memberships {
		byCompany[m.CompanyID] = m
	}

	out := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		out[i] = ToCompanyResponse(c, authz.EffectiveRole(principal, c, byCompany[c.ID]))
	}
	return out, nil
}

// Get returns a company with the caller's effective role
func (s *CompanyService) Get(ctx context.Context, principal *authz.Principal, companyID uuid.UUID) (*CompanyResponse, error) {
	access, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "company.get")
	if err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(access.Company, access.Role)
	return &resp, nil
}

// Rename changes the company name
func (s *CompanyService) Rename(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, name string) (*CompanyResponse, error) {
	access, err := s.authorizer.Authorize(ctx, principal, companyID, authz.AdminPolicy, "company.update")
	if err != nil {
		return nil, err
	}

	company := access.Company
	if err := company.Rename(name); err != nil {
		return nil, err
	}

	taken, err := s.companyRepo.ExistsByName(ctx, company.Name, &company.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewConflictError("Company name '" + company.Name + "' already exists")
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Company renamed", zap.String("company_id", company.ID.String()))

	resp := ToCompanyResponse(company, access.Role)
	return &resp, nil
}

// Delete removes the company and all records it owns
func (s *CompanyService) Delete(ctx context.Context, principal *authz.Principal, companyID uuid.UUID) error {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.OwnerPolicy, "company.delete"); err != nil {
		return err
	}

	if err := s.companyRepo.Delete(ctx, companyID); err != nil {
		return err
	}

	logger.Enrich(ctx, s.logger).Info("Company deleted",
		zap.String("company_id", companyID.String()),
		zap.String("deleted_by", principal.UserID.String()),
	)
	return nil
}
