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

// DenialRecorder counts authorization denials
type DenialRecorder interface {
	RecordAuthzDenial(ctx context.Context, operation, policy string)
}

// Access is the outcome of a granted authorization check
type Access struct {
	Company    *tenancy.Company
	Membership *tenancy.Membership
	Role       tenancy.CompanyRole
}

// Authorizer resolves a company and decides whether a principal may act on it.
// Checks run in a fixed order: authentication, company existence, then policy.
type Authorizer struct {
	companyRepo    tenancy.CompanyRepository
	membershipRepo tenancy.MembershipRepository
	denials        DenialRecorder
	logger         *zap.Logger
}

// NewAuthorizer creates an Authorizer. denials may be nil.
func NewAuthorizer(
	companyRepo tenancy.CompanyRepository,
	membershipRepo tenancy.MembershipRepository,
	denials DenialRecorder,
	logger *zap.Logger,
) *Authorizer {
	return &Authorizer{
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		denials:        denials,
		logger:         logger,
	}
}

// Authorize returns the company when principal satisfies policy for companyID.
// operation only labels the denial log line and metric.
func (a *Authorizer) Authorize(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, policy authz.Policy, operation string) (*Access, error) {
	if principal == nil {
		return nil, shared.ErrUnauthorized
	}

	company, err := a.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	membership, err := a.membershipRepo.Find(ctx, principal.UserID, companyID)
	if err != nil {
		if !shared.IsNotFound(err) {
			return nil, err
		}
		membership = nil
	}

	if !authz.CheckPermission(principal, company, membership, policy) {
		logger.Enrich(ctx, a.logger).Warn("Authorization denied",
			zap.String("user_id", principal.UserID.String()),
			zap.String("company_id", companyID.String()),
			zap.String("operation", operation),
			zap.String("policy", policy.Name),
		)
		if a.denials != nil {
			a.denials.RecordAuthzDenial(ctx, operation, policy.Name)
		}
		return nil, shared.ErrForbidden
	}

	return &Access{
		Company:    company,
		Membership: membership,
		Role:       authz.EffectiveRole(principal, company, membership),
	}, nil
}

// RequireSystemAdmin guards platform-level operations
func (a *Authorizer) RequireSystemAdmin(ctx context.Context, principal *authz.Principal, operation string) error {
	if principal == nil {
		return shared.ErrUnauthorized
	}
	if !authz.RequireSystemAdmin(principal) {
		logger.Enrich(ctx, a.logger).Warn("Platform authorization denied",
			zap.String("user_id", principal.UserID.String()),
			zap.String("operation", operation),
		)
		if a.denials != nil {
			a.denials.RecordAuthzDenial(ctx, operation, "system_admin")
		}
		return shared.ErrForbidden
	}
	return nil
}
