package testutil

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	apptenancy "github.com/ledgerbook/backend/internal/application/tenancy"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// CompanyStore is an in-memory tenancy.CompanyRepository
type CompanyStore struct {
	mu        sync.Mutex
	companies map[uuid.UUID]*tenancy.Company
}

// NewCompanyStore creates an empty CompanyStore
func NewCompanyStore() *CompanyStore {
	return &CompanyStore{companies: make(map[uuid.UUID]*tenancy.Company)}
}

func (s *CompanyStore) FindByID(_ context.Context, id uuid.UUID) (*tenancy.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[id]
	if !ok {
		return nil, shared.NewNotFoundError("Company not found")
	}
	cp := *c
	return &cp, nil
}

func (s *CompanyStore) FindAll(_ context.Context) ([]*tenancy.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*tenancy.Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *CompanyStore) FindAccessibleByUser(ctx context.Context, userID uuid.UUID) ([]*tenancy.Company, error) {
	all, _ := s.FindAll(ctx)
	out := make([]*tenancy.Company, 0, len(all))
	for _, c := range all {
		if c.IsOwnedBy(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CompanyStore) ExistsByName(_ context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.companies {
		if c.Name == name && (excludeID == nil || c.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (s *CompanyStore) CountOwnedBy(_ context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, c := range s.companies {
		if c.IsOwnedBy(userID) {
			n++
		}
	}
	return n, nil
}

func (s *CompanyStore) Save(_ context.Context, company *tenancy.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *company
	s.companies[company.ID] = &cp
	return nil
}

func (s *CompanyStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.companies, id)
	return nil
}

type membershipKey struct {
	user    uuid.UUID
	company uuid.UUID
}

// MembershipStore is an in-memory tenancy.MembershipRepository
type MembershipStore struct {
	mu      sync.Mutex
	members map[membershipKey]*tenancy.Membership
}

// NewMembershipStore creates an empty MembershipStore
func NewMembershipStore() *MembershipStore {
	return &MembershipStore{members: make(map[membershipKey]*tenancy.Membership)}
}

func (s *MembershipStore) Find(_ context.Context, userID, companyID uuid.UUID) (*tenancy.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[membershipKey{userID, companyID}]
	if !ok {
		return nil, shared.NewNotFoundError("Membership not found")
	}
	cp := *m
	return &cp, nil
}

func (s *MembershipStore) ListByCompany(_ context.Context, companyID uuid.UUID) ([]*tenancy.MemberDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*tenancy.MemberDetail, 0)
	for k, m := range s.members {
		if k.company == companyID {
			out = append(out, &tenancy.MemberDetail{Membership: *m})
		}
	}
	return out, nil
}

func (s *MembershipStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*tenancy.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*tenancy.Membership, 0)
	for k, m := range s.members {
		if k.user == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *MembershipStore) Save(_ context.Context, membership *tenancy.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *membership
	s.members[membershipKey{membership.UserID, membership.CompanyID}] = &cp
	return nil
}

func (s *MembershipStore) Delete(_ context.Context, userID, companyID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, membershipKey{userID, companyID})
	return nil
}

func (s *MembershipStore) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.members {
		if k.user == userID {
			delete(s.members, k)
		}
	}
	return nil
}

// Tenant is a company with its owner, backed by in-memory stores, plus an
// Authorizer reading from them.
type Tenant struct {
	Company     *tenancy.Company
	Owner       *authz.Principal
	Companies   *CompanyStore
	Memberships *MembershipStore
	Authorizer  *apptenancy.Authorizer
}

// NewTenant creates a company named name owned by a fresh user
func NewTenant(t *testing.T, name string) *Tenant {
	t.Helper()
	owner := &authz.Principal{UserID: uuid.New(), Role: identity.PlatformRoleUser}
	company, err := tenancy.NewCompany(name, owner.UserID)
	require.NoError(t, err)

	companies := NewCompanyStore()
	memberships := NewMembershipStore()
	require.NoError(t, companies.Save(context.Background(), company))

	return &Tenant{
		Company:     company,
		Owner:       owner,
		Companies:   companies,
		Memberships: memberships,
		Authorizer:  apptenancy.NewAuthorizer(companies, memberships, nil, zap.NewNop()),
	}
}

// ID returns the company id
func (tn *Tenant) ID() uuid.UUID {
	return tn.Company.ID
}

// Member adds a user holding role in the company and returns its principal
func (tn *Tenant) Member(t *testing.T, role tenancy.CompanyRole) *authz.Principal {
	t.Helper()
	p := &authz.Principal{UserID: uuid.New(), Role: identity.PlatformRoleUser}
	m, err := tenancy.NewMembership(p.UserID, tn.Company.ID, role)
	require.NoError(t, err)
	require.NoError(t, tn.Memberships.Save(context.Background(), m))
	return p
}

// Outsider returns a principal with no relation to the company
func (tn *Tenant) Outsider() *authz.Principal {
	return &authz.Principal{UserID: uuid.New(), Role: identity.PlatformRoleUser}
}

var (
	_ tenancy.CompanyRepository    = (*CompanyStore)(nil)
	_ tenancy.MembershipRepository = (*MembershipStore)(nil)
)
