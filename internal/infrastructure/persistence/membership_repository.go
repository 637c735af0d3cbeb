package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMembershipRepository implements tenancy.MembershipRepository using GORM
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GormMembershipRepository
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// Find returns the membership for (userID, companyID)
func (r *GormMembershipRepository) Find(ctx context.Context, userID, companyID uuid.UUID) (*tenancy.Membership, error) {
	var model models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&model).Error; err != nil {
		return nil, translateNotFound(err, "membership")
	}
	return model.ToDomain(), nil
}

// ListByCompany returns members with their account details, ordered by username
func (r *GormMembershipRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*tenancy.MemberDetail, error) {
	var rows []models.MemberDetailRow
	if err := r.db.WithContext(ctx).
		Table("company_memberships m").
		Select("m.user_id, m.company_id, m.role_in_company, m.joined_at, u.username, u.email").
		Joins("JOIN users u ON u.id = m.user_id").
		Where("m.company_id = ?", companyID).
		Order("u.username ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*tenancy.MemberDetail, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// ListByUser returns every membership held by userID
func (r *GormMembershipRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*tenancy.Membership, error) {
	var rows []models.MembershipModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*tenancy.Membership, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Save inserts a membership or updates the role of an existing one
func (r *GormMembershipRepository) Save(ctx context.Context, membership *tenancy.Membership) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role_in_company"}),
		}).
		Create(models.MembershipModelFromDomain(membership)).Error
}

// Delete removes a membership
func (r *GormMembershipRepository) Delete(ctx context.Context, userID, companyID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Delete(&models.MembershipModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("membership not found")
	}
	return nil
}

// DeleteByUser removes every membership held by userID
func (r *GormMembershipRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.MembershipModel{}).Error
}

var _ tenancy.MembershipRepository = (*GormMembershipRepository)(nil)
