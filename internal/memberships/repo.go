package memberships

import (
	"context"
	"fmt"

	"github.com/angelmondragon/homestock-backend/internal/repo"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes membership persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindHome loads the home a membership check refers to.
func (r *Repository) FindHome(ctx context.Context, homeID uuid.UUID) (*models.Home, error) {
	var home models.Home
	if err := r.DB(ctx).First(&home, "id = ?", homeID).Error; err != nil {
		return nil, err
	}
	return &home, nil
}

// GetMembership retrieves a membership by home and user.
func (r *Repository) GetMembership(ctx context.Context, homeID, userID uuid.UUID) (*models.HomeMember, error) {
	var membership models.HomeMember
	err := r.DB(ctx).
		Where("home_id = ? AND user_id = ?", homeID, userID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// CreateMembership persists a new membership record.
func (r *Repository) CreateMembership(ctx context.Context, homeID, userID uuid.UUID, role enums.MemberRole, invitedBy *uuid.UUID, status enums.MembershipStatus) (*models.HomeMember, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid member role %q", role)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid membership status %q", status)
	}

	membership := &models.HomeMember{
		HomeID:    homeID,
		UserID:    userID,
		Role:      role,
		Status:    status,
		InvitedBy: invitedBy,
	}
	if err := r.DB(ctx).Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

// UpdateStatus moves a membership to status and reports whether a row matched.
func (r *Repository) UpdateStatus(ctx context.Context, homeID, userID uuid.UUID, from, to enums.MembershipStatus) (bool, error) {
	res := r.DB(ctx).
		Model(&models.HomeMember{}).
		Where("home_id = ? AND user_id = ? AND status = ?", homeID, userID, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}

// DeleteMembership removes the user's membership in the home.
func (r *Repository) DeleteMembership(ctx context.Context, homeID, userID uuid.UUID) error {
	return r.DB(ctx).
		Where("home_id = ? AND user_id = ?", homeID, userID).
		Delete(&models.HomeMember{}).Error
}

// ListHomeMembers returns memberships for the home along with user metadata.
func (r *Repository) ListHomeMembers(ctx context.Context, homeID uuid.UUID) ([]MemberDTO, error) {
	var rows []memberRow
	err := r.DB(ctx).
		Model(&models.HomeMember{}).
		Select("home_members.*, users.email AS email, users.display_name AS display_name").
		Joins("JOIN users ON users.id = home_members.user_id").
		Where("home_members.home_id = ?", homeID).
		Order("home_members.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return memberRowsToDTO(rows), nil
}

// ListForHomes returns the raw memberships of every home in homeIDs.
func (r *Repository) ListForHomes(ctx context.Context, homeIDs []uuid.UUID) ([]models.HomeMember, error) {
	if len(homeIDs) == 0 {
		return nil, nil
	}
	var rows []models.HomeMember
	err := r.DB(ctx).
		Where("home_id IN ?", homeIDs).
		Order("created_at").
		Find(&rows).Error
	return rows, err
}
