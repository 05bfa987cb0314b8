package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/homestock-backend/pkg/db"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/homestock-backend/pkg/errors"
	"github.com/google/uuid"
)

type usersRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) error
	ListMemberships(ctx context.Context, userID uuid.UUID) ([]models.HomeMember, error)
}

// Service exposes the user directory.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*PublicUser, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*PublicUser, error)
}

type service struct {
	repo usersRepository
}

func NewService(repo usersRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

// Get returns the public projection of the user including memberships.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*PublicUser, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	memberships, err := s.repo.ListMemberships(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list memberships")
	}
	return FromModel(user, memberships), nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*PublicUser, error) {
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "displayName cannot be blank")
		}
		req.DisplayName = &name
	}
	if err := s.repo.UpdateProfile(ctx, id, req); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}
	return s.Get(ctx, id)
}
