package services

import (
	"context"

	"github.com/eakyurek/gradehub/internal/app/models"
	"github.com/eakyurek/gradehub/internal/app/models/dto"
	"github.com/eakyurek/gradehub/internal/pkg/apperrors"
	"github.com/eakyurek/gradehub/internal/pkg/logger"
)

// UserService handles admin-facing user management. Route-level role gating
// restricts every operation here to admins; the service itself only carries
// the data rules.
type UserService struct {
	users UserStore
}

// NewUserService creates a new user service
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// GetAll lists all users
func (s *UserService) GetAll(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromUser(u))
	}
	return out, nil
}

// GetByID retrieves a single user
func (s *UserService) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

// Update applies a partial update to a user. An empty patch returns the
// current row unchanged.
func (s *UserService) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	patch := models.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.RoleType != nil {
		role := models.RoleType(*req.RoleType)
		if !role.Valid() {
			return nil, apperrors.NewBadRequestError("invalid role type")
		}
		patch.RoleType = &role
	}

	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Msg("User updated")

	resp := dto.FromUser(user)
	return &resp, nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("userId", id).Msg("User deleted")
	return nil
}
