package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/feedme/feedme/internal/api/apperr"
	"github.com/feedme/feedme/internal/api/domain"
	"github.com/feedme/feedme/internal/api/store"
	"github.com/feedme/feedme/pkg/cryptox"
)

// UserUpdate carries the mutable user fields; nil means leave unchanged.
type UserUpdate struct {
	Name     *string
	Picture  *string
	Password *string
	Role     *domain.Role
}

type UserService struct {
	Store store.Store

	Now func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, apperr.NotFound("User not found")
		}
		return domain.User{}, err
	}
	return u, nil
}

// ListUsers pages through all users, admin only at the HTTP layer.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.Store.Users().ListUsers(ctx, limit, offset)
}

// UpdateUser applies a partial update. Only the owner or an admin may
// call it, and only admins may change roles.
func (s *UserService) UpdateUser(ctx context.Context, ident domain.Identity, userID string, update UserUpdate) (domain.User, error) {
	if !ident.Owns(userID) {
		return domain.User{}, apperr.Forbidden("You may only update your own account")
	}
	if update.Role != nil && !ident.IsAdmin() {
		return domain.User{}, apperr.Forbidden("Only admins may change roles")
	}

	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return domain.User{}, apperr.BadRequest("Name cannot be empty")
		}
		u.Name = name
	}
	if update.Picture != nil {
		u.Picture = *update.Picture
	}
	if update.Password != nil {
		if len(*update.Password) < minPasswordLength {
			return domain.User{}, apperr.BadRequest("Password must be at least 6 characters")
		}
		hash, err := cryptox.HashPassword(*update.Password)
		if err != nil {
			return domain.User{}, err
		}
		u.PasswordHash = hash
	}
	if update.Role != nil {
		if !update.Role.Valid() {
			return domain.User{}, apperr.BadRequest("Invalid role")
		}
		u.Role = *update.Role
	}

	u.UpdatedAt = s.now()
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// DeleteUser removes an account and cascades to its recipes, inventory
// and meal plans.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	err := s.Store.Users().DeleteUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("User not found")
	}
	return err
}
