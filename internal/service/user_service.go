package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "authapp/internal/errors"
	"authapp/internal/model"
	"authapp/internal/repository"
)

// UserDetails carries the mutable profile fields.
type UserDetails struct {
	FullName     string
	Gender       string
	DateOfBirth  *time.Time
	FbLink       string
	LinkedinLink string
	Image        string
}

// UserService handles profile reads and updates. Ownership is enforced by
// construction: the ID always comes from validated session claims.
type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, details UserDetails) (*model.User, error)
	SetImage(ctx context.Context, id uuid.UUID, imageURL string) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateDetails(ctx context.Context, id uuid.UUID, details UserDetails) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FullName = details.FullName
	user.Gender = details.Gender
	user.DateOfBirth = details.DateOfBirth
	user.FbLink = details.FbLink
	user.LinkedinLink = details.LinkedinLink
	if details.Image != "" && details.Image != user.Image {
		user.Image = details.Image
		user.ImageManaged = true
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user details: %w", err)
	}
	return user, nil
}

// SetImage records an uploaded profile picture. A managed image is never
// overwritten by OAuth avatar refreshes.
func (s *userService) SetImage(ctx context.Context, id uuid.UUID, imageURL string) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Image = imageURL
	user.ImageManaged = true

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user image: %w", err)
	}
	return user, nil
}
