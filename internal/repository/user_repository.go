package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"authapp/internal/model"
)

// UserRepository defines persistence operations on user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	// SetVerificationToken replaces any pending token for the user.
	SetVerificationToken(ctx context.Context, id uuid.UUID, token string) error
	// ConsumeVerificationToken atomically marks the owning user verified and
	// clears the token. The conditional update guarantees that of two
	// concurrent consumers exactly one observes success; the loser gets
	// gorm.ErrRecordNotFound.
	ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (*model.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) SetVerificationToken(ctx context.Context, id uuid.UUID, token string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("verification_token", token).Error
}

func (r *userRepository) ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("verification_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}

	// The conditional predicate is the whole concurrency guard: a second
	// request carrying the same token matches zero rows.
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND verification_token = ? AND is_verified = ?", user.ID, token, false).
		Updates(map[string]interface{}{
			"is_verified":        true,
			"email_verified":     now,
			"verification_token": nil,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	user.IsVerified = true
	user.EmailVerified = &now
	user.VerificationToken = nil
	return &user, nil
}

func (r *userRepository) FindByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("verification_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
