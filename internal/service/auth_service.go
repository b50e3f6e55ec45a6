package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"authapp/internal/auth"
	apperrors "authapp/internal/errors"
	"authapp/internal/model"
	"authapp/internal/oauth"
	"authapp/internal/repository"
)

const bcryptCost = 10

// Notifier sends the transactional emails the auth flows trigger.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, email, name, token string) error
	SendWelcomeEmail(ctx context.Context, email, name string) error
}

// AuthService handles signup, sign-in and email verification.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	OAuthLogin(ctx context.Context, profile *oauth.Profile) (token string, user *model.User, err error)
	VerifyEmail(ctx context.Context, verificationToken string) (*model.User, error)
	ResendVerification(ctx context.Context, email string) error
	CheckEmail(ctx context.Context, email string) (bool, error)
}

type authService struct {
	users    repository.UserRepository
	jwt      *auth.JWTService
	notifier Notifier
	// genericLoginErrors hides the unknown-email / wrong-password
	// distinction to prevent account enumeration.
	genericLoginErrors bool
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService, notifier Notifier, genericLoginErrors bool) AuthService {
	return &authService{
		users:              users,
		jwt:                jwt,
		notifier:           notifier,
		genericLoginErrors: genericLoginErrors,
	}
}

// Signup creates an unverified credential account and sends the verification
// email. When the email cannot be sent the freshly created row is deleted and
// the signup reported as failed; a retry starts from scratch.
func (s *authService) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	// Pre-check for a friendlier 409; the unique index on email is the real
	// guard under races.
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	passwordHash := string(hashed)
	verificationToken := uuid.New().String()

	user := &model.User{
		ID:                uuid.New(),
		Name:              name,
		Email:             email,
		PasswordHash:      &passwordHash,
		IsVerified:        false,
		VerificationToken: &verificationToken,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.notifier.SendVerificationEmail(ctx, email, name, verificationToken); err != nil {
		log.Printf("verification email for %s failed, rolling back signup: %v", email, err)
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			log.Printf("signup rollback for %s failed: %v", email, delErr)
		}
		return nil, apperrors.ErrEmailSendFailed
	}

	return user, nil
}

// Login evaluates a credential sign-in attempt. The check order gives the
// most specific user-facing message; generic mode collapses the first and
// last into one.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, s.credentialError(apperrors.ErrUnknownEmail)
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !user.HasPassword() {
		return "", nil, apperrors.ErrSocialAccountOnly
	}

	if !user.IsVerified {
		return "", nil, apperrors.ErrEmailNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return "", nil, s.credentialError(apperrors.ErrInvalidPassword)
	}

	token, err := s.jwt.GenerateSessionToken(user.ID, user.Email, user.IsVerified, user.Image)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	return token, user, nil
}

func (s *authService) credentialError(err error) error {
	if s.genericLoginErrors {
		return apperrors.ErrInvalidCredentials
	}
	return err
}

// OAuthLogin admits a provider-asserted identity, creating or linking the
// local account. OAuth accounts are always verified.
func (s *authService) OAuthLogin(ctx context.Context, profile *oauth.Profile) (string, *model.User, error) {
	if profile.Email == "" {
		return "", nil, apperrors.ErrProviderEmailMissing
	}

	user, err := s.users.FindByEmail(ctx, profile.Email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		now := time.Now()
		user = &model.User{
			ID:            uuid.New(),
			Email:         profile.Email,
			Name:          profile.Name,
			Image:         profile.AvatarURL,
			IsVerified:    true,
			EmailVerified: &now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return "", nil, fmt.Errorf("create oauth user: %w", err)
		}
		s.sendWelcome(user.Email, user.Name)

	case err != nil:
		return "", nil, fmt.Errorf("find user: %w", err)

	default:
		wasVerified := user.IsVerified
		user.IsVerified = true
		if user.EmailVerified == nil {
			now := time.Now()
			user.EmailVerified = &now
		}
		user.VerificationToken = nil
		if profile.Name != "" && user.Name == "" {
			user.Name = profile.Name
		}
		if profile.AvatarURL != "" && !user.ImageManaged {
			user.Image = profile.AvatarURL
		}
		if err := s.users.Update(ctx, user); err != nil {
			return "", nil, fmt.Errorf("update oauth user: %w", err)
		}
		if !wasVerified {
			s.sendWelcome(user.Email, user.Name)
		}
	}

	token, err := s.jwt.GenerateSessionToken(user.ID, user.Email, user.IsVerified, user.Image)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	return token, user, nil
}

// VerifyEmail consumes a verification token. The conditional update in the
// repository guarantees a token verifies at most one request even under
// concurrent consumption.
func (s *authService) VerifyEmail(ctx context.Context, verificationToken string) (*model.User, error) {
	pending, err := s.users.FindByVerificationToken(ctx, verificationToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("find verification token: %w", err)
	}
	if pending.IsVerified {
		return nil, apperrors.ErrAlreadyVerified
	}

	user, err := s.users.ConsumeVerificationToken(ctx, verificationToken, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A concurrent request consumed the token first.
			return nil, apperrors.ErrAlreadyVerified
		}
		return nil, fmt.Errorf("consume verification token: %w", err)
	}

	// Welcome is keyed to the false -> true transition, so the losing side of
	// a race never triggers a duplicate send.
	s.sendWelcome(user.Email, user.Name)

	return user, nil
}

// ResendVerification rotates the pending token and sends a fresh verification
// email. The old link stops working immediately.
func (s *authService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUnknownEmail
		}
		return fmt.Errorf("find user: %w", err)
	}
	if !user.HasPassword() {
		return apperrors.ErrSocialAccountOnly
	}
	if user.IsVerified {
		return apperrors.ErrAlreadyVerified
	}

	token := uuid.New().String()
	if err := s.users.SetVerificationToken(ctx, user.ID, token); err != nil {
		return fmt.Errorf("rotate verification token: %w", err)
	}

	if err := s.notifier.SendVerificationEmail(ctx, user.Email, user.Name, token); err != nil {
		log.Printf("verification email resend for %s failed: %v", email, err)
		return apperrors.ErrEmailSendFailed
	}
	return nil
}

// CheckEmail reports whether an account exists for the email.
func (s *authService) CheckEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find user: %w", err)
	}
	return true, nil
}

// sendWelcome dispatches the welcome email without blocking the caller.
// Failures are logged and swallowed.
func (s *authService) sendWelcome(email, name string) {
	go func() {
		if err := s.notifier.SendWelcomeEmail(context.Background(), email, name); err != nil {
			log.Printf("welcome email to %s failed: %v", email, err)
		}
	}()
}
