package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents one account. PasswordHash is nil for accounts created
// through an OAuth provider; such accounts are always verified.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash *string   `json:"-" gorm:"size:255"`
	Name         string    `json:"name" gorm:"size:255"`

	Image string `json:"image,omitempty" gorm:"size:512"`
	// ImageManaged is set once the user uploads their own picture; OAuth
	// sign-ins must not overwrite a managed image with the provider avatar.
	ImageManaged bool `json:"-" gorm:"default:false"`

	IsVerified    bool       `json:"isVerified" gorm:"default:false"`
	EmailVerified *time.Time `json:"emailVerified,omitempty"`
	// VerificationToken is present only while a verification is pending.
	VerificationToken *string `json:"-" gorm:"uniqueIndex;size:64"`

	FullName     string     `json:"fullName,omitempty" gorm:"size:255"`
	Gender       string     `json:"gender,omitempty" gorm:"size:32"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	FbLink       string     `json:"fbLink,omitempty" gorm:"size:512"`
	LinkedinLink string     `json:"linkedinLink,omitempty" gorm:"size:512"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns an ID when the caller did not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// HasPassword reports whether this is a credential account.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
