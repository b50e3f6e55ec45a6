package model

import (
	"time"

	"github.com/google/uuid"
)

// Post is owned exclusively by its creator.
type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	CreatedByID uuid.UUID `json:"createdById" gorm:"type:char(36);index;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
