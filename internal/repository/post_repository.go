package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"authapp/internal/model"
)

// PostRepository defines persistence operations on posts.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Post, error)
	LatestByCreator(ctx context.Context, creatorID uuid.UUID) (*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).
		Where("created_by_id = ?", creatorID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) LatestByCreator(ctx context.Context, creatorID uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Where("created_by_id = ?", creatorID).
		Order("created_at DESC").
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}
