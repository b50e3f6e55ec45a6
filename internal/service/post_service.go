package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"authapp/internal/model"
	"authapp/internal/repository"
)

// PostService handles the creator-owned post entity.
type PostService interface {
	Create(ctx context.Context, creatorID uuid.UUID, name string) (*model.Post, error)
	ListMine(ctx context.Context, creatorID uuid.UUID) ([]model.Post, error)
	LatestMine(ctx context.Context, creatorID uuid.UUID) (*model.Post, error)
}

type postService struct {
	posts repository.PostRepository
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, creatorID uuid.UUID, name string) (*model.Post, error) {
	post := &model.Post{
		Name:        name,
		CreatedByID: creatorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *postService) ListMine(ctx context.Context, creatorID uuid.UUID) ([]model.Post, error) {
	posts, err := s.posts.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// LatestMine returns nil without error when the user has no posts yet.
func (s *postService) LatestMine(ctx context.Context, creatorID uuid.UUID) (*model.Post, error) {
	post, err := s.posts.LatestByCreator(ctx, creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest post: %w", err)
	}
	return post, nil
}
