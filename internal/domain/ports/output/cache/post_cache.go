package cache

import (
	"context"

	model "pinstack-post-page/internal/domain/models"
)

//go:generate mockery --name PostListCache --dir . --output ../../../../../mocks/cache --outpkg mocks --with-expecter --filename PostListCache.go
type PostListCache interface {
	GetPosts(ctx context.Context) ([]*model.Post, error)
	SetPosts(ctx context.Context, posts []*model.Post) error
	DeletePosts(ctx context.Context) error
}
