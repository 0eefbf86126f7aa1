package client

import (
	"context"

	model "pinstack-post-page/internal/domain/models"
)

//go:generate mockery --name PostClient --dir . --output ../../../../../mocks/client --outpkg mocks --with-expecter --filename PostClient.go
type PostClient interface {
	ListPosts(ctx context.Context) ([]*model.Post, error)
	CreatePost(ctx context.Context, draft *model.Draft) (*model.Post, error)
}
