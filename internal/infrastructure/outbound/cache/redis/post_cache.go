package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	model "pinstack-post-page/internal/domain/models"
	ports "pinstack-post-page/internal/domain/ports/output"

	"github.com/soloda1/pinstack-proto-definitions/custom_errors"
)

const postListCacheKey = "posts:all"

type PostListCache struct {
	client *Client
	log    ports.Logger
	ttl    time.Duration
}

func NewPostListCache(client *Client, log ports.Logger, ttl time.Duration) *PostListCache {
	return &PostListCache{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

func (p *PostListCache) GetPosts(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	err := p.client.Get(ctx, postListCacheKey, &posts)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			p.log.Debug("Post list cache miss")
			return nil, custom_errors.ErrCacheMiss
		}
		p.log.Error("Failed to get post list from cache", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get post list from cache: %w", err)
	}

	p.log.Debug("Post list cache hit", slog.Int("posts_count", len(posts)))
	return posts, nil
}

func (p *PostListCache) SetPosts(ctx context.Context, posts []*model.Post) error {
	if posts == nil {
		posts = []*model.Post{}
	}

	if err := p.client.Set(ctx, postListCacheKey, posts, p.ttl); err != nil {
		p.log.Error("Failed to set post list cache", slog.String("error", err.Error()))
		return fmt.Errorf("failed to set post list cache: %w", err)
	}

	p.log.Debug("Post list cached successfully",
		slog.Int("posts_count", len(posts)),
		slog.Duration("ttl", p.ttl))
	return nil
}

func (p *PostListCache) DeletePosts(ctx context.Context) error {
	if err := p.client.Delete(ctx, postListCacheKey); err != nil {
		p.log.Error("Failed to delete post list from cache", slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete post list from cache: %w", err)
	}

	p.log.Debug("Post list deleted from cache")
	return nil
}
