package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	model "pinstack-post-page/internal/domain/models"
	output "pinstack-post-page/internal/domain/ports/output"
	"pinstack-post-page/internal/domain/ports/output/cache"
	"pinstack-post-page/internal/domain/ports/output/client"

	"github.com/soloda1/pinstack-proto-definitions/custom_errors"
)

// PostClientCacheDecorator serves ListPosts from the list cache and drops
// the cached list after every successful create. Cache failures never fail
// the underlying call.
type PostClientCacheDecorator struct {
	client    client.PostClient
	postCache cache.PostListCache
	log       output.Logger
	metrics   output.MetricsProvider
}

func NewPostClientCacheDecorator(
	client client.PostClient,
	postCache cache.PostListCache,
	log output.Logger,
	metrics output.MetricsProvider,
) client.PostClient {
	return &PostClientCacheDecorator{
		client:    client,
		postCache: postCache,
		log:       log,
		metrics:   metrics,
	}
}

func (d *PostClientCacheDecorator) ListPosts(ctx context.Context) ([]*model.Post, error) {
	d.log.Debug("Listing posts with cache decorator")

	cacheStart := time.Now()
	cached, err := d.postCache.GetPosts(ctx)
	d.metrics.RecordCacheOperationDuration("posts_get", time.Since(cacheStart))
	if err == nil {
		d.metrics.IncrementCacheHits()
		return cached, nil
	}

	if errors.Is(err, custom_errors.ErrCacheMiss) {
		d.metrics.IncrementCacheMisses()
	} else {
		d.log.Warn("Failed to get post list from cache", slog.String("error", err.Error()))
	}

	posts, err := d.client.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	setStart := time.Now()
	if err := d.postCache.SetPosts(ctx, posts); err != nil {
		d.log.Warn("Failed to cache post list", slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("posts_set", time.Since(setStart))

	return posts, nil
}

func (d *PostClientCacheDecorator) CreatePost(ctx context.Context, draft *model.Draft) (*model.Post, error) {
	d.log.Debug("Creating post with cache decorator", slog.Bool("has_image", draft.Image != nil))

	post, err := d.client.CreatePost(ctx, draft)
	if err != nil {
		return nil, err
	}

	deleteStart := time.Now()
	if err := d.postCache.DeletePosts(ctx); err != nil {
		d.log.Warn("Failed to invalidate post list cache after create",
			slog.String("post_id", post.ID.String()),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("posts_delete", time.Since(deleteStart))

	return post, nil
}
