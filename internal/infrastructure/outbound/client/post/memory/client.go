package post_memory

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"pinstack-post-page/internal/custom_errors"
	model "pinstack-post-page/internal/domain/models"
	ports "pinstack-post-page/internal/domain/ports/output"
)

// Client is an in-process post service used for local development.
// Posts are listed newest first.
type Client struct {
	log    ports.Logger
	mu     sync.RWMutex
	posts  []*model.Post
	nextID int64
	now    func() time.Time
}

func NewClient(log ports.Logger, seed ...*model.Post) *Client {
	c := &Client{
		log:    log,
		nextID: 1,
		now:    time.Now,
	}
	for _, post := range seed {
		stored := copyPost(post)
		if n, err := strconv.ParseInt(stored.ID.String(), 10, 64); err == nil && n >= c.nextID {
			c.nextID = n + 1
		}
		c.posts = append(c.posts, stored)
	}
	return c
}

func (c *Client) ListPosts(ctx context.Context) ([]*model.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", custom_errors.ErrTransport, err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*model.Post, len(c.posts))
	for i, post := range c.posts {
		result[i] = copyPost(post)
	}
	return result, nil
}

func (c *Client) CreatePost(ctx context.Context, draft *model.Draft) (*model.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", custom_errors.ErrTransport, err)
	}
	if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", custom_errors.ErrTransport)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	createdAt := c.now().UTC()
	post := &model.Post{
		ID:        model.PostID(strconv.FormatInt(c.nextID, 10)),
		Title:     draft.Title,
		Content:   draft.Content,
		CreatedAt: &createdAt,
	}
	if draft.Image != nil {
		post.ImageURL = dataURL(draft.Image)
	}
	c.nextID++

	c.posts = append([]*model.Post{post}, c.posts...)

	c.log.Debug("Post stored in memory", slog.String("post_id", post.ID.String()))
	return copyPost(post), nil
}

func dataURL(image *model.Image) string {
	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(image.Data)
}

func copyPost(post *model.Post) *model.Post {
	result := *post
	if post.Tags != nil {
		result.Tags = append([]string(nil), post.Tags...)
	}
	if post.CreatedAt != nil {
		createdAt := *post.CreatedAt
		result.CreatedAt = &createdAt
	}
	return &result
}
