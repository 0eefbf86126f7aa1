package post_grpc

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	pb "github.com/soloda1/pinstack-proto-definitions/gen/go/pinstack-proto-definitions/post/v1"
	"google.golang.org/grpc/status"

	"pinstack-post-page/internal/custom_errors"
	model "pinstack-post-page/internal/domain/models"
	ports "pinstack-post-page/internal/domain/ports/output"
	post_client "pinstack-post-page/internal/infrastructure/outbound/client/post"
)

const mediaTypeImage = "image"

// Client talks to the pinstack post service over gRPC. The service API
// carries media by URL only, so drafts with an attached file are rejected.
type Client struct {
	postService pb.PostServiceClient
	validate    *validator.Validate
	log         ports.Logger
}

func NewClient(postService pb.PostServiceClient, validate *validator.Validate, log ports.Logger) *Client {
	return &Client{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

func (c *Client) ListPosts(ctx context.Context) ([]*model.Post, error) {
	resp, err := c.postService.ListPosts(ctx, &pb.ListPostsRequest{})
	if err != nil {
		return nil, c.wrapError("ListPosts", err)
	}

	posts := make([]*model.Post, 0, len(resp.GetPosts()))
	for _, p := range resp.GetPosts() {
		posts = append(posts, postFromProto(p))
	}

	if err := post_client.ValidatePosts(c.validate, posts...); err != nil {
		c.log.Warn("Post service returned malformed posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrTransport, err)
	}

	c.log.Debug("Listed posts over gRPC",
		slog.Int("posts_count", len(posts)),
		slog.Int64("total", resp.GetTotal()))
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, draft *model.Draft) (*model.Post, error) {
	if draft.Image != nil {
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrTransport, custom_errors.ErrImageUnsupported)
	}

	identity := model.IdentityFromContext(ctx)
	resp, err := c.postService.CreatePost(ctx, &pb.CreatePostRequest{
		AuthorId: identity.UserID,
		Title:    draft.Title,
		Content:  draft.Content,
	})
	if err != nil {
		return nil, c.wrapError("CreatePost", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: %w: empty create response", custom_errors.ErrTransport, custom_errors.ErrMalformedPost)
	}

	post := postFromProto(resp)
	if err := post_client.ValidatePosts(c.validate, post); err != nil {
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrTransport, err)
	}

	c.log.Debug("Created post over gRPC", slog.String("post_id", post.ID.String()))
	return post, nil
}

func (c *Client) wrapError(method string, err error) error {
	st, _ := status.FromError(err)
	c.log.Error("Post service call failed",
		slog.String("method", method),
		slog.String("code", st.Code().String()),
		slog.String("error", st.Message()))
	return fmt.Errorf("%w: %s: %s", custom_errors.ErrTransport, st.Code(), st.Message())
}

func postFromProto(p *pb.Post) *model.Post {
	if p == nil {
		return nil
	}

	post := &model.Post{
		Title:   p.GetTitle(),
		Content: p.GetContent(),
	}
	if p.GetId() != 0 {
		post.ID = model.PostID(strconv.FormatInt(p.GetId(), 10))
	}
	if tags := p.GetTags(); len(tags) > 0 {
		post.Tags = append([]string(nil), tags...)
	}
	if p.GetCreatedAt() != nil {
		createdAt := p.GetCreatedAt().AsTime()
		post.CreatedAt = &createdAt
	}

	var position int32
	for _, m := range p.GetMedia() {
		if m.GetType() != mediaTypeImage || m.GetUrl() == "" {
			continue
		}
		if post.ImageURL == "" || m.GetPosition() < position {
			post.ImageURL = m.GetUrl()
			position = m.GetPosition()
		}
	}

	return post
}
