package post_http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/go-playground/validator/v10"

	"pinstack-post-page/internal/custom_errors"
	model "pinstack-post-page/internal/domain/models"
	ports "pinstack-post-page/internal/domain/ports/output"
	post_client "pinstack-post-page/internal/infrastructure/outbound/client/post"
)

const (
	listPostsPath  = "/post"
	createPostPath = "/post/createPost"

	maxErrorBodyBytes = 512
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
	log        ports.Logger
	metrics    ports.MetricsProvider
}

func NewClient(baseURL string, httpClient *http.Client, validate *validator.Validate, log ports.Logger, metrics ports.MetricsProvider) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		validate:   validate,
		log:        log,
		metrics:    metrics,
	}
}

func (c *Client) ListPosts(ctx context.Context) (posts []*model.Post, err error) {
	start := time.Now()
	defer func() { c.record("list_posts", start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+listPostsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", custom_errors.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	if err := c.do(req, &posts); err != nil {
		return nil, err
	}

	if err := post_client.ValidatePosts(c.validate, posts...); err != nil {
		c.log.Warn("Post service returned malformed posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrTransport, err)
	}
	if posts == nil {
		posts = []*model.Post{}
	}

	c.log.Debug("Listed posts", slog.Int("posts_count", len(posts)))
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, draft *model.Draft) (post *model.Post, err error) {
	start := time.Now()
	defer func() { c.record("create_post", start, err) }()

	body, contentType, err := encodeDraft(draft)
	if err != nil {
		return nil, fmt.Errorf("%w: encode form: %v", custom_errors.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+createPostPath, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", custom_errors.ErrTransport, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	if err := c.do(req, &post); err != nil {
		return nil, err
	}

	if post == nil {
		return nil, fmt.Errorf("%w: %w: empty create response", custom_errors.ErrTransport, custom_errors.ErrMalformedPost)
	}
	if err := post_client.ValidatePosts(c.validate, post); err != nil {
		c.log.Warn("Post service returned malformed created post", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrTransport, err)
	}

	c.log.Debug("Created post", slog.String("post_id", post.ID.String()), slog.Bool("has_image", post.ImageURL != ""))
	return post, nil
}

func (c *Client) do(req *http.Request, dest any) error {
	if identity := model.IdentityFromContext(req.Context()); identity.Token != "" {
		req.Header.Set("Authorization", "Bearer "+identity.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Post service request failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", custom_errors.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.log.Error("Post service returned error status",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(snippet)))
		return fmt.Errorf("%w: %s %s returned status %d", custom_errors.ErrTransport, req.Method, req.URL.Path, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", custom_errors.ErrTransport, err)
	}

	if err := json.Unmarshal(unwrapEnvelope(raw), dest); err != nil {
		return fmt.Errorf("%w: %w: %v", custom_errors.ErrTransport, custom_errors.ErrMalformedPost, err)
	}
	return nil
}

func (c *Client) record(operation string, start time.Time, err error) {
	c.metrics.IncrementPostClientRequests(operation, err == nil)
	c.metrics.RecordPostClientRequestDuration(operation, time.Since(start))
}

// unwrapEnvelope returns the payload of a {"data": ...} envelope, or raw
// unchanged when the body is not such an envelope.
func unwrapEnvelope(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return trimmed
	}
	if data, ok := envelope["data"]; ok {
		return data
	}
	return trimmed
}

func encodeDraft(draft *model.Draft) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	if err := writer.WriteField("title", draft.Title); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("content", draft.Content); err != nil {
		return nil, "", err
	}

	if draft.Image != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename=%q`, imageFilename(draft.Image)))
		contentType := draft.Image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(draft.Image.Data); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}

func imageFilename(image *model.Image) string {
	if image.Filename == "" {
		return "image"
	}
	return image.Filename
}
