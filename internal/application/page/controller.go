package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"pinstack-post-page/internal/custom_errors"
	model "pinstack-post-page/internal/domain/models"
	ports "pinstack-post-page/internal/domain/ports/output"
	"pinstack-post-page/internal/domain/ports/output/client"
)

type Options struct {
	TimeLayout string
	Location   *time.Location
}

func (o Options) withDefaults() Options {
	if o.TimeLayout == "" {
		o.TimeLayout = time.DateTime
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// Controller owns the state of one post page: the post collection, the
// create form draft and the load, modal and submission states. All methods
// are safe for concurrent use. Network calls run without holding the lock.
type Controller struct {
	client   client.PostClient
	previews *PreviewStore
	validate *validator.Validate
	log      ports.Logger
	metrics  ports.MetricsProvider
	opts     Options

	lifetime context.Context
	cancel   context.CancelFunc

	mu         sync.Mutex
	closed     bool
	mounted    bool
	identity   model.Identity
	load       LoadState
	modal      ModalState
	submission SubmissionState
	posts      []*model.Post
	draft      model.Draft
	message    string
}

func NewController(
	postClient client.PostClient,
	previews *PreviewStore,
	validate *validator.Validate,
	identity model.Identity,
	log ports.Logger,
	metrics ports.MetricsProvider,
	opts Options,
) *Controller {
	lifetime, cancel := context.WithCancel(context.Background())
	return &Controller{
		client:   postClient,
		previews: previews,
		validate: validate,
		log:      log,
		metrics:  metrics,
		opts:     opts.withDefaults(),
		lifetime: lifetime,
		cancel:   cancel,
		identity: identity,
		load:     LoadLoading,
	}
}

// Mount fetches the post collection. Only the first call performs the fetch;
// a failed fetch is not retried.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return custom_errors.ErrControllerClosed
	}
	if c.mounted {
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	c.load = LoadLoading
	opCtx, cancel := c.operationContext(ctx)
	c.mu.Unlock()
	defer cancel()

	posts, err := c.client.ListPosts(opCtx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		c.log.Debug("Dropping post list received after teardown")
		return custom_errors.ErrControllerClosed
	}

	if err != nil {
		c.load = LoadFailed
		c.metrics.IncrementPageOperations("mount", false)
		c.log.Error("Failed to load posts", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", custom_errors.ErrFetch, err)
	}

	c.posts = posts
	c.load = LoadLoaded
	c.metrics.IncrementPageOperations("mount", true)
	c.log.Debug("Posts loaded", slog.Int("posts_count", len(posts)))
	return nil
}

// OpenModal shows the create form. The draft left by a cancelled form is kept.
// The form is only reachable once the posts are loaded.
func (c *Controller) OpenModal() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return custom_errors.ErrControllerClosed
	}
	if c.load != LoadLoaded {
		return nil
	}
	c.modal = ModalOpen
	return nil
}

// CancelModal hides the create form without touching the draft.
func (c *Controller) CancelModal() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return custom_errors.ErrControllerClosed
	}
	c.modal = ModalClosed
	return nil
}

// SetTitle replaces the draft title.
func (c *Controller) SetTitle(title string) error {
	return c.editDraft(func(d *model.Draft) { d.Title = title })
}

// SetContent replaces the draft content.
func (c *Controller) SetContent(content string) error {
	return c.editDraft(func(d *model.Draft) { d.Content = content })
}

// SelectImage replaces the draft image and its preview reference. A nil or
// empty image leaves the draft unchanged.
func (c *Controller) SelectImage(image *model.Image) error {
	if image.Size() == 0 {
		return nil
	}
	return c.editDraft(func(d *model.Draft) {
		c.previews.Release(d.ImagePreview)
		d.Image = image
		d.ImagePreview = c.previews.Create(image)
	})
}

func (c *Controller) editDraft(edit func(d *model.Draft)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return custom_errors.ErrControllerClosed
	}
	if c.submission == SubmissionSubmitting {
		return custom_errors.ErrSubmitInProgress
	}
	edit(&c.draft)
	return nil
}

// Submit validates the draft and creates the post. It is only accepted while
// the posts are loaded and the form is open. On success the created post is
// prepended to the collection, the form closes and the draft is cleared. On
// failure the form and the draft are left as they were.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return custom_errors.ErrControllerClosed
	}
	if c.load != LoadLoaded || c.modal != ModalOpen {
		c.mu.Unlock()
		return custom_errors.ErrFormNotOpen
	}
	if c.submission == SubmissionSubmitting {
		c.message = MessageSubmitInFlight
		c.mu.Unlock()
		return custom_errors.ErrSubmitInProgress
	}
	if err := c.validate.Struct(&c.draft); err != nil {
		c.message = MessageValidation
		c.metrics.IncrementPageOperations("validate", false)
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", custom_errors.ErrValidation, err)
	}

	draft := c.draft
	c.submission = SubmissionSubmitting
	c.message = ""
	opCtx, cancel := c.operationContext(ctx)
	c.mu.Unlock()
	defer cancel()

	post, err := c.client.CreatePost(opCtx, &draft)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.submission = SubmissionIdle
	if c.closed {
		c.log.Debug("Dropping create result received after teardown")
		return custom_errors.ErrControllerClosed
	}

	if err != nil {
		c.message = MessageCreateFailed
		c.metrics.IncrementPageOperations("submit", false)
		c.log.Error("Failed to create post", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", custom_errors.ErrCreate, err)
	}

	c.posts = append([]*model.Post{post}, c.posts...)
	c.modal = ModalClosed
	c.previews.Release(c.draft.ImagePreview)
	c.draft.Reset()
	c.metrics.IncrementPageOperations("submit", true)
	c.log.Info("Post created", slog.String("post_id", post.ID.String()))
	return nil
}

// SetIdentity replaces the signed-in user shown in the greeting and sent
// with later requests.
func (c *Controller) SetIdentity(identity model.Identity) {
	c.mu.Lock()
	c.identity = identity
	c.mu.Unlock()
}

// Close tears the controller down: in-flight calls are cancelled, their
// results are discarded and the draft preview is released.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	c.previews.Release(c.draft.ImagePreview)
	c.draft.Reset()
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// operationContext keeps the values of ctx but is cancelled only by Close.
// Caller must hold c.mu.
func (c *Controller) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opCtx, cancel := context.WithCancel(model.WithIdentity(context.WithoutCancel(ctx), c.identity))
	stop := context.AfterFunc(c.lifetime, cancel)
	return opCtx, func() {
		stop()
		cancel()
	}
}

// IsUserError reports whether err carries a message meant for the page
// rather than a teardown or programming error.
func IsUserError(err error) bool {
	return errors.Is(err, custom_errors.ErrValidation) ||
		errors.Is(err, custom_errors.ErrCreate) ||
		errors.Is(err, custom_errors.ErrFetch) ||
		errors.Is(err, custom_errors.ErrSubmitInProgress)
}
