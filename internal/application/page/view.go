package page

import (
	"strconv"
	"strings"

	model "pinstack-post-page/internal/domain/models"
)

// View is the render-ready projection of the controller state. When Loading
// is set nothing else is populated; when Error is set only Error is.
type View struct {
	Loading  bool
	Error    string
	Greeting string
	Posts    []PostView
	Modal    *ModalView
	Message  string
}

type PostView struct {
	Key       string
	Title     string
	Content   string
	ImageURL  string
	Tags      string
	Timestamp string
}

type ModalView struct {
	Title      string
	Content    string
	PreviewID  string
	ImageName  string
	Submitting bool
}

// View returns the current projection without consuming the pending message.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.project()
}

// TakeView returns the view and clears the pending message so that it is
// shown once.
func (c *Controller) TakeView() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := c.project()
	c.message = ""
	return view
}

// Caller must hold c.mu.
func (c *Controller) project() View {
	switch c.load {
	case LoadLoading:
		return View{Loading: true}
	case LoadFailed:
		return View{Error: MessageLoadFailed}
	}

	view := View{
		Greeting: "Welcome, " + c.identity.DisplayName() + "!",
		Posts:    make([]PostView, 0, len(c.posts)),
		Message:  c.message,
	}

	for i, post := range c.posts {
		view.Posts = append(view.Posts, c.projectPost(i, post))
	}

	if c.modal == ModalOpen {
		modal := &ModalView{
			Title:      c.draft.Title,
			Content:    c.draft.Content,
			PreviewID:  c.draft.ImagePreview,
			Submitting: c.submission == SubmissionSubmitting,
		}
		if c.draft.Image != nil {
			modal.ImageName = c.draft.Image.Filename
		}
		view.Modal = modal
	}

	return view
}

func (c *Controller) projectPost(index int, post *model.Post) PostView {
	pv := PostView{
		Key:      postKey(index, post),
		Title:    post.Title,
		Content:  post.Content,
		ImageURL: post.ImageURL,
	}
	if post.HasTags() {
		pv.Tags = strings.Join(post.Tags, ", ")
	}
	if post.CreatedAt != nil {
		pv.Timestamp = post.CreatedAt.In(c.opts.Location).Format(c.opts.TimeLayout)
	}
	return pv
}

// postKey identifies a rendered post by its service id, falling back to the
// position for records the service sent without one.
func postKey(index int, post *model.Post) string {
	if post.ID != "" {
		return "post-" + post.ID.String()
	}
	return "post-at-" + strconv.Itoa(index)
}
