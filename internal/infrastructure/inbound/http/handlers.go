package delivery_http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pinstack-post-page/internal/application/page"
	"pinstack-post-page/internal/custom_errors"
	model "pinstack-post-page/internal/domain/models"
	ports "pinstack-post-page/internal/domain/ports/output"
)

const multipartMemory = 8 << 20

type PageHandler struct {
	sessions       *SessionRegistry
	previews       *page.PreviewStore
	cookieName     string
	maxUploadBytes int64
	log            ports.Logger
}

func NewPageHandler(sessions *SessionRegistry, previews *page.PreviewStore, cookieName string, maxUploadBytes int64, log ports.Logger) *PageHandler {
	return &PageHandler{
		sessions:       sessions,
		previews:       previews,
		cookieName:     cookieName,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

func (h *PageHandler) ShowPage(c *gin.Context) {
	controller := h.controllerFor(c)

	if err := controller.Mount(c.Request.Context()); err != nil && !errors.Is(err, custom_errors.ErrFetch) {
		_ = c.Error(err)
	}

	c.HTML(http.StatusOK, "page.html", controller.TakeView())
}

func (h *PageHandler) OpenModal(c *gin.Context) {
	controller := h.controllerFor(c)
	if err := controller.OpenModal(); err != nil {
		_ = c.Error(err)
	}
	h.backToPage(c)
}

// CancelModal keeps whatever was typed into the form before closing it.
func (h *PageHandler) CancelModal(c *gin.Context) {
	controller := h.controllerFor(c)
	if !h.applyForm(c, controller) {
		return
	}
	if err := controller.CancelModal(); err != nil {
		_ = c.Error(err)
	}
	h.backToPage(c)
}

func (h *PageHandler) UpdateDraft(c *gin.Context) {
	controller := h.controllerFor(c)
	if !h.applyForm(c, controller) {
		return
	}
	h.backToPage(c)
}

func (h *PageHandler) SubmitDraft(c *gin.Context) {
	controller := h.controllerFor(c)
	if !h.applyForm(c, controller) {
		return
	}

	if err := controller.Submit(c.Request.Context()); err != nil && !page.IsUserError(err) {
		_ = c.Error(err)
	}
	h.backToPage(c)
}

func (h *PageHandler) ShowPreview(c *gin.Context) {
	image, err := h.previews.Get(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(image.Data)
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, image.Data)
}

func (h *PageHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *PageHandler) controllerFor(c *gin.Context) *page.Controller {
	identity := model.IdentityFromContext(c.Request.Context())
	sessionID, _ := c.Cookie(h.cookieName)

	sessionID, controller := h.sessions.Acquire(sessionID, identity)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, sessionID, 0, "/", "", false, true)

	controller.SetIdentity(identity)
	return controller
}

// applyForm copies the submitted form fields into the draft. Only fields
// present in the request are changed. It writes the error response itself and
// returns false when the request body cannot be read.
func (h *PageHandler) applyForm(c *gin.Context, controller *page.Controller) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	var maxBytesErr *http.MaxBytesError
	err := c.Request.ParseMultipartForm(multipartMemory)
	switch {
	case errors.As(err, &maxBytesErr):
		h.log.Warn("Upload rejected", slog.Int64("limit", h.maxUploadBytes))
		c.String(http.StatusRequestEntityTooLarge, "Image is too large.")
		return false
	case err != nil && !errors.Is(err, http.ErrNotMultipart):
		_ = c.Error(err)
		c.String(http.StatusBadRequest, "Invalid form.")
		return false
	}

	if title, ok := c.GetPostForm("title"); ok {
		h.ignoreBusy(c, controller.SetTitle(title))
	}
	if content, ok := c.GetPostForm("content"); ok {
		h.ignoreBusy(c, controller.SetContent(content))
	}

	image, err := imageFromForm(c)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusBadRequest, "Invalid form.")
		return false
	}
	if image != nil {
		h.ignoreBusy(c, controller.SelectImage(image))
	}
	return true
}

// imageFromForm returns nil when the form carries no file.
func imageFromForm(c *gin.Context) (*model.Image, error) {
	if c.Request.MultipartForm == nil || len(c.Request.MultipartForm.File["image"]) == 0 {
		return nil, nil
	}
	header := c.Request.MultipartForm.File["image"][0]

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &model.Image{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (h *PageHandler) ignoreBusy(c *gin.Context, err error) {
	if err != nil && !errors.Is(err, custom_errors.ErrSubmitInProgress) {
		_ = c.Error(err)
	}
}

func (h *PageHandler) backToPage(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}
