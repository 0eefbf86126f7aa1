package delivery_http

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pinstack-post-page/internal/application/page"
	model "pinstack-post-page/internal/domain/models"
	"pinstack-post-page/internal/domain/ports/output/client"
	"pinstack-post-page/internal/infrastructure/logger"
	post_memory "pinstack-post-page/internal/infrastructure/outbound/client/post/memory"
	"pinstack-post-page/internal/infrastructure/outbound/metrics/prometheus"
	client_mock "pinstack-post-page/mocks/client"
)

const (
	testCookieName = "post_page_session"
	testSecret     = "test-secret"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type browser struct {
	t       *testing.T
	router  http.Handler
	cookie  *http.Cookie
	headers http.Header
}

func newTestRouter(t *testing.T, postClient client.PostClient, maxUploadBytes int64) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New("test")
	metrics := prometheus.NewPrometheusMetricsProvider()
	previews := page.NewPreviewStore(log)
	validate := page.NewValidator()

	sessions := NewSessionRegistry(time.Hour, func(identity model.Identity) *page.Controller {
		return page.NewController(postClient, previews, validate, identity, log, metrics,
			page.Options{TimeLayout: time.RFC3339, Location: time.UTC})
	}, log, metrics)
	t.Cleanup(sessions.CloseAll)

	handler := NewPageHandler(sessions, previews, testCookieName, maxUploadBytes, log)
	router, err := NewRouter(handler, testSecret, log, metrics)
	require.NoError(t, err)
	return router
}

func newBrowser(t *testing.T, router http.Handler) *browser {
	return &browser{t: t, router: router, headers: http.Header{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	for key, values := range b.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == testCookieName {
			b.cookie = cookie
		}
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) postMultipart(path string, fields map[string]string, filename string, data []byte) *httptest.ResponseRecorder {
	b.t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(b.t, writer.WriteField(name, value))
	}
	if filename != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		require.NoError(b.t, err)
		_, err = part.Write(data)
		require.NoError(b.t, err)
	}
	require.NoError(b.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return b.do(req)
}

func assertRedirectHome(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

var previewPattern = regexp.MustCompile(`/previews/([0-9a-f-]+)`)

func TestPageHandler_ShowPage(t *testing.T) {
	t.Run("renders posts and sets the session cookie", func(t *testing.T) {
		created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		memory := post_memory.NewClient(logger.New("test"),
			&model.Post{ID: "2", Title: "Second", Content: "Two", Tags: []string{"go", "web"}, CreatedAt: &created},
			&model.Post{ID: "1", Title: "First", Content: "One"},
		)
		b := newBrowser(t, newTestRouter(t, memory, 1<<20))

		w := b.get("/")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Welcome, User!")
		assert.Contains(t, body, `id="post-2"`)
		assert.Contains(t, body, `id="post-1"`)
		assert.Contains(t, body, "Tags: go, web")
		assert.Contains(t, body, "2024-03-01T10:00:00Z")
		assert.Less(t, strings.Index(body, "Second"), strings.Index(body, "First"))
		assert.NotContains(t, body, "Create New Post")
		require.NotNil(t, b.cookie)
		assert.NotEmpty(t, b.cookie.Value)
	})

	t.Run("reuses the session across requests", func(t *testing.T) {
		postClient := client_mock.NewPostClient(t)
		postClient.On("ListPosts", mock.Anything).Return([]*model.Post{}, nil).Once()
		b := newBrowser(t, newTestRouter(t, postClient, 1<<20))

		b.get("/")
		first := b.cookie.Value
		w := b.get("/")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, first, b.cookie.Value)
	})

	t.Run("load failure shows only the error", func(t *testing.T) {
		postClient := client_mock.NewPostClient(t)
		postClient.On("ListPosts", mock.Anything).Return(nil, errors.New("connection refused")).Once()
		b := newBrowser(t, newTestRouter(t, postClient, 1<<20))

		w := b.get("/")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), page.MessageLoadFailed)
		assert.NotContains(t, w.Body.String(), "Welcome")
	})

	t.Run("greets the signed-in user", func(t *testing.T) {
		b := newBrowser(t, newTestRouter(t, post_memory.NewClient(logger.New("test")), 1<<20))
		b.headers.Set("Authorization", "Bearer "+signToken(t, testSecret, 7, "ann@example.com"))

		w := b.get("/")

		assert.Contains(t, w.Body.String(), "Welcome, ann@example.com!")
	})
}

func TestPageHandler_Modal(t *testing.T) {
	b := newBrowser(t, newTestRouter(t, post_memory.NewClient(logger.New("test")), 1<<20))
	b.get("/")

	assertRedirectHome(t, b.postForm("/modal/open", nil))
	assert.Contains(t, b.get("/").Body.String(), "Create New Post")

	assertRedirectHome(t, b.postForm("/modal/cancel", url.Values{"title": {"kept"}}))
	assert.NotContains(t, b.get("/").Body.String(), "Create New Post")

	b.postForm("/modal/open", nil)
	body := b.get("/").Body.String()
	assert.Contains(t, body, "Create New Post")
	assert.Contains(t, body, `value="kept"`)
}

func TestPageHandler_OpenModalBeforeLoad(t *testing.T) {
	postClient := client_mock.NewPostClient(t)
	postClient.On("ListPosts", mock.Anything).Return([]*model.Post{}, nil).Once()
	b := newBrowser(t, newTestRouter(t, postClient, 1<<20))

	assertRedirectHome(t, b.postForm("/modal/open", nil))
	assert.NotContains(t, b.get("/").Body.String(), "Create New Post")
}

func TestPageHandler_SubmitDraft(t *testing.T) {
	t.Run("blank fields show the validation message once", func(t *testing.T) {
		b := newBrowser(t, newTestRouter(t, post_memory.NewClient(logger.New("test")), 1<<20))
		b.get("/")
		b.postForm("/modal/open", nil)

		assertRedirectHome(t, b.postForm("/draft/submit", url.Values{"title": {"  "}, "content": {"body"}}))

		body := b.get("/").Body.String()
		assert.Contains(t, body, page.MessageValidation)
		assert.Contains(t, body, "Create New Post")
		assert.NotContains(t, b.get("/").Body.String(), page.MessageValidation)
	})

	t.Run("created post is prepended and the form closes", func(t *testing.T) {
		memory := post_memory.NewClient(logger.New("test"), &model.Post{ID: "1", Title: "Old", Content: "Old body"})
		b := newBrowser(t, newTestRouter(t, memory, 1<<20))
		b.get("/")
		b.postForm("/modal/open", nil)

		w := b.postMultipart("/draft/submit", map[string]string{"title": "New", "content": "Fresh"}, "pic.png", pngHeader)
		assertRedirectHome(t, w)

		body := b.get("/").Body.String()
		assert.NotContains(t, body, "Create New Post")
		assert.Contains(t, body, `id="post-2"`)
		assert.Less(t, strings.Index(body, "Fresh"), strings.Index(body, "Old body"))
		assert.Contains(t, body, `src="data:image/png;base64,`)
	})

	t.Run("create failure keeps the draft", func(t *testing.T) {
		postClient := client_mock.NewPostClient(t)
		postClient.On("ListPosts", mock.Anything).Return([]*model.Post{}, nil).Once()
		postClient.On("CreatePost", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()
		b := newBrowser(t, newTestRouter(t, postClient, 1<<20))
		b.get("/")
		b.postForm("/modal/open", nil)

		assertRedirectHome(t, b.postForm("/draft/submit", url.Values{"title": {"T"}, "content": {"C"}}))

		body := b.get("/").Body.String()
		assert.Contains(t, body, page.MessageCreateFailed)
		assert.Contains(t, body, `value="T"`)
	})

	t.Run("submit without an open form creates nothing", func(t *testing.T) {
		postClient := client_mock.NewPostClient(t)
		postClient.On("ListPosts", mock.Anything).Return(nil, errors.New("down")).Once()
		b := newBrowser(t, newTestRouter(t, postClient, 1<<20))
		b.get("/")

		assertRedirectHome(t, b.postForm("/draft/submit", url.Values{"title": {"T"}, "content": {"C"}}))

		assert.Contains(t, b.get("/").Body.String(), page.MessageLoadFailed)
		postClient.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
	})

	t.Run("oversized upload is rejected", func(t *testing.T) {
		b := newBrowser(t, newTestRouter(t, post_memory.NewClient(logger.New("test")), 1024))
		b.get("/")
		b.postForm("/modal/open", nil)

		w := b.postMultipart("/draft/submit", map[string]string{"title": "T", "content": "C"}, "big.png", bytes.Repeat([]byte{1}, 4096))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestPageHandler_Previews(t *testing.T) {
	b := newBrowser(t, newTestRouter(t, post_memory.NewClient(logger.New("test")), 1<<20))
	b.get("/")
	b.postForm("/modal/open", nil)

	assertRedirectHome(t, b.postMultipart("/draft", map[string]string{"title": "T"}, "pic.png", pngHeader))

	body := b.get("/").Body.String()
	assert.Contains(t, body, "pic.png")
	match := previewPattern.FindStringSubmatch(body)
	require.Len(t, match, 2)

	w := b.get("/previews/" + match[1])
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, pngHeader, w.Body.Bytes())

	assert.Equal(t, http.StatusNotFound, b.get("/previews/unknown").Code)
}

func TestPageHandler_Health(t *testing.T) {
	b := newBrowser(t, newTestRouter(t, post_memory.NewClient(logger.New("test")), 1<<20))

	w := b.get("/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
