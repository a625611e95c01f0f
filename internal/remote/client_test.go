package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanghai1803/inkwell/internal/models"
	"github.com/hoanghai1803/inkwell/internal/remote"
	"github.com/hoanghai1803/inkwell/internal/remote/remotetest"
)

func seedBlogs() []models.Blog {
	return []models.Blog{
		{ID: "1", Title: "Budget 2024", Description: "New tax rules", Category: []string{"FINANCE"}, Date: "2024-02-01T10:00:00.000Z"},
		{ID: "2", Title: "Go generics", Description: "Type parameters", Category: []string{"TECH"}, Date: "2024-03-01T10:00:00.000Z"},
	}
}

func newClient(t *testing.T, baseURL string) *remote.Client {
	t.Helper()
	c, err := remote.New(remote.Config{BaseURL: baseURL, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "blank", url: "   "},
		{name: "no scheme", url: "localhost:3001"},
		{name: "ftp scheme", url: "ftp://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := remote.New(remote.Config{BaseURL: tt.url})
			assert.Error(t, err)
		})
	}
}

func TestListBlogs(t *testing.T) {
	srv := remotetest.NewServer(t, seedBlogs()...)
	c := newClient(t, srv.URL)

	blogs, err := c.ListBlogs(context.Background())
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, models.ID("1"), blogs[0].ID)
	assert.Equal(t, []string{"FINANCE"}, blogs[0].Category)
	assert.Equal(t, 1, srv.Lists())
}

func TestListBlogs_EmptyIsNotNil(t *testing.T) {
	srv := remotetest.NewServer(t)
	c := newClient(t, srv.URL)

	blogs, err := c.ListBlogs(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, blogs)
	assert.Empty(t, blogs)
}

func TestGetBlog(t *testing.T) {
	srv := remotetest.NewServer(t, seedBlogs()...)
	c := newClient(t, srv.URL)

	blog, err := c.GetBlog(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Go generics", blog.Title)
}

func TestGetBlog_NotFound(t *testing.T) {
	srv := remotetest.NewServer(t, seedBlogs()...)
	c := newClient(t, srv.URL)

	_, err := c.GetBlog(context.Background(), "999")
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrNotFound)
	assert.False(t, remote.Retryable(err))
}

func TestGetBlog_EmptyIDIssuesNoRequest(t *testing.T) {
	srv := remotetest.NewServer(t, seedBlogs()...)
	c := newClient(t, srv.URL)

	_, err := c.GetBlog(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, 0, srv.Gets())
}

func TestCreateBlog(t *testing.T) {
	srv := remotetest.NewServer(t)
	c := newClient(t, srv.URL)

	created, err := c.CreateBlog(context.Background(), models.NewBlog{
		Title:       "X",
		Description: "d",
		Content:     "c",
		CoverImage:  "https://example.com/x.png",
		Category:    []string{"TECH"},
		Date:        "2024-05-01T00:00:00.000Z",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ID("101"), created.ID, "ids continue after the seeded posts")
	assert.Equal(t, "X", created.Title)
	require.Len(t, srv.Blogs(), 1)
	assert.Equal(t, created.ID, srv.Blogs()[0].ID)
}

func TestCreateBlog_ResponseShapes(t *testing.T) {
	payload := models.NewBlog{Title: "T", Description: "D", Content: "C", CoverImage: "u", Category: []string{"TECH"}, Date: "2024-01-01T00:00:00.000Z"}

	tests := []struct {
		name    string
		body    string
		wantID  models.ID
		wantErr bool
	}{
		{name: "full object", body: `{"id":"abc","title":"T"}`, wantID: "abc"},
		{name: "numeric id in object", body: `{"id":12}`, wantID: "12"},
		{name: "bare string id", body: `"xyz"`, wantID: "xyz"},
		{name: "bare numeric id", body: `7`, wantID: "7"},
		{name: "object without id", body: `{"title":"T"}`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := newClient(t, srv.URL).CreateBlog(context.Background(), payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, payload.Content, got.Content, "missing fields are filled from the payload")
			assert.Equal(t, payload.Category, got.Category)
		})
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantRetryable bool
		wantMessage   string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantRetryable: true, wantMessage: "injected failure"},
		{name: "bad gateway", status: http.StatusBadGateway, wantRetryable: true, wantMessage: "injected failure"},
		{name: "too many requests", status: http.StatusTooManyRequests, wantRetryable: true, wantMessage: "injected failure"},
		{name: "bad request", status: http.StatusBadRequest, wantRetryable: false, wantMessage: "injected failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := remotetest.NewServer(t, seedBlogs()...)
			srv.FailNext(1, tt.status)

			_, err := newClient(t, srv.URL).ListBlogs(context.Background())
			require.Error(t, err)

			var statusErr *remote.StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.Code)
			assert.Equal(t, tt.wantMessage, statusErr.Message)
			assert.Equal(t, tt.wantRetryable, remote.Retryable(err))
		})
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newClient(t, url).ListBlogs(context.Background())
	require.Error(t, err)

	var netErr *remote.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.MethodGet, netErr.Op)
	assert.True(t, remote.Retryable(err))
}

func TestCancelledContextIsNotRetryable(t *testing.T) {
	srv := remotetest.NewServer(t, seedBlogs()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(t, srv.URL).ListBlogs(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, remote.Retryable(err))
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewEncoder(w).Encode([]models.Blog{})
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)

	ctx := remote.WithRequestID(context.Background(), "req-123")
	_, err := c.ListBlogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "req-123", got.Get("X-Request-ID"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Contains(t, got.Get("User-Agent"), "inkwell")

	_, err = c.ListBlogs(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, got.Get("X-Request-ID"), "a request id is generated when none is inherited")
}

func TestRetryable(t *testing.T) {
	assert.False(t, remote.Retryable(nil))
	assert.False(t, remote.Retryable(errors.New("plain")))
	assert.False(t, remote.Retryable(remote.ErrNotFound))
	assert.True(t, remote.Retryable(&remote.StatusError{Code: 503}))
	assert.False(t, remote.Retryable(&remote.StatusError{Code: 422}))
}
