package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/inkwell/internal/blogs"
	"github.com/hoanghai1803/inkwell/internal/models"
	"github.com/hoanghai1803/inkwell/internal/query"
	"github.com/hoanghai1803/inkwell/internal/remote"
	"github.com/hoanghai1803/inkwell/internal/remote/remotetest"
)

// seedBlogs is the fixture used across handler tests: one FINANCE post, one
// TECH post and one CAREER post.
func seedBlogs() []models.Blog {
	return []models.Blog{
		{ID: "1", Title: "Budget 2024", Description: "New tax slabs explained", Content: "Para one.\nPara two.", CoverImage: "https://example.com/1.png", Category: []string{"FINANCE"}, Date: "2024-02-01T10:00:00.000Z"},
		{ID: "2", Title: "Go generics", Description: "Type parameters in practice", Content: "Generics body.", CoverImage: "https://example.com/2.png", Category: []string{"TECH"}, Date: "2024-03-01T10:00:00.000Z"},
		{ID: "3", Title: "Interview tips", Description: "Preparing for system design", Content: "Career body.", CoverImage: "https://example.com/3.png", Category: []string{"CAREER"}, Date: "2024-01-15T10:00:00.000Z"},
	}
}

// newTestService starts a fake blog service seeded with seedBlogs and
// returns a Service reading from it through a fresh cache.
func newTestService(t *testing.T) (*blogs.Service, *remotetest.Server) {
	t.Helper()

	srv := remotetest.NewServer(t, seedBlogs()...)

	api, err := remote.New(remote.Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("creating remote client: %v", err)
	}

	cache := query.New(query.Options{
		RetryDelay:  func(int) time.Duration { return 0 },
		ShouldRetry: remote.Retryable,
	})
	t.Cleanup(cache.Close)

	return blogs.NewService(api, cache), srv
}

func newTestViews(t *testing.T) *Views {
	t.Helper()

	v, err := NewViews("https://inkwell.example.com", 4*time.Second)
	if err != nil {
		t.Fatalf("parsing views: %v", err)
	}
	v.now = func() time.Time { return time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC) }
	return v
}

// serve routes a request through a chi router so URL params are populated.
func serve(t *testing.T, pattern string, method string, h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Method(method, pattern, h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}
