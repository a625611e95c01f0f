// Package blogs ties the blog service client to the query cache: cached list
// and detail reads, and the create flow that invalidates them.
package blogs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hoanghai1803/inkwell/internal/models"
	"github.com/hoanghai1803/inkwell/internal/query"
)

// ListKey caches the full post list. It is also the prefix of every detail
// key, so invalidating it invalidates everything.
var ListKey = query.Key{"blogs"}

// DetailKey caches a single post.
func DetailKey(id models.ID) query.Key {
	return query.Key{"blogs", id.String()}
}

// API is the subset of the remote client the service uses.
type API interface {
	ListBlogs(ctx context.Context) ([]models.Blog, error)
	GetBlog(ctx context.Context, id models.ID) (models.Blog, error)
	CreateBlog(ctx context.Context, payload models.NewBlog) (models.Blog, error)
}

// Service serves blog reads through the cache.
type Service struct {
	api   API
	cache *query.Client
}

// NewService creates a Service.
func NewService(api API, cache *query.Client) *Service {
	return &Service{api: api, cache: cache}
}

// ListBlogs returns the cached list state, fetching or revalidating as needed.
func (s *Service) ListBlogs(ctx context.Context) query.State[[]models.Blog] {
	return query.Query(ctx, s.cache, ListKey, s.api.ListBlogs)
}

// FetchBlogs returns the list or the error that prevented loading it.
func (s *Service) FetchBlogs(ctx context.Context) ([]models.Blog, error) {
	blogs, err := query.Fetch(ctx, s.cache, ListKey, s.api.ListBlogs)
	if err != nil {
		return nil, fmt.Errorf("loading blogs: %w", err)
	}
	return blogs, nil
}

// GetBlog returns the cached state of one post. A blank id yields an idle
// state without touching the network.
func (s *Service) GetBlog(ctx context.Context, id models.ID) query.State[models.Blog] {
	if strings.TrimSpace(id.String()) == "" {
		return query.State[models.Blog]{Status: query.StatusIdle}
	}
	return query.Query(ctx, s.cache, DetailKey(id), s.detailFetcher(id))
}

// FetchBlog returns one post or the error that prevented loading it.
func (s *Service) FetchBlog(ctx context.Context, id models.ID) (models.Blog, error) {
	if strings.TrimSpace(id.String()) == "" {
		return models.Blog{}, fmt.Errorf("blog id cannot be empty")
	}
	blog, err := query.Fetch(ctx, s.cache, DetailKey(id), s.detailFetcher(id))
	if err != nil {
		return models.Blog{}, fmt.Errorf("loading blog %s: %w", id, err)
	}
	return blog, nil
}

func (s *Service) detailFetcher(id models.ID) func(context.Context) (models.Blog, error) {
	return func(ctx context.Context) (models.Blog, error) {
		return s.api.GetBlog(ctx, id)
	}
}

// CreateBlog sends payload to the service. Only after the service has
// answered successfully are the cached lists invalidated, so the next list
// read includes the new post. The created post is cached under its own key.
func (s *Service) CreateBlog(ctx context.Context, payload models.NewBlog) (models.Blog, error) {
	m := query.NewMutation(s.api.CreateBlog, s.afterCreate)
	created, err := m.Mutate(ctx, payload)
	if err != nil {
		return models.Blog{}, fmt.Errorf("creating blog: %w", err)
	}
	return created, nil
}

func (s *Service) afterCreate(_ context.Context, _ models.NewBlog, created models.Blog) {
	n := s.cache.Invalidate(ListKey)
	if created.ID != "" {
		s.cache.SetData(DetailKey(created.ID), created)
	}
	slog.Info("blog created", "id", created.ID, "title", created.Title, "invalidated", n)
}

// Refresh marks every cached post stale so the next read refetches.
func (s *Service) Refresh() {
	s.cache.Invalidate(ListKey)
}

// Cached returns the list state without fetching.
func (s *Service) Cached() query.State[[]models.Blog] {
	return query.Peek[[]models.Blog](s.cache, ListKey)
}
