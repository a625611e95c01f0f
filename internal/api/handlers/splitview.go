package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/hoanghai1803/inkwell/internal/blogs"
	"github.com/hoanghai1803/inkwell/internal/listing"
	"github.com/hoanghai1803/inkwell/internal/models"
	"github.com/hoanghai1803/inkwell/internal/query"
	"github.com/hoanghai1803/inkwell/internal/selection"
)

type splitPage struct {
	Nav         navData
	Blogs       []models.Blog
	Selection   selection.Selection
	Active      *models.Blog
	ShareURL    string
	ToastMillis int64
	Placeholder string
	Refreshing  bool
}

// SplitView handles GET /blogs and GET /blogs/{id}. It renders the list pane
// filtered by the "category" and "q" query parameters and the detail pane for
// the post named in the route, falling back to the newest visible post.
func SplitView(svc *blogs.Service, v *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, q := filters(r)
		routeID := strings.TrimSpace(chi.URLParam(r, "id"))

		var (
			list   query.State[[]models.Blog]
			detail query.State[models.Blog]
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			list = svc.ListBlogs(ctx)
			if list.IsError() && !list.HasData {
				return list.Err
			}
			return nil
		})
		if wantDetail(svc.Cached(), routeID, category, q) {
			g.Go(func() error {
				detail = svc.GetBlog(ctx, models.ID(routeID))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			slog.Error("failed to load blogs", "error", err)
			v.renderError(w, http.StatusBadGateway, "Could not load blogs", "The blog service did not respond. Please try again.")
			return
		}

		visible := listing.VisibleBlogs(list.Data, category, q)
		sel := selection.Reconcile(routeID, visible)

		page := splitPage{
			Nav:         v.nav(list.Data, category, q),
			Blogs:       visible,
			Selection:   sel,
			ToastMillis: v.toast.Milliseconds(),
			Placeholder: placeholderCover,
			Refreshing:  list.IsError(),
		}
		if active, ok := sel.Active(); ok {
			// The detail query may hold a newer copy of the same post.
			if detail.IsSuccess() && detail.Data.ID == active.ID {
				active = detail.Data
			}
			page.Active = &active
			page.ShareURL = v.shareURL(active.ID)
		}

		v.render(w, http.StatusOK, "splitview", page)
	}
}

// wantDetail reports whether the detail query for routeID is worth running.
// Once the list is cached, ids it does not show are never looked up, so an
// unknown or filtered-out route costs no round trip.
func wantDetail(cached query.State[[]models.Blog], routeID, category, q string) bool {
	if routeID == "" {
		return false
	}
	if !cached.HasData {
		return true
	}
	for _, b := range listing.VisibleBlogs(cached.Data, category, q) {
		if b.ID.String() == routeID {
			return true
		}
	}
	return false
}
