package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/inkwell/internal/blogs"
	"github.com/hoanghai1803/inkwell/internal/models"
	"github.com/hoanghai1803/inkwell/internal/remote"
)

type articlePage struct {
	Nav         navData
	Blog        models.Blog
	Placeholder string
}

// ReadBlog handles GET /blogs/{id}/read, the standalone article page.
func ReadBlog(svc *blogs.Service, v *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			v.renderError(w, http.StatusNotFound, "Blog not found", "")
			return
		}

		st := svc.GetBlog(r.Context(), id)
		if st.IsError() && !st.HasData {
			if errors.Is(st.Err, remote.ErrNotFound) {
				v.renderError(w, http.StatusNotFound, "Blog not found", "")
				return
			}
			slog.Error("failed to load blog", "id", id, "error", st.Err)
			v.renderError(w, http.StatusBadGateway, "Could not load this blog", "The blog service did not respond. Please try again.")
			return
		}

		v.render(w, http.StatusOK, "article", articlePage{
			Nav:         v.nav(svc.Cached().Data, "", ""),
			Blog:        st.Data,
			Placeholder: placeholderCover,
		})
	}
}

// NotFound renders the 404 page for unknown routes.
func NotFound(v *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v.renderError(w, http.StatusNotFound, "Page not found", "")
	}
}

// Health handles GET /healthz.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
