package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/inkwell/internal/api/handlers"
	"github.com/hoanghai1803/inkwell/internal/blogs"
	"github.com/hoanghai1803/inkwell/internal/config"
)

// NewRouter creates and configures the HTTP router for the web front end.
func NewRouter(svc *blogs.Service, cfg *config.Config) (*chi.Mux, error) {
	views, err := handlers.NewViews(cfg.Server.ShareBase(), cfg.UI.ToastDuration())
	if err != nil {
		return nil, fmt.Errorf("loading views: %w", err)
	}

	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(Recovery)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/blogs", http.StatusFound)
	})
	r.Get("/healthz", handlers.Health())

	r.Route("/blogs", func(b chi.Router) {
		b.Get("/", handlers.SplitView(svc, views))
		b.Get("/{id}", handlers.SplitView(svc, views))
		b.Get("/{id}/read", handlers.ReadBlog(svc, views))
	})

	r.Get("/create", handlers.CreateForm(views))
	r.Post("/create", handlers.SubmitCreate(svc, views))

	r.NotFound(handlers.NotFound(views))

	return r, nil
}
