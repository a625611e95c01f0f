package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/hoanghai1803/inkwell/internal/blogs"
	"github.com/hoanghai1803/inkwell/internal/models"
)

// customCategory is the select value that switches to the free-form field.
const customCategory = "__custom"

type createPage struct {
	Nav         navData
	Draft       blogs.Draft
	Categories  []string
	CustomValue string
	FormError   string
	errs        *blogs.ValidationError
}

// FieldError returns the validation message for field, if any.
func (p createPage) FieldError(field string) string {
	if p.errs == nil {
		return ""
	}
	return p.errs.Message(field)
}

// IsCustom reports whether the draft uses a category outside the fixed list.
func (p createPage) IsCustom() bool {
	return p.Draft.Category != "" && !slices.Contains(models.Categories, p.Draft.Category)
}

// InlineCover reports whether the draft cover is an uploaded image.
func (p createPage) InlineCover() bool {
	return strings.HasPrefix(p.Draft.CoverImage, "data:")
}

func newCreatePage(v *Views, d blogs.Draft) createPage {
	return createPage{
		Nav:         v.nav(nil, "", ""),
		Draft:       d,
		Categories:  models.Categories,
		CustomValue: customCategory,
	}
}

// CreateForm handles GET /create.
func CreateForm(v *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v.render(w, http.StatusOK, "create", newCreatePage(v, blogs.Draft{Category: models.Categories[0]}))
	}
}

// SubmitCreate handles POST /create. The cover image is either a URL or an
// uploaded file, which is inlined as a data URL. Invalid drafts are shown
// again with 422 and remote failures with 502; success redirects to the list.
func SubmitCreate(svc *blogs.Service, v *Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, blogs.MaxCoverBytes+(1<<20))
		if err := r.ParseMultipartForm(blogs.MaxCoverBytes + (1 << 20)); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			slog.Warn("invalid create form", "error", err)
			page := newCreatePage(v, blogs.Draft{})
			page.FormError = "The form could not be read. Cover images must be under 5 MB."
			v.render(w, http.StatusBadRequest, "create", page)
			return
		}

		draft := blogs.Draft{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Content:     r.FormValue("content"),
			Category:    r.FormValue("category"),
			CoverImage:  strings.TrimSpace(r.FormValue("cover_url")),
		}
		if draft.Category == customCategory {
			draft.Category = r.FormValue("custom_category")
		}
		if draft.CoverImage == "" {
			draft.CoverImage = r.FormValue("cover_data")
		}

		page := newCreatePage(v, draft)

		if file, header, err := r.FormFile("cover_file"); err == nil {
			defer file.Close()
			dataURL, err := blogs.DataURL(file, header.Header.Get("Content-Type"), blogs.MaxCoverBytes)
			if err != nil {
				page.errs = &blogs.ValidationError{Fields: []blogs.FieldError{{Field: "coverImage", Message: err.Error()}}}
				v.render(w, http.StatusUnprocessableEntity, "create", page)
				return
			}
			draft.CoverImage = dataURL
			page.Draft = draft
		}

		created, err := blogs.NewCreateFlow(svc).Submit(r.Context(), draft)
		if err != nil {
			var verr *blogs.ValidationError
			if errors.As(err, &verr) {
				page.errs = verr
				v.render(w, http.StatusUnprocessableEntity, "create", page)
				return
			}
			slog.Error("failed to create blog", "title", draft.Title, "error", err)
			page.FormError = "Could not publish the blog: " + err.Error()
			v.render(w, http.StatusBadGateway, "create", page)
			return
		}

		slog.Info("blog published", "id", created.ID)
		http.Redirect(w, r, "/blogs", http.StatusSeeOther)
	}
}
