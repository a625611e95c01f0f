package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hoanghai1803/inkwell/internal/blogs"
	"github.com/hoanghai1803/inkwell/internal/listing"
	"github.com/hoanghai1803/inkwell/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// placeholderCover replaces cover images that fail to load or are unsafe to
// embed.
const placeholderCover = "https://placehold.co/1200x600?text=Inkwell"

var pageNames = []string{"splitview", "article", "create", "error"}

// Views renders the HTML pages. Each page is its own template set sharing
// the layout.
type Views struct {
	pages     map[string]*template.Template
	shareBase string
	toast     time.Duration
	now       func() time.Time
}

// NewViews parses the embedded templates. shareBase is the origin used in
// share links; toast is how long the "Link copied" notice stays up.
func NewViews(shareBase string, toast time.Duration) (*Views, error) {
	v := &Views{
		pages:     make(map[string]*template.Template, len(pageNames)),
		shareBase: shareBase,
		toast:     toast,
		now:       time.Now,
	}

	for _, name := range pageNames {
		t, err := template.New(name).Funcs(v.funcs()).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

func (v *Views) funcs() template.FuncMap {
	return template.FuncMap{
		"upper":       strings.ToUpper,
		"icon":        models.CategoryIcon,
		"formatShort": listing.FormatShort,
		"formatLong":  listing.FormatLong,
		"relative":    func(raw string) string { return listing.Relative(raw, v.now()) },
		"readingTime": listing.ReadingTimeLabel,
		"paragraphs":  listing.Paragraphs,
		"safeSrc":     safeSrc,
		"listHref":    listHref,
		"blogHref":    blogHref,
		"chipHref": func(name, current, query string) string {
			if strings.EqualFold(name, current) {
				return listHref("", query)
			}
			return listHref(name, query)
		},
	}
}

// render executes page into a buffer first so a template error still yields
// a clean 500 instead of a half-written page.
func (v *Views) render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := v.pages[page]
	if !ok {
		slog.Error("unknown page template", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError shows the generic failure page.
func (v *Views) renderError(w http.ResponseWriter, status int, title, message string) {
	v.render(w, status, "error", errorPage{
		Nav:     v.nav(nil, "", ""),
		Title:   title,
		Message: message,
	})
}

// navData feeds the shared navbar.
type navData struct {
	Today      time.Time
	Categories []listing.CategoryCount
	Category   string
	Query      string
}

func (v *Views) nav(all []models.Blog, category, query string) navData {
	return navData{
		Today:      v.now(),
		Categories: listing.CategoryCounts(all),
		Category:   category,
		Query:      query,
	}
}

type errorPage struct {
	Nav     navData
	Title   string
	Message string
}

// safeSrc lets web links and inline images through as image sources and
// replaces anything else with the placeholder.
func safeSrc(src string) template.URL {
	src = strings.TrimSpace(src)
	if strings.HasPrefix(src, "data:image/") {
		return template.URL(src)
	}
	if u, err := url.Parse(src); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return template.URL(src)
	}
	return template.URL(placeholderCover)
}

func listHref(category, query string) string {
	return withFilters("/blogs", category, query)
}

func blogHref(id models.ID, category, query string) string {
	return withFilters("/blogs/"+url.PathEscape(id.String()), category, query)
}

func withFilters(path, category, query string) string {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if strings.TrimSpace(query) != "" {
		q.Set("q", query)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// shareURL is the public link for a post.
func (v *Views) shareURL(id models.ID) string {
	return blogs.ShareURL(v.shareBase, id)
}
