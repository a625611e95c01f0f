// Package selection decides which post the detail pane shows, given the id
// in the route and the posts currently visible in the list pane.
package selection

import "github.com/hoanghai1803/inkwell/internal/models"

// Kind is how the active post was chosen.
type Kind int

const (
	// NoSelection means the list is empty and the detail pane shows nothing.
	NoSelection Kind = iota
	// SelectedByID means the route id names a visible post.
	SelectedByID
	// DefaultSelected means the route id is empty or names a post that is
	// not visible, so the first visible post is shown.
	DefaultSelected
)

func (k Kind) String() string {
	switch k {
	case NoSelection:
		return "none"
	case SelectedByID:
		return "by-id"
	case DefaultSelected:
		return "default"
	default:
		return "unknown"
	}
}

// Selection is the outcome of Reconcile.
type Selection struct {
	Kind Kind
	Blog models.Blog
}

// Reconcile picks the active post. It never fails: a stale or unknown route
// id falls back to the first visible post.
func Reconcile(routeID string, visible []models.Blog) Selection {
	if len(visible) == 0 {
		return Selection{Kind: NoSelection}
	}
	if routeID != "" {
		for _, b := range visible {
			if b.ID.String() == routeID {
				return Selection{Kind: SelectedByID, Blog: b}
			}
		}
	}
	return Selection{Kind: DefaultSelected, Blog: visible[0]}
}

// Active returns the selected post, if any.
func (s Selection) Active() (models.Blog, bool) {
	return s.Blog, s.Kind != NoSelection
}

// IsActive reports whether id is the selected post, for highlighting the
// list row.
func (s Selection) IsActive(id models.ID) bool {
	return s.Kind != NoSelection && s.Blog.ID == id
}
