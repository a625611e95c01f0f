// Package listing derives what the split view shows from the full post list:
// filtering by category and search text, ordering by date, and the small
// formatting helpers the list and detail panes need.
package listing

import (
	"slices"
	"strings"
	"time"

	"github.com/hoanghai1803/inkwell/internal/models"
)

// VisibleBlogs returns the posts matching category and query, newest first.
//
// An empty category disables the category filter; otherwise a post matches
// when any of its categories equals category, ignoring case. A blank query
// disables the text filter; otherwise a post matches when its title,
// description or any category contains the trimmed query, ignoring case.
//
// Posts whose date cannot be parsed sort after all dated posts and keep
// their input order. The input slice is never modified.
func VisibleBlogs(all []models.Blog, category, query string) []models.Blog {
	category = strings.TrimSpace(category)
	needle := strings.ToLower(strings.TrimSpace(query))

	type dated struct {
		blog models.Blog
		at   time.Time
		ok   bool
	}

	matched := make([]dated, 0, len(all))
	for _, b := range all {
		if category != "" && !hasCategory(b, category) {
			continue
		}
		if needle != "" && !containsText(b, needle) {
			continue
		}
		at, err := ParseDate(b.Date)
		matched = append(matched, dated{blog: b, at: at, ok: err == nil})
	}

	slices.SortStableFunc(matched, func(a, b dated) int {
		switch {
		case a.ok && b.ok:
			return b.at.Compare(a.at)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})

	out := make([]models.Blog, len(matched))
	for i, d := range matched {
		out[i] = d.blog
	}
	return out
}

func hasCategory(b models.Blog, category string) bool {
	for _, c := range b.Category {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// containsText expects needle already lower-cased.
func containsText(b models.Blog, needle string) bool {
	if strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.Description), needle) {
		return true
	}
	for _, c := range b.Category {
		if strings.Contains(strings.ToLower(c), needle) {
			return true
		}
	}
	return false
}
