package listing

import (
	"sync"

	"github.com/hoanghai1803/inkwell/internal/models"
)

// Memo caches the result of VisibleBlogs and recomputes it only when the
// input list, the category or the query changes. Two lists are the same
// input when they share a backing array and length, which is what a cached
// query result gives back until it is refetched.
type Memo struct {
	mu       sync.Mutex
	src      []models.Blog
	category string
	query    string
	out      []models.Blog
	valid    bool
	computed int
}

// Visible returns VisibleBlogs(all, category, query), reusing the previous
// result when nothing changed. Callers must not modify the returned slice.
func (m *Memo) Visible(all []models.Blog, category, query string) []models.Blog {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && sameSlice(m.src, all) && m.category == category && m.query == query {
		return m.out
	}

	m.src = all
	m.category = category
	m.query = query
	m.out = VisibleBlogs(all, category, query)
	m.valid = true
	m.computed++
	return m.out
}

func sameSlice(a, b []models.Blog) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return (a == nil) == (b == nil)
	}
	return &a[0] == &b[0]
}
