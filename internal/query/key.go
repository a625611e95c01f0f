package query

import "strings"

// Key identifies a cached result. Keys are hierarchical: Key{"blogs"} is a
// prefix of Key{"blogs", "42"}, so invalidating the former also invalidates
// the latter.
type Key []string

// String renders the key for logs, e.g. "blogs/42".
func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether prefix matches the leading segments of k.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

// id is the map key used for storage. Segments are joined with a byte that
// cannot appear in route parameters so {"a/b"} and {"a","b"} stay distinct.
func (k Key) id() string {
	return strings.Join(k, "\x00")
}
