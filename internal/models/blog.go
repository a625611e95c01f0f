package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultCategory is shown for posts that carry no category at all.
const DefaultCategory = "General"

// Categories is the fixed set offered by the navbar and the create form.
// The create form also accepts free-form categories.
var Categories = []string{"TECH", "FINANCE", "HEALTHCARE", "POLITICS", "GOVERNANCE", "CAREER"}

// ID is an opaque blog identifier assigned by the blog service. Services
// disagree on whether ids are strings or numbers, so both decode into the
// same string form.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding blog id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding blog id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as a plain string.
func (id ID) String() string {
	return string(id)
}

// Blog is a single post as served by the blog service.
type Blog struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	CoverImage  string   `json:"coverImage"`
	Category    []string `json:"category"`
	Date        string   `json:"date"`
}

// PrimaryCategory returns the first category, used for badges and icons.
func (b Blog) PrimaryCategory() string {
	if len(b.Category) == 0 || strings.TrimSpace(b.Category[0]) == "" {
		return DefaultCategory
	}
	return b.Category[0]
}

// HasInlineCover reports whether the cover image is an inline data URL
// rather than a remote link.
func (b Blog) HasInlineCover() bool {
	return strings.HasPrefix(b.CoverImage, "data:")
}

// NewBlog is the create payload: a Blog without its id.
type NewBlog struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	CoverImage  string   `json:"coverImage"`
	Category    []string `json:"category"`
	Date        string   `json:"date"`
}

// WithID builds the full Blog for a created payload.
func (n NewBlog) WithID(id ID) Blog {
	return Blog{
		ID:          id,
		Title:       n.Title,
		Description: n.Description,
		Content:     n.Content,
		CoverImage:  n.CoverImage,
		Category:    append([]string(nil), n.Category...),
		Date:        n.Date,
	}
}

// CategoryIcon returns a display glyph for a category label. Matching is by
// upper-cased substring so "FINANCE & TAX" still gets the finance icon.
func CategoryIcon(category string) string {
	normalized := strings.ToUpper(category)
	switch {
	case strings.Contains(normalized, "FINANCE"):
		return "📈"
	case strings.Contains(normalized, "TECH"):
		return "💻"
	case strings.Contains(normalized, "CAREER"):
		return "💼"
	case strings.Contains(normalized, "REGULATION"):
		return "⚖"
	case strings.Contains(normalized, "STARTUP"):
		return "💡"
	default:
		return "🌐"
	}
}

// ParseID converts a raw route or CLI value into an ID, rejecting blanks.
func ParseID(raw string) (ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("blog id cannot be empty")
	}
	return ID(raw), nil
}
