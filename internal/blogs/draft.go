package blogs

import (
	"net/url"
	"strings"
	"time"

	"github.com/hoanghai1803/inkwell/internal/models"
)

// dateLayout is ISO-8601 in UTC with milliseconds, e.g.
// "2024-05-01T09:30:00.000Z".
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// Draft is the create form as the author filled it in.
type Draft struct {
	Title       string
	Description string
	Content     string
	CoverImage  string
	Category    string
}

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every invalid field of a Draft, in form order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "invalid blog: " + strings.Join(msgs, "; ")
}

// Message returns the error for field, or "" when the field is valid.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// Validate checks that every field is filled in and the cover image is a
// web link or an inline image.
func (d Draft) Validate() error {
	var errs []FieldError
	required := func(field, value string) bool {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, FieldError{Field: field, Message: "is required"})
			return false
		}
		return true
	}

	required("title", d.Title)
	required("category", d.Category)
	required("description", d.Description)
	if required("coverImage", d.CoverImage) && !validCover(strings.TrimSpace(d.CoverImage)) {
		errs = append(errs, FieldError{Field: "coverImage", Message: "must be an http(s) URL or an uploaded image"})
	}
	required("content", d.Content)

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func validCover(cover string) bool {
	if strings.HasPrefix(cover, "data:image/") {
		return true
	}
	u, err := url.Parse(cover)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Payload builds the create request. The single category becomes a
// one-element list and the date is stamped from now.
func (d Draft) Payload(now time.Time) models.NewBlog {
	return models.NewBlog{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Content:     strings.TrimSpace(d.Content),
		CoverImage:  strings.TrimSpace(d.CoverImage),
		Category:    []string{strings.TrimSpace(d.Category)},
		Date:        now.UTC().Format(dateLayout),
	}
}
