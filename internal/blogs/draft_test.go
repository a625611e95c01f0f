package blogs

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		Title:       "  Budget 2024 ",
		Description: "New tax slabs",
		Content:     "Body text",
		CoverImage:  "https://example.com/cover.png",
		Category:    " FINANCE ",
	}
}

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Draft)
		wantFields []string
	}{
		{name: "valid", mutate: func(*Draft) {}},
		{name: "inline cover", mutate: func(d *Draft) { d.CoverImage = "data:image/png;base64,AAAA" }},
		{name: "custom category", mutate: func(d *Draft) { d.Category = "Space" }},
		{name: "blank title", mutate: func(d *Draft) { d.Title = "   " }, wantFields: []string{"title"}},
		{
			name:       "everything missing",
			mutate:     func(d *Draft) { *d = Draft{} },
			wantFields: []string{"title", "category", "description", "coverImage", "content"},
		},
		{name: "relative cover", mutate: func(d *Draft) { d.CoverImage = "/img/cover.png" }, wantFields: []string{"coverImage"}},
		{name: "ftp cover", mutate: func(d *Draft) { d.CoverImage = "ftp://example.com/a.png" }, wantFields: []string{"coverImage"}},
		{name: "non-image data URL", mutate: func(d *Draft) { d.CoverImage = "data:text/html;base64,AAAA" }, wantFields: []string{"coverImage"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			err := d.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			got := make([]string, len(verr.Fields))
			for i, f := range verr.Fields {
				got[i] = f.Field
			}
			assert.Equal(t, tt.wantFields, got)
			assert.NotEmpty(t, verr.Message(tt.wantFields[0]))
		})
	}
}

func TestDraft_Payload(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	now := time.Date(2024, 5, 1, 16, 30, 0, 123_000_000, loc)

	p := validDraft().Payload(now)

	assert.Equal(t, "Budget 2024", p.Title)
	assert.Equal(t, []string{"FINANCE"}, p.Category)
	assert.Equal(t, "2024-05-01T09:30:00.123Z", p.Date)
}

func TestValidationError_Error(t *testing.T) {
	err := (Draft{Title: "t", Category: "c", Description: "d", Content: "x"}).Validate()
	assert.EqualError(t, err, "invalid blog: coverImage: is required")
}
