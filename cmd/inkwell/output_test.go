package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/hoanghai1803/inkwell/internal/blogs"
	"github.com/hoanghai1803/inkwell/internal/models"
)

func init() {
	color.NoColor = true
}

func TestWriteBlogTable(t *testing.T) {
	var buf bytes.Buffer
	list := []models.Blog{
		{ID: "2", Title: "Index funds explained", Category: []string{"FINANCE"}, Date: "2024-03-03T09:00:00.000Z", Content: "Buy the market."},
		{ID: "1", Title: strings.Repeat("long ", 20), Category: []string{"TECH", "CAREER"}, Date: "2024-03-01T09:00:00.000Z"},
	}
	if err := writeBlogTable(&buf, list); err != nil {
		t.Fatalf("writeBlogTable: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Index funds explained", "Mar 3", "FINANCE", "TECH, CAREER", "…"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Index funds") > strings.Index(out, "TECH, CAREER") {
		t.Errorf("rows out of order:\n%s", out)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if header := strings.ToUpper(lines[0]); !strings.Contains(header, "TITLE") || !strings.Contains(header, "READ") {
		t.Errorf("first line should be the header, got %q", lines[0])
	}
	wrapped := true
	for _, line := range lines {
		if strings.Contains(line, "TECH, CAREER") && strings.Contains(line, "…") {
			wrapped = false
		}
	}
	if wrapped {
		t.Errorf("long titles should be truncated on their row, not wrapped:\n%s", out)
	}
	if !strings.Contains(out, "1 min") {
		t.Errorf("table missing reading time:\n%s", out)
	}
}

func TestWriteBlog(t *testing.T) {
	var buf bytes.Buffer
	b := models.Blog{
		ID:          "7",
		Title:       "Quarterly taxes",
		Description: "What to file and when.",
		Content:     "First paragraph.\n\nSecond paragraph.",
		Category:    []string{"FINANCE"},
		CoverImage:  "https://img.example/tax.png",
		Date:        "2024-03-01T09:00:00.000Z",
	}
	writeBlog(&buf, b, "https://ink.example/blogs/7", time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))

	out := buf.String()
	for _, want := range []string{
		"Quarterly taxes",
		"FINANCE",
		"Friday, March 1, 2024",
		"3 days ago",
		"1 MIN READ",
		"What to file and when.",
		"First paragraph.\n\nSecond paragraph.",
		"cover: https://img.example/tax.png",
		"link:  https://ink.example/blogs/7",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteBlog_InlineCover(t *testing.T) {
	var buf bytes.Buffer
	b := models.Blog{ID: "8", Title: "Inline", CoverImage: "data:image/png;base64,AAAA", Date: "not a date"}
	writeBlog(&buf, b, "https://ink.example/blogs/8", time.Now())

	out := buf.String()
	if !strings.Contains(out, "cover: inline image") {
		t.Errorf("expected inline cover note:\n%s", out)
	}
	if strings.Contains(out, "base64") {
		t.Errorf("inline image data should not be printed:\n%s", out)
	}
	if !strings.Contains(out, "not a date") {
		t.Errorf("unparsable dates are printed as is:\n%s", out)
	}
}

func TestFormatInvalid(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "validation error lists flags",
			err: &blogs.ValidationError{Fields: []blogs.FieldError{
				{Field: "title", Message: "is required"},
				{Field: "coverImage", Message: "is required"},
			}},
			want: []string{"Invalid post:", "--title is required", "--cover-url/--cover-file is required"},
		},
		{
			name: "other errors pass through",
			err:  errors.New("boom"),
			want: []string{"boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatInvalid(tt.err)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("formatInvalid() = %q, missing %q", got, w)
				}
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 8, "this is…"},
		{"héllo wörld", 6, "héllo…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
