package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/hoanghai1803/inkwell/internal/listing"
	"github.com/hoanghai1803/inkwell/internal/models"
)

var (
	titleColor   = color.New(color.FgHiCyan, color.Bold)
	successColor = color.New(color.FgHiGreen)
	metaColor    = color.New(color.FgHiBlack)
	badgeColor   = color.New(color.FgHiMagenta)
	descColor    = color.New(color.Italic)
)

const maxTitleWidth = 48

// writeBlogTable prints posts as a borderless table, one row per post.
// Titles are truncated here so rows never wrap.
func writeBlogTable(w io.Writer, list []models.Blog) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithRendition(tw.Rendition{Borders: tw.BorderNone}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
	table.Header("ID", "Date", "Category", "Title", "Read")
	for _, b := range list {
		row := []string{
			b.ID.String(),
			listing.FormatShort(b.Date),
			strings.Join(b.Category, ", "),
			truncate(b.Title, maxTitleWidth),
			fmt.Sprintf("%d min", listing.ReadingTime(b.Content)),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("adding row for blog %s: %w", b.ID, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}

// writeBlog prints a full post.
func writeBlog(w io.Writer, b models.Blog, shareURL string, now time.Time) {
	badges := make([]string, 0, len(b.Category))
	for _, c := range b.Category {
		badges = append(badges, badgeColor.Sprint(models.CategoryIcon(c)+" "+strings.ToUpper(c)))
	}

	fmt.Fprintln(w, titleColor.Sprint(b.Title))
	if len(badges) > 0 {
		fmt.Fprintln(w, strings.Join(badges, "  "))
	}

	meta := []string{listing.FormatLong(b.Date)}
	if rel := listing.Relative(b.Date, now); rel != "" {
		meta = append(meta, rel)
	}
	if rt := listing.ReadingTimeLabel(b.Content); rt != "" {
		meta = append(meta, rt)
	}
	fmt.Fprintln(w, metaColor.Sprint(strings.Join(meta, " · ")))

	if b.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, descColor.Sprint(b.Description))
	}
	for _, p := range listing.Paragraphs(b.Content) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p)
	}

	fmt.Fprintln(w)
	switch {
	case b.HasInlineCover():
		fmt.Fprintln(w, metaColor.Sprint("cover: inline image"))
	case b.CoverImage != "":
		fmt.Fprintln(w, metaColor.Sprint("cover: "+b.CoverImage))
	}
	fmt.Fprintln(w, metaColor.Sprint("link:  "+shareURL))
}

func writeCreated(w io.Writer, b models.Blog, shareURL string) {
	fmt.Fprintf(w, "%s %s\n", successColor.Sprint("Published"), titleColor.Sprint(b.Title))
	fmt.Fprintf(w, "id:   %s\nlink: %s\n", b.ID, shareURL)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
