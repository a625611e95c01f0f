package listing

import (
	"slices"
	"strings"

	"github.com/hoanghai1803/inkwell/internal/models"
)

// Paragraphs splits post content on line breaks, dropping blank lines.
func Paragraphs(content string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// CategoryCount is one navbar entry.
type CategoryCount struct {
	Name  string
	Count int
}

// CategoryCounts counts posts per category, ignoring case. The fixed
// categories come first in their usual order, even when empty, followed by
// any other category found in the posts, alphabetically.
func CategoryCounts(all []models.Blog) []CategoryCount {
	counts := make(map[string]int)
	names := make(map[string]string)
	for _, b := range all {
		seen := make(map[string]bool, len(b.Category))
		for _, c := range b.Category {
			c = strings.TrimSpace(c)
			key := strings.ToUpper(c)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			counts[key]++
			if _, ok := names[key]; !ok {
				names[key] = c
			}
		}
	}

	out := make([]CategoryCount, 0, len(models.Categories)+len(counts))
	fixed := make(map[string]bool, len(models.Categories))
	for _, c := range models.Categories {
		fixed[c] = true
		out = append(out, CategoryCount{Name: c, Count: counts[c]})
	}

	var extra []string
	for key := range counts {
		if !fixed[key] {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	for _, key := range extra {
		out = append(out, CategoryCount{Name: names[key], Count: counts[key]})
	}
	return out
}
