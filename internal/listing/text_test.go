package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoanghai1803/inkwell/internal/models"
)

func TestParagraphs(t *testing.T) {
	got := Paragraphs("First line.\r\n\n  Second line.  \n\n\nThird.")
	assert.Equal(t, []string{"First line.", "Second line.", "Third."}, got)
	assert.Empty(t, Paragraphs("  \n "))
}

func TestCategoryCounts(t *testing.T) {
	all := []models.Blog{
		{Category: []string{"FINANCE"}},
		{Category: []string{"tech", "TECH"}},
		{Category: []string{"TECH", "Startup"}},
		{Category: []string{"startup"}},
		{Category: nil},
	}

	got := CategoryCounts(all)

	want := []CategoryCount{
		{Name: "TECH", Count: 2},
		{Name: "FINANCE", Count: 1},
		{Name: "HEALTHCARE", Count: 0},
		{Name: "POLITICS", Count: 0},
		{Name: "GOVERNANCE", Count: 0},
		{Name: "CAREER", Count: 0},
		{Name: "Startup", Count: 2},
	}
	assert.Equal(t, want, got)
}
