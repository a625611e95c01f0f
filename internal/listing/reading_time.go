package listing

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// wordsPerMinute is an average adult reading speed for non-fiction.
const wordsPerMinute = 238

// ReadingTime estimates reading time in minutes. It returns 0 for empty text
// and at least 1 otherwise.
func ReadingTime(text string) int {
	words := countWords(text)
	if words == 0 {
		return 0
	}
	return max(1, int(math.Ceil(float64(words)/wordsPerMinute)))
}

func countWords(text string) int {
	return len(strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(".,;:!?\"()[]{}", r)
	}))
}

// ReadingTimeLabel formats ReadingTime for display, e.g. "5 MIN READ".
func ReadingTimeLabel(text string) string {
	n := ReadingTime(text)
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d MIN READ", n)
}
