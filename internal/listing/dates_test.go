package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Time
		wantErr bool
	}{
		{raw: "2024-02-01T10:00:00.000Z", want: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)},
		{raw: "2024-02-01", want: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{raw: "  2024-02-01  ", want: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{raw: "", wantErr: true},
		{raw: "not a date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestFormatting(t *testing.T) {
	raw := "2024-02-01T10:00:00.000Z"

	assert.Equal(t, "Feb 1", FormatShort(raw))
	assert.Equal(t, "Thursday, February 1, 2024", FormatLong(raw))
	assert.Equal(t, "garbage", FormatShort("garbage"))
	assert.Equal(t, "garbage", FormatLong("garbage"))

	now := time.Date(2024, 2, 4, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "3 days ago", Relative(raw, now))
	assert.Equal(t, "", Relative("garbage", now))
}

func TestReadingTime(t *testing.T) {
	long := ""
	for i := 0; i < 500; i++ {
		long += "word "
	}

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "whitespace", text: " \n\t ", want: 0},
		{name: "one word", text: "hello", want: 1},
		{name: "punctuation separates words", text: "one,two;three", want: 1},
		{name: "500 words", text: long, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadingTime(tt.text))
		})
	}

	assert.Equal(t, "3 MIN READ", ReadingTimeLabel(long))
	assert.Equal(t, "", ReadingTimeLabel(""))
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 3, countWords("one,two;three"))
	assert.Equal(t, 2, countWords("  spaced   out  "))
	assert.Equal(t, 0, countWords("..."))
}
