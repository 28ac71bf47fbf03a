package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Go 1.25 Released!", "go-1-25-released"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"Multiple---separators___here", "multiple-separators-here"},
		{"UPPER case TITLE", "upper-case-title"},
		{"éclair über all", "clair-ber-all"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestReadingTime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ReadingTime(""))
	assert.Equal(t, 1, ReadingTime("one"))
	assert.Equal(t, 1, ReadingTime(words(200)))
	assert.Equal(t, 2, ReadingTime(words(201)))
	assert.Equal(t, 5, ReadingTime(words(1000)))
}

func words(n int) string {
	out := make([]byte, 0, n*5)
	for i := 0; i < n; i++ {
		out = append(out, "word "...)
	}
	return string(out)
}
