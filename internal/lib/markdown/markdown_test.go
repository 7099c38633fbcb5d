package markdown

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := New()

	out, err := r.Render("# Title\n\nSome **bold** text.")
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 id="title">Title</h1>`)
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestExcerpt(t *testing.T) {
	r := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "skips heading",
			in:   "# Heading\n\nFirst paragraph with *emphasis* and a [link](https://example.com).\n\nSecond paragraph.",
			want: "First paragraph with emphasis and a link.",
		},
		{
			name: "joins soft breaks",
			in:   "line one\nline two",
			want: "line one line two",
		},
		{
			name: "no paragraph",
			in:   "## Only a heading",
			want: "",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Excerpt(tt.in))
		})
	}
}

func TestExcerpt_Truncates(t *testing.T) {
	r := New()

	long := strings.Repeat("word ", 100)
	got := r.Excerpt(long)

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), MaxExcerptLength+3)
	assert.NotContains(t, strings.TrimSuffix(got, "..."), "wor ")
}
