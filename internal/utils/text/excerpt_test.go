package text_test

import (
	"testing"

	"usher-web/internal/utils/text"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple paragraph",
			input: "<p>Hello world</p>",
			want:  "Hello world",
		},
		{
			name:  "nested markup and whitespace",
			input: "<div><h1>Title</h1>\n  <p>Body   text</p></div>",
			want:  "Title Body text",
		},
		{
			name:  "plain text passes through",
			input: "no markup here",
			want:  "no markup here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := text.StripHTML(tt.input)
			if got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	got := text.Excerpt("<p>0123456789</p>", 5)
	if got != "01234…" {
		t.Errorf("Excerpt = %q, want %q", got, "01234…")
	}

	short := text.Excerpt("<p>abc</p>", 10)
	if short != "abc" {
		t.Errorf("Excerpt short = %q, want %q", short, "abc")
	}
}
