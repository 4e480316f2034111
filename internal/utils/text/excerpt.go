package text

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML extracts the plain text of an HTML fragment, collapsing
// whitespace runs to single spaces. CMS bodies arrive as rendered HTML;
// the site layer uses this for meta descriptions and card excerpts.
// Returns the input unchanged if it does not parse as HTML.
func StripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt returns the first maxRunes runes of the stripped text, with a
// trailing ellipsis when truncated.
func Excerpt(html string, maxRunes int) string {
	plain := StripHTML(html)
	runes := []rune(plain)
	if len(runes) <= maxRunes {
		return plain
	}
	return strings.TrimSpace(string(runes[:maxRunes])) + "…"
}
