package api

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FlattenHTML reduces an assistant reply that may carry light HTML markup to
// plain renderable text. Replies without markup pass through unchanged.
func FlattenHTML(reply string) string {
	if !strings.ContainsRune(reply, '<') {
		return reply
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(reply))
	if err != nil {
		return reply
	}
	doc.Find("script, style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})
	// Line breaks and paragraphs become newlines so lists survive flattening.
	doc.Find("br").Each(func(i int, s *goquery.Selection) {
		s.ReplaceWithHtml("\n")
	})
	doc.Find("p, li, div").Each(func(i int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	text := doc.Text()
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
