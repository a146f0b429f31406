package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText renders feed-supplied HTML as collapsed plain text for display.
// Keyword matching never uses it; it runs on the summary as published.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}

	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}
