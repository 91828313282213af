package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText flattens an HTML fragment to its text content with whitespace
// collapsed. Strings without markup or entities are returned untouched, and
// text with entities but no elements only has its entities decoded.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	body := doc.Find("body")
	if body.Find("*").Length() == 0 {
		return body.Text()
	}

	// keep words from adjacent blocks apart
	doc.Find("br").ReplaceWithHtml(" ")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6").AppendHtml(" ")

	return strings.Join(strings.Fields(body.Text()), " ")
}
