package usecase

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// whitespaceRunRegex collapses runs of whitespace left over after markup removal
var whitespaceRunRegex = regexp.MustCompile(`\s+`)

// invisibleSelectors are elements whose text content never renders on the page
// and would only pollute the extraction prompt.
var invisibleSelectors = []string{"script", "style", "noscript", "iframe", "svg"}

// NormalizeText strips markup from a raw fetched page and returns its visible
// text with whitespace runs collapsed to single spaces. It never fails:
// malformed markup degrades to best-effort text.
func NormalizeText(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		// net/html is extremely lenient, so this is nearly unreachable;
		// fall back to collapsing the raw input.
		return collapseWhitespace(raw)
	}

	for _, sel := range invisibleSelectors {
		doc.Find(sel).Remove()
	}

	text := doc.Find("body").Text()
	if text == "" {
		// Fragments without a body tag still parse; net/html synthesizes
		// one, but keep the whole-document fallback for safety.
		text = doc.Text()
	}

	return collapseWhitespace(text)
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRunRegex.ReplaceAllString(s, " "))
}
