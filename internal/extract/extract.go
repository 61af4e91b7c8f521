package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
)

// minMainText is the collapsed-text length a candidate subtree must exceed
// to be accepted as the main content.
const minMainText = 200

const defaultTitle = "Untitled"

// Page is the extracted slice of a fetched document: its title and the HTML
// of the subtree most likely to hold the readable content.
type Page struct {
	Title       string
	ContentHTML string
}

// Elements stripped wholesale before content selection.
var (
	junkSelector   = "script, style, meta, link, noscript"
	chromeSelector = "nav, header, footer, aside, ads"
)

// Candidate selectors for the main content subtree, in priority order.
var contentSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	".content",
	".post",
	".entry",
}

// FromHTML parses a fetched document and returns its title plus the HTML of
// the main-content subtree. The title is read before boilerplate stripping
// since it may live in meta tags.
func FromHTML(body []byte) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Page{}, fmt.Errorf("parse html: %w", err)
	}

	title := findTitle(body, doc)

	doc.Find(junkSelector).Remove()
	doc.Find(chromeSelector).Remove()

	content := findMain(doc)
	htm, err := goquery.OuterHtml(content)
	if err != nil {
		return Page{}, fmt.Errorf("serialize content: %w", err)
	}
	return Page{Title: title, ContentHTML: htm}, nil
}

// findTitle tries og:title, then meta name="title", then the <title> element.
func findTitle(body []byte, doc *goquery.Document) string {
	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(bytes.NewReader(body)); err == nil {
		if t := strings.TrimSpace(og.Title); t != "" {
			return t
		}
	}
	if v, ok := doc.Find(`meta[name="title"]`).First().Attr("content"); ok {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return defaultTitle
}

// findMain walks the candidate selectors and accepts the first subtree with
// enough visible text, falling back to body, then to the whole document.
func findMain(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		cand := doc.Find(sel).First()
		if cand.Length() == 0 {
			continue
		}
		if len(collapseText(cand)) > minMainText {
			return cand
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

func collapseText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
