package search

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/hyperifyio/goscrape/internal/fetch"
	"github.com/hyperifyio/goscrape/internal/urlutil"
)

const (
	htmlEndpoint       = "https://html.duckduckgo.com/html/"
	defaultSearchLimit = 5
	// resultAnchor marks organic result links on the HTML results page.
	resultAnchor = "a.result__a"
)

// DuckDuckGo implements Provider by scraping the engine's HTML results page
// with the same browser impersonation used for page fetches.
type DuckDuckGo struct {
	// BaseURL overrides the results endpoint, mainly for tests.
	BaseURL string
	Client  *fetch.Client
	Log     zerolog.Logger
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search queries the HTML results endpoint and returns up to limit organic
// result URLs in document order, skipping ad and tracker links.
func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	base := d.BaseURL
	if base == "" {
		base = htmlEndpoint
	}

	body, err := d.Client.Get(ctx, base+"?q="+url.QueryEscape(query))
	if err != nil {
		return nil, fmt.Errorf("duckduckgo query: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	urls := make([]string, 0, limit)
	doc.Find(resultAnchor).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok || href == "" || urlutil.IsAdOrTracker(href) {
			return true
		}
		urls = append(urls, href)
		return len(urls) < limit
	})
	d.Log.Debug().Str("query", query).Int("results", len(urls)).Msg("search done")
	return urls, nil
}
