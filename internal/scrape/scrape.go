package scrape

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/goscrape/internal/convert"
	"github.com/hyperifyio/goscrape/internal/extract"
	"github.com/hyperifyio/goscrape/internal/urlutil"
)

const (
	// minBodyBytes rejects responses too small to be a real page.
	minBodyBytes = 100
	// minContentChars rejects extractions that yield no usable text.
	minContentChars = 100
	maxContentChars = 30000
	maxTitleChars   = 500
)

// Result is the outcome of scraping one URL. Err is nil on success; a failed
// result carries only the original URL and the error.
type Result struct {
	URL      string
	Title    string
	Content  string
	Markdown string
	Err      error
}

func (r Result) OK() bool { return r.Err == nil }

// Transport retrieves one page body. *fetch.Client satisfies this; tests
// substitute fakes.
type Transport interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Scraper runs the fetch → extract → convert pipeline for single URLs.
type Scraper struct {
	Transport Transport
	Log       zerolog.Logger
}

// Scrape retrieves one page and reduces it to a title plus bounded markdown
// content. Every fault, including a panic inside the HTML handling, comes
// back as the Result's Err; Scrape never propagates.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{URL: rawURL, Err: fmt.Errorf("scrape %s: %v", rawURL, r)}
		}
	}()

	body, err := s.Transport.Get(ctx, rawURL)
	if err != nil {
		return Result{URL: rawURL, Err: fmt.Errorf("failed to fetch URL: %w", err)}
	}
	if len(body) < minBodyBytes {
		return Result{URL: rawURL, Err: fmt.Errorf("response too short (%d bytes)", len(body))}
	}

	page, err := extract.FromHTML(body)
	if err != nil {
		return Result{URL: rawURL, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}

	text, err := convert.Markdown(page.ContentHTML)
	if err != nil {
		return Result{URL: rawURL, Err: err}
	}
	if n := utf8.RuneCountInString(text); n < minContentChars {
		return Result{URL: rawURL, Err: fmt.Errorf("insufficient content (%d chars)", n)}
	}

	text = truncate(text, maxContentChars)
	s.Log.Debug().Str("url", rawURL).Int("chars", utf8.RuneCountInString(text)).Msg("extracted")
	return Result{
		URL:      urlutil.Clean(rawURL),
		Title:    truncate(page.Title, maxTitleChars),
		Content:  text,
		Markdown: text,
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
