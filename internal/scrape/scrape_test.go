package scrape

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type fakeTransport struct {
	pages map[string][]byte
	err   error
}

func (f *fakeTransport) Get(_ context.Context, url string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.pages[url]
	if !ok {
		return nil, errors.New("unexpected status: 404")
	}
	return body, nil
}

func articlePage(text string) []byte {
	return []byte(`<html><head><title>Article Title</title></head><body>
		<nav>site navigation junk</nav>
		<article><p>` + text + `</p></article>
		<footer>footer junk</footer>
	</body></html>`)
}

func filler(n int) string {
	return strings.Repeat("readable article body text ", n/27+1)[:n]
}

func newScraper(tr Transport) *Scraper {
	return &Scraper{Transport: tr, Log: zerolog.Nop()}
}

func TestScrape_Success(t *testing.T) {
	url := "https://example.com/post?utm_source=x#frag"
	tr := &fakeTransport{pages: map[string][]byte{url: articlePage(filler(400))}}

	res := newScraper(tr).Scrape(context.Background(), url)
	if !res.OK() {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if res.URL != "https://example.com/post" {
		t.Fatalf("URL not cleaned: %q", res.URL)
	}
	if res.Title != "Article Title" {
		t.Fatalf("title = %q", res.Title)
	}
	if strings.Contains(res.Content, "navigation junk") || strings.Contains(res.Content, "footer junk") {
		t.Fatal("boilerplate leaked into content")
	}
	if !strings.Contains(res.Content, "readable article body") {
		t.Fatal("article text missing")
	}
	if res.Markdown != res.Content {
		t.Fatal("content and markdown should carry the same text")
	}
}

func TestScrape_ShortBody(t *testing.T) {
	url := "https://example.com/tiny"
	tr := &fakeTransport{pages: map[string][]byte{url: []byte(strings.Repeat("x", 50))}}

	res := newScraper(tr).Scrape(context.Background(), url)
	if res.OK() {
		t.Fatal("expected failure for 50-byte body")
	}
	if !strings.Contains(res.Err.Error(), "too short") {
		t.Fatalf("error = %v, want mention of short response", res.Err)
	}
}

func TestScrape_InsufficientContent(t *testing.T) {
	url := "https://example.com/thin"
	// Big enough body, nearly empty after extraction.
	page := []byte(`<html><body><article>tiny</article>` + strings.Repeat("<!-- pad -->", 20) + `</body></html>`)
	tr := &fakeTransport{pages: map[string][]byte{url: page}}

	res := newScraper(tr).Scrape(context.Background(), url)
	if res.OK() {
		t.Fatal("expected failure for thin content")
	}
	if !strings.Contains(res.Err.Error(), "insufficient content") {
		t.Fatalf("error = %v", res.Err)
	}
}

func TestScrape_TransportError(t *testing.T) {
	tr := &fakeTransport{err: errors.New("connection refused")}
	res := newScraper(tr).Scrape(context.Background(), "https://example.com/x")
	if res.OK() {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Err.Error(), "connection refused") {
		t.Fatalf("cause lost: %v", res.Err)
	}
}

func TestScrape_TruncatesContent(t *testing.T) {
	url := "https://example.com/long"
	tr := &fakeTransport{pages: map[string][]byte{url: articlePage(filler(40000))}}

	res := newScraper(tr).Scrape(context.Background(), url)
	if !res.OK() {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if got := len([]rune(res.Content)); got > 30000 {
		t.Fatalf("content %d chars, want <= 30000", got)
	}
}

type panicTransport struct{}

func (panicTransport) Get(context.Context, string) ([]byte, error) {
	panic("transport blew up")
}

func TestScrape_RecoversPanic(t *testing.T) {
	res := newScraper(panicTransport{}).Scrape(context.Background(), "https://example.com/x")
	if res.OK() {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Err.Error(), "transport blew up") {
		t.Fatalf("panic message lost: %v", res.Err)
	}
}
