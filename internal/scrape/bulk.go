package scrape

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// maxConcurrent bounds the number of in-flight fetches during a bulk run.
const maxConcurrent = 5

// Bulk scrapes many URLs with at most maxConcurrent in flight and returns
// only the successful results, in completion order.
type Bulk struct {
	Scraper *Scraper
	Log     zerolog.Logger
}

// ScrapeAll fans the URLs out over semaphore-gated goroutines. One failing
// or panicking page never aborts its siblings; failures are logged and
// dropped from the output.
func (b *Bulk) ScrapeAll(ctx context.Context, urls []string) []Result {
	sem := semaphore.NewWeighted(maxConcurrent)
	results := make(chan Result, len(urls))

	var wg sync.WaitGroup
	for _, u := range urls {
		if err := sem.Acquire(ctx, 1); err != nil {
			results <- Result{URL: u, Err: err}
			continue
		}
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			defer sem.Release(1)
			results <- b.Scraper.Scrape(ctx, u)
		}(u)
	}
	wg.Wait()
	close(results)

	out := make([]Result, 0, len(urls))
	for r := range results {
		if !r.OK() {
			b.Log.Warn().Str("url", r.URL).Err(r.Err).Msg("scrape failed")
			continue
		}
		b.Log.Info().Str("url", r.URL).Msg("scrape ok")
		out = append(out, r)
	}
	return out
}
