package protocol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/goscrape/internal/aggregate"
	"github.com/hyperifyio/goscrape/internal/scrape"
	"github.com/hyperifyio/goscrape/internal/search"
)

// Dispatcher decodes one command envelope, routes it to the pipeline, and
// encodes one response object.
type Dispatcher struct {
	Scraper    *scrape.Scraper
	Bulk       *scrape.Bulk
	Provider   search.Provider
	Aggregator *aggregate.Aggregator
	Registry   *Registry
	// Defaults is used when a command omits its config payload.
	Defaults aggregate.Config
	Log      zerolog.Logger
}

// Dispatch reads exactly one JSON command from r and writes exactly one JSON
// response line to w. Protocol-level faults become error envelopes on w;
// Dispatch itself only fails when the response cannot be written.
func (d *Dispatcher) Dispatch(ctx context.Context, r io.Reader, w io.Writer) error {
	resp := func() (resp any) {
		defer func() {
			if rec := recover(); rec != nil {
				d.Log.Error().Interface("panic", rec).Msg("dispatch panicked")
				resp = errorf("Critical error: %v", rec)
			}
		}()
		return d.handle(ctx, r)
	}()

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func (d *Dispatcher) handle(ctx context.Context, r io.Reader) any {
	raw, err := io.ReadAll(r)
	if err != nil {
		return errorf("Failed to read input: %v", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return errorf("No input provided")
	}
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return errorf("Invalid JSON: %v", err)
	}
	d.Log.Info().Str("command", cmd.Command).Msg("command received")

	switch cmd.Command {
	case CmdScrape:
		if cmd.URL == "" {
			return errorf("URL missing")
		}
		return d.scrapeOne(ctx, cmd.URL)

	case CmdSearch:
		if cmd.Query == "" {
			return errorf("Query missing")
		}
		urls, err := d.Provider.Search(ctx, cmd.Query, cmd.Limit)
		if err != nil {
			// The search contract is best-effort: a failed query is an
			// empty result, not an error envelope.
			d.Log.Warn().Err(err).Msg("search failed")
			urls = nil
		}
		return SearchResponse{Type: "success", URLs: orEmpty(urls)}

	case CmdSmartSearch:
		if cmd.Query == "" {
			return errorf("Query missing")
		}
		urls := d.Aggregator.Search(ctx, cmd.Query, d.config(cmd))
		return SearchResponse{Type: "success", URLs: orEmpty(urls)}

	case CmdSearchAndScrape:
		if cmd.Query == "" {
			return errorf("Query missing")
		}
		urls := d.Aggregator.Search(ctx, cmd.Query, d.config(cmd))
		return BulkResponse{Type: "success", Results: d.scrapeMany(ctx, urls)}

	case CmdScrapeBulk:
		if len(cmd.URLs) == 0 {
			return errorf("URLs missing")
		}
		return BulkResponse{Type: "success", Results: d.scrapeMany(ctx, cmd.URLs)}

	case CmdCheck:
		if missing := d.Registry.Missing(); len(missing) > 0 {
			return errorf("Missing: %s", strings.Join(missing, ", "))
		}
		return CheckResponse{Type: "success", Message: "All dependencies available"}

	default:
		return errorf("Unknown command: %s", cmd.Command)
	}
}

func (d *Dispatcher) config(cmd Command) aggregate.Config {
	if cmd.Config != nil {
		return *cmd.Config
	}
	return d.Defaults
}

func (d *Dispatcher) scrapeOne(ctx context.Context, url string) any {
	res := d.Scraper.Scrape(ctx, url)
	if !res.OK() {
		return errorf("%v", res.Err)
	}
	return toScrapeResponse(res)
}

func (d *Dispatcher) scrapeMany(ctx context.Context, urls []string) []ScrapeResponse {
	results := d.Bulk.ScrapeAll(ctx, urls)
	out := make([]ScrapeResponse, 0, len(results))
	for _, r := range results {
		out = append(out, toScrapeResponse(r))
	}
	return out
}

func toScrapeResponse(r scrape.Result) ScrapeResponse {
	return ScrapeResponse{
		Type:     "success",
		URL:      r.URL,
		Title:    r.Title,
		Content:  r.Content,
		Markdown: r.Markdown,
	}
}

func errorf(format string, args ...any) ErrorResponse {
	return ErrorResponse{Type: "error", Message: fmt.Sprintf(format, args...)}
}

// orEmpty keeps the urls key present as [] in the encoded response even when
// no results were found.
func orEmpty(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}
