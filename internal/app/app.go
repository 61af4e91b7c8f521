package app

import (
	"context"
	"io"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/hyperifyio/goscrape/internal/aggregate"
	"github.com/hyperifyio/goscrape/internal/browser"
	"github.com/hyperifyio/goscrape/internal/fetch"
	"github.com/hyperifyio/goscrape/internal/protocol"
	"github.com/hyperifyio/goscrape/internal/scrape"
	"github.com/hyperifyio/goscrape/internal/search"
)

// Config carries everything the process needs for one invocation.
type Config struct {
	// SearchBaseURL overrides the DuckDuckGo HTML results endpoint.
	SearchBaseURL string
	// RequestTimeout bounds every network call. Zero means 15s.
	RequestTimeout time.Duration
	// UserAgents overrides the default impersonation pool.
	UserAgents []string
	// SourcesFile optionally points at a YAML file with the default
	// smart-search source configuration.
	SourcesFile string
}

// Run wires the pipeline and serves exactly one command from in to out.
// Diagnostics go to the logger only; out receives a single JSON object.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, logger zerolog.Logger) error {
	profile := browser.NewProfile()
	if len(cfg.UserAgents) > 0 {
		profile.UserAgents = cfg.UserAgents
	}

	client := &fetch.Client{
		Profile:           profile,
		PerRequestTimeout: cfg.RequestTimeout,
		Log:               logger,
	}
	scraper := &scrape.Scraper{Transport: client, Log: logger}
	provider := &search.DuckDuckGo{BaseURL: cfg.SearchBaseURL, Client: client, Log: logger}

	defaults, err := loadSources(cfg.SourcesFile)
	if err != nil {
		logger.Warn().Err(err).Str("file", cfg.SourcesFile).Msg("sources file ignored")
	}

	reg := protocol.NewRegistry()
	reg.Register(protocol.CapTransport, client.Profile != nil)
	reg.Register(protocol.CapParser, probeParser())
	reg.Register(protocol.CapRenderer, probeRenderer())

	disp := &protocol.Dispatcher{
		Scraper:    scraper,
		Bulk:       &scrape.Bulk{Scraper: scraper, Log: logger},
		Provider:   provider,
		Aggregator: &aggregate.Aggregator{Provider: provider, Log: logger},
		Registry:   reg,
		Defaults:   defaults,
		Log:        logger,
	}
	return disp.Dispatch(ctx, in, out)
}

// The parser and renderer are compiled in, so the probes exercise them on a
// trivial document once at startup rather than trusting the import to work.

func probeParser() bool {
	_, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>ok</body></html>"))
	return err == nil
}

func probeRenderer() bool {
	out, err := htmltomarkdown.ConvertString("<p>ok</p>")
	return err == nil && out != ""
}
