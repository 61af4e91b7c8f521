package aggregate

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/goscrape/internal/search"
	"github.com/hyperifyio/goscrape/internal/urlutil"
)

// Category groups preferred sites that can be toggled per request.
type Category struct {
	Enabled   bool     `json:"enabled" yaml:"enabled"`
	BaseSites []string `json:"base_sites" yaml:"base_sites"`
}

// Config controls how many sources a smart search gathers and from where.
// The JSON keys match the host application's payloads.
type Config struct {
	TotalSourcesLimit int        `json:"total_sources_limit" yaml:"total_sources_limit"`
	Categories        []Category `json:"categories" yaml:"categories"`
	UserCustomSites   []string   `json:"user_custom_sites" yaml:"user_custom_sites"`
	ExcludedDomains   []string   `json:"excluded_domains" yaml:"excluded_domains"`
}

const (
	defaultTotalLimit = 15
	sitesPerCategory  = 2
	perCategoryLimit  = 3
	maxCustomSites    = 3
	perCustomLimit    = 2
)

// Aggregator fans one query out into a general search plus site-scoped
// sub-queries and merges the results.
type Aggregator struct {
	Provider search.Provider
	Log      zerolog.Logger
}

// Search runs the general query at half the total limit, then site-scoped
// sub-queries for the first two sites of each enabled category and the first
// three user-custom sites. The concatenation is deduplicated on the raw
// result URL, filtered against the excluded domains, and capped at the total
// limit. A failing sub-query contributes nothing and never aborts the run.
func (a *Aggregator) Search(ctx context.Context, query string, cfg Config) []string {
	limit := cfg.TotalSourcesLimit
	if limit <= 0 {
		limit = defaultTotalLimit
	}

	all := a.runQuery(ctx, query, limit/2)

	for _, cat := range cfg.Categories {
		if !cat.Enabled {
			continue
		}
		for _, site := range head(cat.BaseSites, sitesPerCategory) {
			all = append(all, a.runQuery(ctx, "site:"+site+" "+query, perCategoryLimit)...)
		}
	}
	for _, site := range head(cfg.UserCustomSites, maxCustomSites) {
		all = append(all, a.runQuery(ctx, "site:"+site+" "+query, perCustomLimit)...)
	}

	// Dedup on the raw result URL: two results differing only in query
	// string count as distinct sources.
	seen := make(map[string]struct{}, len(all))
	kept := make([]string, 0, limit)
	for _, u := range all {
		if _, ok := seen[u]; ok {
			continue
		}
		if urlutil.IsDomainBlocked(u, cfg.ExcludedDomains) {
			continue
		}
		seen[u] = struct{}{}
		kept = append(kept, u)
		if len(kept) >= limit {
			break
		}
	}
	a.Log.Info().Str("query", query).Int("sources", len(kept)).Msg("smart search done")
	return kept
}

func (a *Aggregator) runQuery(ctx context.Context, query string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	urls, err := a.Provider.Search(ctx, query, limit)
	if err != nil {
		a.Log.Warn().Str("query", query).Err(err).Msg("sub-query failed")
		return nil
	}
	return urls
}

func head(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
