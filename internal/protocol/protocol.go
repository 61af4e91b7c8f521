package protocol

import (
	"github.com/hyperifyio/goscrape/internal/aggregate"
)

// Command names accepted on the input envelope.
const (
	CmdScrape          = "scrape"
	CmdSearch          = "search_duckduckgo"
	CmdSmartSearch     = "smart_search"
	CmdSearchAndScrape = "search_and_scrape"
	CmdScrapeBulk      = "scrape_urls_bulk"
	CmdCheck           = "check"
)

// Command is the single JSON object a host writes on stdin. The Command tag
// selects the variant; the remaining fields are per-variant payload.
type Command struct {
	Command string   `json:"command"`
	URL     string   `json:"url,omitempty"`
	URLs    []string `json:"urls,omitempty"`
	Query   string   `json:"query,omitempty"`
	Limit   int      `json:"limit,omitempty"`
	// Visible is accepted for host compatibility; nothing consumes it.
	Visible bool              `json:"visible,omitempty"`
	Config  *aggregate.Config `json:"config,omitempty"`
}

// Response variants. Exactly one object is written per invocation; the Type
// tag is "success" or "error".

type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ScrapeResponse doubles as the element type of BulkResponse.Results, so
// each bulk entry carries its own success tag like a standalone result.
type ScrapeResponse struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Markdown string `json:"markdown"`
}

type SearchResponse struct {
	Type string   `json:"type"`
	URLs []string `json:"urls"`
}

type BulkResponse struct {
	Type    string           `json:"type"`
	Results []ScrapeResponse `json:"results"`
}

type CheckResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
