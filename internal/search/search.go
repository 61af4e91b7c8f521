package search

import "context"

// Provider is a minimal interface for search providers. Results are URLs in
// the relevance order the engine returned them.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
	Name() string
}
