package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"

	"github.com/hyperifyio/goscrape/internal/browser"
)

const defaultTimeout = 15 * time.Second

// Client wraps http.Client with browser-impersonation headers, a bounded
// per-request timeout, and a redirect hop cap.
type Client struct {
	HTTPClient *http.Client
	// Profile supplies the impersonation headers; a fresh User-Agent is
	// drawn for every request.
	Profile *browser.Profile
	// PerRequestTimeout bounds each request. Zero means 15s.
	PerRequestTimeout time.Duration
	// RedirectMaxHops caps redirect following to avoid loops. Zero means default (5).
	RedirectMaxHops int

	Log zerolog.Logger
}

func (c *Client) timeout() time.Duration {
	if c.PerRequestTimeout > 0 {
		return c.PerRequestTimeout
	}
	return defaultTimeout
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{Timeout: c.timeout(), CheckRedirect: c.checkRedirectFunc()}
}

// Get issues a GET impersonating a desktop browser, follows redirects, and
// returns the response body decoded to UTF-8 per the Content-Type charset.
// Any transport fault or non-2xx status comes back as an error.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	// Reject non-HTTP(S) schemes early
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return nil, fmt.Errorf("unsupported URL scheme: %q", rawURL)
	}
	if c.Profile != nil {
		for k, v := range c.Profile.Headers() {
			// The transport negotiates Accept-Encoding itself so bodies
			// arrive transparently decompressed.
			if strings.EqualFold(k, "Accept-Encoding") {
				continue
			}
			req.Header.Set(k, v)
		}
	}

	reqCtx, cancel := context.WithTimeout(req.Context(), c.timeout())
	defer cancel()
	req = req.WithContext(reqCtx)

	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := decodeBody(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	c.Log.Debug().Str("url", rawURL).Int("bytes", len(body)).Msg("fetched")
	return body, nil
}

// decodeBody converts the body to UTF-8 using the charset declared in the
// Content-Type header, falling back to sniffing.
func decodeBody(r io.Reader, contentType string) ([]byte, error) {
	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(decoded)
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects
		if req.URL == nil || !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
