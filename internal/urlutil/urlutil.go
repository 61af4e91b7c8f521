package urlutil

import (
	"net/url"
	"strings"
)

// trackerMarkers flags URLs pointing at ad or analytics endpoints rather
// than content.
var trackerMarkers = []string{
	"analytics",
	"google-analytics",
	"doubleclick",
	"facebook.com/tr",
	"ads.",
	"banner",
	"tracking",
}

// Clean strips the query string and fragment, keeping scheme://host/path.
// Input that does not parse as an absolute URL is returned unchanged.
func Clean(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host + u.Path
}

// Domain returns the host component of a URL, or "" when it does not parse.
func Domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

// IsAdOrTracker reports whether the URL looks like an ad or tracking link.
func IsAdOrTracker(raw string) bool {
	lower := strings.ToLower(raw)
	for _, marker := range trackerMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsDomainBlocked reports whether the URL's host contains any entry of the
// exclusion list as a substring.
func IsDomainBlocked(raw string, excluded []string) bool {
	host := Domain(raw)
	if host == "" {
		return false
	}
	for _, e := range excluded {
		if strings.Contains(host, e) {
			return true
		}
	}
	return false
}
