package browser

import "math/rand/v2"

// DefaultUserAgents is the desktop pool rotated across outgoing requests so
// consecutive fetches do not present the same fingerprint.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/121.0",
}

// Profile builds browser-impersonation headers for outgoing requests. The
// pool is fixed at construction; Headers draws a fresh User-Agent per call.
type Profile struct {
	UserAgents []string
}

func NewProfile() *Profile {
	return &Profile{UserAgents: DefaultUserAgents}
}

// UserAgent returns one pool entry chosen uniformly at random.
func (p *Profile) UserAgent() string {
	if len(p.UserAgents) == 0 {
		return ""
	}
	return p.UserAgents[rand.IntN(len(p.UserAgents))]
}

// Headers returns a header set resembling a real desktop browser request.
func (p *Profile) Headers() map[string]string {
	return map[string]string{
		"User-Agent":                p.UserAgent(),
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "pt-BR,pt;q=0.9,en;q=0.8",
		"Accept-Encoding":           "gzip, deflate",
		"DNT":                       "1",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
	}
}
