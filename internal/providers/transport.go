package providers

import (
	"net/http"
	"strings"
	"time"
)

// DefaultHTTPTimeout bounds a single upstream call.
const DefaultHTTPTimeout = 10 * time.Second

// HTTPDoer is the subset of *http.Client the upstream clients use.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResolveHTTPClient returns client or a new one with the given timeout.
func ResolveHTTPClient(client *http.Client, timeout time.Duration) HTTPDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NormalizeBaseURL trims a trailing slash, falling back to def when raw is empty.
func NormalizeBaseURL(raw, def string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = def
	}
	return strings.TrimSuffix(raw, "/")
}
