
package urlcheck

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"sectxt-go-scanner/pkg/logger"
)

type Checker struct {
	client *http.Client
	log    *logger.Logger
}

func New(timeout time.Duration, log *logger.Logger) *Checker {
	return &Checker{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// IsValid reports whether s parses as an absolute URL with a scheme and
// host. The failure cause is logged, never returned.
func (c *Checker) IsValid(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		c.log.Warnf("invalid url %q: %v", s, err)
		return false
	}
	if u.Scheme == "" || u.Host == "" {
		c.log.Warnf("invalid url %q: missing scheme or host", s)
		return false
	}
	return true
}

// Exists probes s with a HEAD request and reports whether it answered
// 200. Network failures are logged and read as absence.
func (c *Checker) Exists(ctx context.Context, s string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s, nil)
	if err != nil {
		c.log.Warnf("head %s: %v", s, err)
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warnf("head %s: %v", s, err)
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
