
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sectxt-go-scanner/internal/urlcheck"
	"sectxt-go-scanner/pkg/logger"
)

const (
	// SizeLimit is the hard ceiling on a security.txt body. One byte
	// over aborts the transfer.
	SizeLimit = 1024

	WellKnownPath = "/.well-known/security.txt"
)

var (
	ErrInvalidURL  = errors.New("invalid url")
	ErrUnreachable = errors.New("resource unreachable")
	ErrContentType = errors.New("content type is not text/plain")
)

type SizeLimitError struct {
	URL   string
	Limit int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("response from %s exceeds %d bytes", e.URL, e.Limit)
}

type Client struct {
	client    *http.Client
	limit     int64
	userAgent string
	checks    *urlcheck.Checker
	log       *logger.Logger
}

func New(timeout, dialTimeout time.Duration, limit int64, checks *urlcheck.Checker, log *logger.Logger) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		limit:     limit,
		userAgent: "sectxt-go-scanner/1.0 (+https://example.com)",
		checks:    checks,
		log:       log,
	}
}

// Fetch retrieves the security.txt resource at rawURL and returns its
// decoded text plus the final (post-redirect) URL. The body streams
// through an incremental decoder; the instant the raw byte count passes
// the limit the transfer is canceled and a *SizeLimitError comes back.
// Exactly limit bytes is fine.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, string, time.Duration, error) {
	start := time.Now()

	if !c.checks.IsValid(rawURL) {
		return "", "", 0, ErrInvalidURL
	}
	if !c.checks.Exists(ctx, rawURL) {
		return "", "", 0, ErrUnreachable
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", 0, ErrInvalidURL
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warnf("get %s: %v", rawURL, err)
		return "", "", 0, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", 0, ErrUnreachable
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType != "text/plain" {
		return "", "", 0, ErrContentType
	}

	var (
		dec   *streamDecoder
		total int64
		buf   = make([]byte, 512)
	)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			total += int64(n)
			if total > c.limit {
				cancel() // kill the in-flight transfer
				return "", "", 0, &SizeLimitError{URL: rawURL, Limit: c.limit}
			}
			if dec == nil {
				dec = newStreamDecoder(buf[:n], contentType)
			}
			if err := dec.Write(buf[:n]); err != nil {
				return "", "", 0, err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			c.log.Warnf("read %s: %v", rawURL, rerr)
			return "", "", 0, ErrUnreachable
		}
	}

	var text string
	if dec != nil {
		text, err = dec.Flush()
		if err != nil {
			return "", "", 0, err
		}
	}

	finalURL := resp.Request.URL.String()
	return text, finalURL, time.Since(start), nil
}

// NormalizeTarget turns a bare host or origin into its conventional
// security.txt location. Fully specified URLs pass through untouched.
func NormalizeTarget(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = WellKnownPath
	}
	return u.String()
}
