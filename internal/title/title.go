
package title

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"sectxt-go-scanner/pkg/logger"
)

type Fetcher struct {
	client  *http.Client
	sizeCap int64
	log     *logger.Logger
}

func New(timeout time.Duration, sizeCap int64, log *logger.Logger) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		sizeCap: sizeCap,
		log:     log,
	}
}

// Fetch returns the text of the first <title> on the page at rawURL.
// Any irregularity (fetch failure, undecodable body, absent tag) yields
// "". Bodies over the cap are truncated, not rejected.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		f.log.Warnf("title %s: %v", rawURL, err)
		return ""
	}
	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Warnf("title %s: %v", rawURL, err)
		return ""
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.sizeCap))
	if err != nil {
		f.log.Warnf("title %s: %v", rawURL, err)
		return ""
	}

	enc, _, _ := charset.DetermineEncoding(data, resp.Header.Get("Content-Type"))
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return ""
		}
		utf8data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
