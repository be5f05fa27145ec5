
package scanner

import (
	"context"
	"errors"

	"sectxt-go-scanner/internal/enricher"
	"sectxt-go-scanner/internal/fetcher"
	"sectxt-go-scanner/internal/models"
	"sectxt-go-scanner/internal/parser"
	"sectxt-go-scanner/pkg/logger"
)

type Scanner struct {
	fetch  *fetcher.Client
	parse  *parser.Parser
	enrich *enricher.Enricher
	log    *logger.Logger
}

func New(fetch *fetcher.Client, enrich *enricher.Enricher, log *logger.Logger) *Scanner {
	return &Scanner{fetch: fetch, parse: parser.New(), enrich: enrich, log: log}
}

// Scan runs the pipeline for one security.txt URL. Invalid input,
// unreachable targets and wrong content types end the scan quietly with
// no result and no error; oversized bodies and duplicate fields come
// back as errors.
func (s *Scanner) Scan(ctx context.Context, rawURL string) (*models.ScanResult, error) {
	text, finalURL, elapsed, err := s.fetch.Fetch(ctx, rawURL)
	if err != nil {
		if errors.Is(err, fetcher.ErrInvalidURL) || errors.Is(err, fetcher.ErrUnreachable) || errors.Is(err, fetcher.ErrContentType) {
			s.log.Warnf("skipping %s: %v", rawURL, err)
			return nil, nil
		}
		return nil, err
	}

	doc, err := s.parse.Parse(text)
	if err != nil {
		return nil, err
	}

	return &models.ScanResult{
		SourceURL: finalURL,
		FetchMs:   elapsed.Milliseconds(),
		Entries:   s.enrich.Enrich(ctx, doc),
	}, nil
}
