
package enricher

import (
	"context"
	"strings"

	"sectxt-go-scanner/internal/classifier"
	"sectxt-go-scanner/internal/langname"
	"sectxt-go-scanner/internal/models"
	"sectxt-go-scanner/internal/title"
	"sectxt-go-scanner/internal/urlcheck"
	"sectxt-go-scanner/pkg/logger"
)

type Enricher struct {
	checks *urlcheck.Checker
	titles *title.Fetcher
	links  *classifier.Classifier
	log    *logger.Logger
}

func New(checks *urlcheck.Checker, titles *title.Fetcher, log *logger.Logger) *Enricher {
	return &Enricher{
		checks: checks,
		titles: titles,
		links:  classifier.New(),
		log:    log,
	}
}

// Enrich renders doc as presentation entries, field by field in document
// order. Link lookups run sequentially; a failed lookup drops that entry
// or leaves its label empty, never the rest.
func (e *Enricher) Enrich(ctx context.Context, doc *models.SecurityTxt) []models.Entry {
	var entries []models.Entry

	for _, v := range doc.Contact {
		if e.links.IsMailLink(v) || e.links.IsPhoneLink(v) {
			entries = append(entries, models.Entry{Label: "contact", Value: v})
		}
		// a web contact additionally gets a titled link entry
		if e.checks.IsValid(v) && e.checks.Exists(ctx, v) {
			entries = append(entries, models.Entry{Label: e.titles.Fetch(ctx, v), Link: v})
		}
	}

	expires := models.Entry{Label: "expires"}
	if doc.Expires != nil {
		expires.Value = doc.Expires.Value()
	}
	entries = append(entries, expires)

	for _, v := range doc.Encryption {
		entries = append(entries, models.Entry{Label: "encryption", Value: v})
	}

	entries = e.appendLinks(ctx, entries, doc.Acknowledgments)
	entries = e.appendLinks(ctx, entries, doc.Hiring)
	entries = e.appendLinks(ctx, entries, doc.Policy)

	if doc.PreferredLanguages != nil {
		names := make([]string, 0, len(doc.PreferredLanguages))
		for _, tag := range doc.PreferredLanguages {
			names = append(names, langname.Display(tag))
		}
		entries = append(entries, models.Entry{
			Label: "preferred-languages",
			Value: strings.Join(names, ", "),
		})
	}

	if doc.Canonical != nil {
		entries = append(entries, models.Entry{Label: "canonical", Link: *doc.Canonical})
	}

	return entries
}

// appendLinks adds one titled link entry per reachable URL. Invalid or
// dead ones are skipped, these fields never render as plain values.
func (e *Enricher) appendLinks(ctx context.Context, entries []models.Entry, urls []string) []models.Entry {
	for _, v := range urls {
		if !e.checks.IsValid(v) || !e.checks.Exists(ctx, v) {
			e.log.Warnf("skipping dead link %s", v)
			continue
		}
		entries = append(entries, models.Entry{Label: e.titles.Fetch(ctx, v), Link: v})
	}
	return entries
}
