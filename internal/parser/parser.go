
package parser

import (
	"fmt"
	"strings"

	"github.com/araddon/dateparse"

	"sectxt-go-scanner/internal/models"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

// DuplicateFieldError reports a second occurrence of a field that may
// appear at most once.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field %q", e.Field)
}

// fieldRule maps a recognized key to its cardinality and coercion.
// multi fields append; the rest are set-once, duplicates are fatal.
type fieldRule struct {
	multi bool
	set   func(*models.SecurityTxt, string)
	isSet func(*models.SecurityTxt) bool
}

var fieldRules = map[string]fieldRule{
	"contact": {multi: true, set: func(d *models.SecurityTxt, v string) {
		d.Contact = append(d.Contact, v)
	}},
	"encryption": {multi: true, set: func(d *models.SecurityTxt, v string) {
		d.Encryption = append(d.Encryption, v)
	}},
	"acknowledgments": {multi: true, set: func(d *models.SecurityTxt, v string) {
		d.Acknowledgments = append(d.Acknowledgments, v)
	}},
	"hiring": {multi: true, set: func(d *models.SecurityTxt, v string) {
		d.Hiring = append(d.Hiring, v)
	}},
	"policy": {multi: true, set: func(d *models.SecurityTxt, v string) {
		d.Policy = append(d.Policy, v)
	}},
	"expires": {
		set:   func(d *models.SecurityTxt, v string) { d.Expires = parseExpiry(v) },
		isSet: func(d *models.SecurityTxt) bool { return d.Expires != nil },
	},
	"preferred-languages": {
		set:   func(d *models.SecurityTxt, v string) { d.PreferredLanguages = splitLanguages(v) },
		isSet: func(d *models.SecurityTxt) bool { return d.PreferredLanguages != nil },
	},
	"canonical": {
		set:   func(d *models.SecurityTxt, v string) { d.Canonical = &v },
		isSet: func(d *models.SecurityTxt) bool { return d.Canonical != nil },
	},
}

// SplitLines splits decoded text on any run of CR/LF, dropping empty
// segments and preserving order.
func (p *Parser) SplitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool { return r == '\r' || r == '\n' })
}

// FoldLines folds non-comment lines into a structured document. Lines
// without a "key: value" shape and unrecognized keys are ignored. A
// repeated set-once field aborts the whole fold.
func (p *Parser) FoldLines(lines []string) (*models.SecurityTxt, error) {
	doc := &models.SecurityTxt{}
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, ": ")
		if !found {
			continue
		}
		key = strings.ToLower(key)
		rule, ok := fieldRules[key]
		if !ok {
			continue
		}
		if !rule.multi && rule.isSet(doc) {
			return nil, &DuplicateFieldError{Field: key}
		}
		rule.set(doc, value)
	}
	return doc, nil
}

func (p *Parser) Parse(text string) (*models.SecurityTxt, error) {
	return p.FoldLines(p.SplitLines(text))
}

func parseExpiry(v string) *models.Expiry {
	t, err := dateparse.ParseAny(v)
	if err != nil {
		return &models.Expiry{Raw: v}
	}
	return &models.Expiry{Parsed: true, Time: t}
}

func splitLanguages(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}
