
package parser

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParseBasicDocument(t *testing.T) {
	const text = "# canonical example file\r\n" +
		"Contact: mailto:security@example.com\r\n" +
		"Contact: https://example.com/report\r\n" +
		"Expires: 2026-12-31T18:00:00.000Z\r\n" +
		"Encryption: https://example.com/pgp-key.txt\r\n" +
		"Preferred-Languages: en, fr ,de\r\n" +
		"Canonical: https://example.com/.well-known/security.txt\r\n"

	doc, err := New().Parse(text)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	wantContacts := []string{"mailto:security@example.com", "https://example.com/report"}
	if !reflect.DeepEqual(doc.Contact, wantContacts) {
		t.Fatalf("want contacts %v, got %v", wantContacts, doc.Contact)
	}
	if doc.Expires == nil || !doc.Expires.Parsed {
		t.Fatalf("want parsed expires, got %#v", doc.Expires)
	}
	if want := time.Date(2026, 12, 31, 18, 0, 0, 0, time.UTC); !doc.Expires.Time.Equal(want) {
		t.Fatalf("want expires %v, got %v", want, doc.Expires.Time)
	}
	if !reflect.DeepEqual(doc.PreferredLanguages, []string{"en", "fr", "de"}) {
		t.Fatalf("want trimmed languages, got %v", doc.PreferredLanguages)
	}
	if doc.Canonical == nil || *doc.Canonical != "https://example.com/.well-known/security.txt" {
		t.Fatalf("unexpected canonical: %v", doc.Canonical)
	}
	if doc.Acknowledgments != nil || doc.Hiring != nil || doc.Policy != nil {
		t.Fatal("unset fields must stay nil")
	}
}

func TestParseAppendOrder(t *testing.T) {
	doc, err := New().Parse("Policy: https://a.example/1\nPolicy: https://a.example/2\nPolicy: https://a.example/3\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := []string{"https://a.example/1", "https://a.example/2", "https://a.example/3"}
	if !reflect.DeepEqual(doc.Policy, want) {
		t.Fatalf("want %v, got %v", want, doc.Policy)
	}
}

func TestParseDuplicateCanonical(t *testing.T) {
	_, err := New().Parse("Canonical: https://a.example/s.txt\nCanonical: https://a.example/s.txt\n")
	var dup *DuplicateFieldError
	if !errors.As(err, &dup) {
		t.Fatalf("want DuplicateFieldError, got %v", err)
	}
	if dup.Field != "canonical" {
		t.Fatalf("want field canonical, got %q", dup.Field)
	}
}

func TestParseDuplicatePreferredLanguages(t *testing.T) {
	_, err := New().Parse("Preferred-Languages: en\nPreferred-Languages: fr\n")
	var dup *DuplicateFieldError
	if !errors.As(err, &dup) {
		t.Fatalf("want DuplicateFieldError, got %v", err)
	}
	if dup.Field != "preferred-languages" {
		t.Fatalf("want field preferred-languages, got %q", dup.Field)
	}
}

func TestParseDuplicateAbortsFold(t *testing.T) {
	doc, err := New().Parse("Contact: mailto:a@example.com\nExpires: 2026-01-01T00:00:00Z\nExpires: 2027-01-01T00:00:00Z\n")
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if doc != nil {
		t.Fatalf("want no document on abort, got %#v", doc)
	}
}

func TestParseUnparseableExpires(t *testing.T) {
	doc, err := New().Parse("Expires: when the stars align\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if doc.Expires == nil || doc.Expires.Parsed {
		t.Fatalf("want raw expiry, got %#v", doc.Expires)
	}
	if doc.Expires.Raw != "when the stars align" {
		t.Fatalf("raw expiry mangled: %q", doc.Expires.Raw)
	}
	if v, ok := doc.Expires.Value().(string); !ok || v != "when the stars align" {
		t.Fatalf("want raw value, got %#v", doc.Expires.Value())
	}
}

func TestParseIgnoresNoise(t *testing.T) {
	const text = "# comment up top\n" +
		"prose line without a separator\n" +
		"X-Custom: something\n" +
		"contact: mailto:a@example.com\n"
	doc, err := New().Parse(text)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !reflect.DeepEqual(doc.Contact, []string{"mailto:a@example.com"}) {
		t.Fatalf("unexpected contacts: %v", doc.Contact)
	}
}

func TestParseKeyCaseInsensitive(t *testing.T) {
	doc, err := New().Parse("CONTACT: tel:+1-201-555-0123\nPoLiCy: https://example.com/policy\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(doc.Contact) != 1 || len(doc.Policy) != 1 {
		t.Fatalf("mixed-case keys not recognized: %#v", doc)
	}
}

func TestSplitLines(t *testing.T) {
	got := New().SplitLines("a\r\n\r\nb\nc\r")
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected lines: %#v", got)
	}
}

func TestParseEmptyInput(t *testing.T) {
	doc, err := New().Parse("")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if doc.Contact != nil || doc.Expires != nil || doc.Canonical != nil {
		t.Fatalf("want empty document, got %#v", doc)
	}
}
