
package models

import "time"

type SecurityTxt struct {
	Contact            []string `json:"contact,omitempty"`
	Expires            *Expiry  `json:"expires,omitempty"`
	Encryption         []string `json:"encryption,omitempty"`
	Acknowledgments    []string `json:"acknowledgments,omitempty"`
	Hiring             []string `json:"hiring,omitempty"`
	Policy             []string `json:"policy,omitempty"`
	PreferredLanguages []string `json:"preferredLanguages,omitempty"`
	Canonical          *string  `json:"canonical,omitempty"`
}

type Expiry struct {
	Parsed bool      `json:"parsed"`
	Time   time.Time `json:"time,omitempty"`
	Raw    string    `json:"raw,omitempty"`
}

// Value returns the parsed timestamp when the source text was a
// recognizable date, the raw text otherwise.
func (e *Expiry) Value() any {
	if e.Parsed {
		return e.Time
	}
	return e.Raw
}

type Entry struct {
	Label string `json:"label"`
	Value any    `json:"value,omitempty"`
	Link  string `json:"link,omitempty"`
}

type ScanResult struct {
	SourceURL string  `json:"sourceUrl"`
	FetchMs   int64   `json:"fetchMs"`
	Entries   []Entry `json:"entries"`
}
