
package fetcher

import (
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// streamDecoder converts body chunks to UTF-8 as they arrive. Multi-byte
// sequences split across chunk boundaries stay buffered until the next
// write or the final flush.
type streamDecoder struct {
	buf strings.Builder
	w   *transform.Writer
}

func newStreamDecoder(firstChunk []byte, contentType string) *streamDecoder {
	enc, name, certain := charset.DetermineEncoding(firstChunk, contentType)
	// DetermineEncoding falls back to windows-1252 for unlabeled HTML;
	// unlabeled plain text defaults to UTF-8 instead.
	if !certain && name == "windows-1252" {
		enc = unicode.UTF8
	}
	d := &streamDecoder{}
	d.w = transform.NewWriter(&d.buf, enc.NewDecoder())
	return d
}

func (d *streamDecoder) Write(chunk []byte) error {
	_, err := d.w.Write(chunk)
	return err
}

// Flush drains any buffered trailing state and returns the decoded
// text. A leading BOM is an encoding artifact, not content.
func (d *streamDecoder) Flush() (string, error) {
	if err := d.w.Close(); err != nil {
		return "", err
	}
	return strings.TrimPrefix(d.buf.String(), "\uFEFF"), nil
}
