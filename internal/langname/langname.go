
package langname

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var (
	once  sync.Once
	namer display.Namer
)

// Display resolves a BCP 47 tag to its English display name. Malformed
// or unknown tags come back unchanged.
func Display(tag string) string {
	once.Do(func() { namer = display.English.Languages() })
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	if name := namer.Name(t); name != "" {
		return name
	}
	return tag
}
