
package classifier

import "strings"

type Classifier struct{}

func New() *Classifier { return &Classifier{} }

func (c *Classifier) IsMailLink(s string) bool {
	return strings.HasPrefix(s, "mailto:")
}

func (c *Classifier) IsPhoneLink(s string) bool {
	return strings.HasPrefix(s, "tel:")
}
