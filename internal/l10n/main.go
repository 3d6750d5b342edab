// Package l10n translates user-facing denvar messages.
package l10n

import (
	"fmt"

	"github.com/snapcore/go-gettext"
)

var locale gettext.Catalog

func init() {
	domain := gettext.TextDomain{Name: "denvar"}
	locale = domain.UserLocale()
}

// T localizes a message and formats it with vars.
func T(msg string, vars ...interface{}) string {
	translation := locale.Gettext(msg)
	if len(vars) > 0 {
		translation = fmt.Sprintf(translation, vars...)
	}
	return translation
}

// TN localizes a message with plural forms chosen by n.
func TN(singular, plural string, n uint32, vars ...interface{}) string {
	translation := locale.NGettext(singular, plural, n)
	if len(vars) > 0 {
		translation = fmt.Sprintf(translation, vars...)
	}
	return translation
}
