// Package i18n wraps gotext so report and outcome texts can be translated.
// Message ids are the English texts; without a loaded locale they are used
// as-is.
package i18n

import (
	"os"

	"github.com/leonelquinteros/gotext"
)

// Domain is the gettext domain of the ship's messages
const Domain = "spaceescape"

// Configure loads translations from dir (laid out as dir/<lang>/LC_MESSAGES/spaceescape.po).
// A missing directory leaves the English ids in place.
func Configure(dir, lang string) bool {
	if dir == "" || lang == "" {
		return false
	}
	if _, err := os.Stat(dir); err != nil {
		return false
	}
	gotext.Configure(dir, lang, Domain)
	return true
}

// T translates a message id and formats it with vars
func T(msgid string, vars ...interface{}) string {
	return gotext.Get(msgid, vars...)
}
