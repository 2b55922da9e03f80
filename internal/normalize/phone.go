package normalize

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// FormatPhone renders a US number as "(310) 555-1234", or "+44 20 ..." for
// foreign numbers. Unparseable input is returned trimmed.
func FormatPhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	num, err := phonenumbers.Parse(raw, "US")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	if num.GetCountryCode() == 1 {
		return phonenumbers.Format(num, phonenumbers.NATIONAL)
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
