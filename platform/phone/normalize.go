// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

// Normalize strips presentation punctuation (whitespace, hyphens and
// parentheses) from raw input. Any other character is kept so that pattern
// matching rejects it instead of it being silently dropped.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r), r == '-', r == '(', r == ')':
			return -1
		default:
			return r
		}
	}, raw)
}

// E164 cross-checks a national number against libphonenumber metadata for
// region and returns the E.164 form when libphonenumber considers it valid.
// The result is informational; the curated registry stays authoritative.
func E164(national, region string) (string, bool) {
	trimmed := strings.TrimSpace(national)
	if trimmed == "" || region == "" {
		return "", false
	}

	number, err := phonenumbers.Parse(trimmed, strings.ToUpper(region))
	if err != nil {
		return "", false
	}

	if !phonenumbers.IsValidNumberForRegion(number, strings.ToUpper(region)) {
		return "", false
	}

	return phonenumbers.Format(number, phonenumbers.E164), true
}

// RegionCallingCode returns the calling code libphonenumber knows for region,
// formatted with a leading "+", or "" when the region is unknown to it.
func RegionCallingCode(region string) string {
	code := phonenumbers.GetCountryCodeForRegion(strings.ToUpper(region))
	if code == 0 {
		return ""
	}
	return "+" + strconv.Itoa(code)
}
