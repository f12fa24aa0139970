// Package sanitize cleans free text supplied through admin endpoints before
// it is stored or served to pickers.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

var entities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", "\"",
	"&#39;", "'",
)

// stripHTML removes HTML tags, decodes the common entities and strips again
// so encoded tags do not survive.
func stripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = entities.Replace(result)
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text strips HTML, drops control characters and collapses runs of
// whitespace to one space. Territory names go through it.
func Text(s string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, stripHTML(s))
	return strings.Join(strings.Fields(stripped), " ")
}
