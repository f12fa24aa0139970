// Package registry holds the curated territory table and the immutable
// snapshots every lookup reads from.
package registry

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"numbering_backend/platform/phone"
)

// Trunk is the leading-zero convention a territory declares for national
// numbers typed without the international prefix.
type Trunk string

const (
	// TrunkNone means the territory has no leading-zero convention.
	TrunkNone Trunk = "none"
	// TrunkDrop means a leading trunk zero must be dropped from the national number.
	TrunkDrop Trunk = "drop"
	// TrunkKeep means the leading zero is part of the national number.
	TrunkKeep Trunk = "keep"
)

// CountryRecord describes one territory.
type CountryRecord struct {
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	CallingCode string `json:"callingCode" yaml:"calling_code"`
	Pattern     string `json:"pattern" yaml:"pattern"`
	Example     string `json:"example" yaml:"example"`
	Glyph       string `json:"glyph,omitempty" yaml:"glyph"`
	Trunk       Trunk  `json:"trunk,omitempty" yaml:"trunk"`
}

var callingCodeRe = regexp.MustCompile(`^\+\d{1,4}$`)

// patterns caches compiled national patterns keyed by their source.
var patterns sync.Map

func compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patterns.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, err
	}
	actual, _ := patterns.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// Matches reports whether national fully matches the record's pattern.
// A pattern that does not compile matches nothing.
func (r CountryRecord) Matches(national string) bool {
	re, err := compile(r.Pattern)
	if err != nil {
		return false
	}
	return re.MatchString(national)
}

// TrunkConvention returns the declared convention, defaulting to TrunkNone.
func (r CountryRecord) TrunkConvention() Trunk {
	switch r.Trunk {
	case TrunkDrop, TrunkKeep:
		return r.Trunk
	default:
		return TrunkNone
	}
}

// Canonical trims the text fields, upper-cases the code and fills in the
// glyph and trunk defaults. Records arriving from files or the admin API go
// through it before Check.
func (r CountryRecord) Canonical() CountryRecord {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Name = strings.TrimSpace(r.Name)
	r.CallingCode = strings.TrimSpace(r.CallingCode)
	r.Pattern = strings.TrimSpace(r.Pattern)
	r.Example = strings.TrimSpace(r.Example)
	if r.Glyph == "" {
		r.Glyph = flag(r.Code)
	}
	if r.Trunk == "" {
		r.Trunk = TrunkNone
	}
	return r
}

// Check verifies the record is self-consistent: a calling code of the form
// +<1-4 digits>, a pattern that compiles, and an example that satisfies it.
// Registry data is checked by tests and by overlay loading, never per lookup.
func (r CountryRecord) Check() error {
	if strings.TrimSpace(r.Code) == "" {
		return fmt.Errorf("territory code is empty")
	}
	if !callingCodeRe.MatchString(r.CallingCode) {
		return fmt.Errorf("%s: calling code %q must be + followed by 1-4 digits", r.Code, r.CallingCode)
	}
	if _, err := compile(r.Pattern); err != nil {
		return fmt.Errorf("%s: pattern does not compile: %w", r.Code, err)
	}
	switch r.Trunk {
	case "", TrunkNone, TrunkDrop, TrunkKeep:
	default:
		return fmt.Errorf("%s: unknown trunk convention %q", r.Code, r.Trunk)
	}
	if !r.Matches(phone.Normalize(r.Example)) {
		return fmt.Errorf("%s: example %q does not satisfy its own pattern", r.Code, r.Example)
	}
	return nil
}

// CheckAll runs Check on every record and rejects duplicate codes.
func CheckAll(records []CountryRecord) error {
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if err := rec.Check(); err != nil {
			return err
		}
		if _, dup := seen[rec.Code]; dup {
			return fmt.Errorf("duplicate territory code %q", rec.Code)
		}
		seen[rec.Code] = struct{}{}
	}
	return nil
}

// flag builds the regional-indicator emoji for a two-letter code.
func flag(code string) string {
	if len(code) != 2 {
		return ""
	}
	var b strings.Builder
	for _, c := range strings.ToUpper(code) {
		if c < 'A' || c > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + (c - 'A'))
	}
	return b.String()
}
