package service

import (
	"fmt"
	"regexp"
	"strings"

	"numbering_backend/internal/numbering/registry"
	"numbering_backend/platform/phone"
)

// ErrorKind classifies a failed validation.
type ErrorKind string

const (
	KindNone                    ErrorKind = ""
	KindTerritoryNotFound       ErrorKind = "territory_not_found"
	KindCallingCodeMissing      ErrorKind = "calling_code_missing"
	KindCallingCodeUnrecognized ErrorKind = "calling_code_unrecognized"
	KindPatternMismatch         ErrorKind = "pattern_mismatch"
)

const (
	msgTerritoryNotFound       = "territory not found"
	msgCallingCodeMissing      = "missing calling code"
	msgCallingCodeUnrecognized = "calling code not recognized"
)

// ValidationResult is produced fresh per call and owned by the caller.
// Error is empty when IsValid is true. National holds the normalized national
// number of a valid result, ready for Format.
type ValidationResult struct {
	IsValid         bool
	FormattedNumber string
	National        string
	Country         *registry.CountryRecord
	Error           string
	Kind            ErrorKind
}

// callingCodePrefix captures up to four digits after a leading "+".
var callingCodePrefix = regexp.MustCompile(`^\+(\d{1,4})`)

// Validate checks raw against the national pattern of territory code.
//
// On success FormattedNumber is the calling code immediately followed by the
// normalized national number, with no separator and no digit dropped. On any
// failure FormattedNumber is raw exactly as given.
func (s *Service) Validate(raw, code string) ValidationResult {
	rec, ok := s.reg.Snapshot().FindByCode(code)
	if !ok {
		return ValidationResult{
			FormattedNumber: raw,
			Error:           msgTerritoryNotFound,
			Kind:            KindTerritoryNotFound,
		}
	}

	national := phone.Normalize(raw)
	if !rec.Matches(national) {
		return mismatch(raw, rec)
	}

	return ValidationResult{
		IsValid:         true,
		FormattedNumber: rec.CallingCode + national,
		National:        national,
		Country:         &rec,
	}
}

// ValidateComplete checks a fully qualified "+<calling code><number>" string.
// The territory is resolved from the prefix using the configured Strategy.
// On success FormattedNumber echoes full unchanged.
func (s *Service) ValidateComplete(full string) ValidationResult {
	snap := s.reg.Snapshot()

	trimmed := strings.TrimSpace(full)
	m := callingCodePrefix.FindStringSubmatch(trimmed)
	if m == nil {
		return ValidationResult{
			FormattedNumber: full,
			Error:           msgCallingCodeMissing,
			Kind:            KindCallingCodeMissing,
		}
	}

	callingCode, ok := resolveCallingCode(snap, m[1])
	if !ok {
		return ValidationResult{
			FormattedNumber: full,
			Error:           msgCallingCodeUnrecognized,
			Kind:            KindCallingCodeUnrecognized,
		}
	}

	national := phone.Normalize(trimmed[len(callingCode):])

	var candidates []registry.CountryRecord
	switch s.strategy {
	case StrategyAllCandidates:
		candidates = snap.FindAllByCallingCode(callingCode)
	default:
		first, _ := snap.FindByCallingCode(callingCode)
		candidates = []registry.CountryRecord{first}
	}

	for _, rec := range candidates {
		if rec.Matches(national) {
			return ValidationResult{
				IsValid:         true,
				FormattedNumber: full,
				National:        national,
				Country:         &rec,
			}
		}
	}

	return mismatch(full, candidates[0])
}

// resolveCallingCode picks the longest leading part of the literal digit run
// that is a registered calling code, so "+33 6..." and "+336..." both resolve
// to "+33" while "+1684..." prefers "+1684" over "+1".
// Taking the captured 1-4 digits literally would read "+12015550123" as the
// unregistered "+1201"; backing off to a registered prefix resolves it to "+1".
func resolveCallingCode(snap *registry.Snapshot, digits string) (string, bool) {
	for n := len(digits); n >= 1; n-- {
		candidate := "+" + digits[:n]
		if snap.HasCallingCode(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func mismatch(raw string, rec registry.CountryRecord) ValidationResult {
	return ValidationResult{
		FormattedNumber: raw,
		Country:         &rec,
		Error:           fmt.Sprintf("invalid number for %s, expected a number like %s", rec.Name, rec.Example),
		Kind:            KindPatternMismatch,
	}
}
