package service

import (
	"fmt"
	"strings"

	"numbering_backend/internal/numbering/registry"
	"numbering_backend/platform/phone"
)

// Heuristic inspects a normalized input against a territory and returns a
// hint when it applies. Heuristics are independent of each other.
type Heuristic func(normalized string, rec registry.CountryRecord) (string, bool)

// heuristics run in this order; every applicable one contributes a hint.
var heuristics = []Heuristic{
	DropTrunkZero,
	KeepLeadingZero,
	ExpectedLength,
	ExpectedLeadingDigit,
}

// Suggest returns corrective hints for raw in the given territory, possibly
// none.
func (s *Service) Suggest(raw string, rec registry.CountryRecord) []string {
	return Suggest(raw, rec)
}

// Suggest is the engine-free form of Service.Suggest.
func Suggest(raw string, rec registry.CountryRecord) []string {
	normalized := phone.Normalize(raw)
	hints := make([]string, 0, len(heuristics))
	for _, h := range heuristics {
		if hint, ok := h(normalized, rec); ok {
			hints = append(hints, hint)
		}
	}
	return hints
}

// DropTrunkZero fires when the territory drops the trunk zero and the input
// starts with one.
func DropTrunkZero(normalized string, rec registry.CountryRecord) (string, bool) {
	if !strings.HasPrefix(normalized, "0") || rec.TrunkConvention() != registry.TrunkDrop {
		return "", false
	}
	return "remove the leading 0", true
}

// KeepLeadingZero fires whenever the territory keeps the leading zero and the
// input starts with one, even though the input already complies.
func KeepLeadingZero(normalized string, rec registry.CountryRecord) (string, bool) {
	if !strings.HasPrefix(normalized, "0") || rec.TrunkConvention() != registry.TrunkKeep {
		return "", false
	}
	return "keep the leading 0", true
}

// ExpectedLength fires when the input length differs from the example's.
func ExpectedLength(normalized string, rec registry.CountryRecord) (string, bool) {
	want := len(phone.Normalize(rec.Example))
	if len(normalized) == want {
		return "", false
	}
	return fmt.Sprintf("expected %d digits", want), true
}

// ExpectedLeadingDigit fires when the first character differs from the
// example's first digit.
func ExpectedLeadingDigit(normalized string, rec registry.CountryRecord) (string, bool) {
	example := phone.Normalize(rec.Example)
	if normalized == "" || example == "" || normalized[0] == example[0] {
		return "", false
	}
	return fmt.Sprintf("number should start with %c", example[0]), true
}
