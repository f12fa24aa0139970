package service

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"numbering_backend/internal/numbering/registry"
)

// Search filters and ranks the current territories against query for a
// picker. limit <= 0 means no limit.
func (s *Service) Search(query string, limit int) []registry.CountryRecord {
	ranked := Rank(s.reg.Snapshot(), query)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

type hit struct {
	rec     registry.CountryRecord
	starts  bool
	nameLen int
}

// Rank is a pure function of query and snap. A record matches when, ignoring
// case, its name starts with or contains the query, its code equals it, its
// calling code equals the trimmed query, or a word of its name starts with
// it. Names starting with the query come first, shortest first; everything
// else keeps alphabetical order. An empty query returns every record in
// alphabetical order.
func Rank(snap *registry.Snapshot, query string) []registry.CountryRecord {
	sorted := snap.ListSortedByName()
	if query == "" {
		return sorted
	}

	fold := cases.Fold()
	q := fold.String(query)
	trimmed := strings.TrimSpace(query)

	hits := make([]hit, 0, len(sorted))
	for _, rec := range sorted {
		name := fold.String(rec.Name)
		starts := strings.HasPrefix(name, q)
		if starts ||
			strings.Contains(name, q) ||
			fold.String(rec.Code) == q ||
			rec.CallingCode == trimmed ||
			wordStartsWith(name, q) {
			hits = append(hits, hit{rec: rec, starts: starts, nameLen: utf8.RuneCountInString(rec.Name)})
		}
	}

	// sorted is already alphabetical, so a stable sort only has to order the
	// starts-with group.
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.starts != b.starts {
			return a.starts
		}
		if a.starts {
			return a.nameLen < b.nameLen
		}
		return false
	})

	out := make([]registry.CountryRecord, len(hits))
	for i, h := range hits {
		out[i] = h.rec
	}
	return out
}

func wordStartsWith(name, q string) bool {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '(' || r == ')'
	})
	for _, w := range words {
		if strings.HasPrefix(w, q) {
			return true
		}
	}
	return false
}
