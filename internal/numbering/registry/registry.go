package registry

import (
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Snapshot is an immutable view of the territory table. All lookups in a
// single request should go through one Snapshot.
type Snapshot struct {
	version       int64
	records       []CountryRecord
	byCode        map[string]int
	byCallingCode map[string][]int
	sorted        []int
}

func newSnapshot(version int64, records []CountryRecord) *Snapshot {
	owned := make([]CountryRecord, len(records))
	copy(owned, records)

	s := &Snapshot{
		version:       version,
		records:       owned,
		byCode:        make(map[string]int, len(owned)),
		byCallingCode: make(map[string][]int),
		sorted:        make([]int, len(owned)),
	}
	for i, rec := range owned {
		if _, exists := s.byCode[rec.Code]; !exists {
			s.byCode[rec.Code] = i
		}
		s.byCallingCode[rec.CallingCode] = append(s.byCallingCode[rec.CallingCode], i)
		s.sorted[i] = i
	}

	// collate.Collator keeps internal buffers, so it is built per snapshot
	// and never shared with readers.
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(s.sorted, func(a, b int) bool {
		ra, rb := owned[s.sorted[a]], owned[s.sorted[b]]
		if c := col.CompareString(ra.Name, rb.Name); c != 0 {
			return c < 0
		}
		return ra.Code < rb.Code
	})

	return s
}

// Version increases by one with every bulk update.
func (s *Snapshot) Version() int64 { return s.version }

// Len returns the number of records.
func (s *Snapshot) Len() int { return len(s.records) }

// Records returns the records in registry (insertion) order.
func (s *Snapshot) Records() []CountryRecord {
	out := make([]CountryRecord, len(s.records))
	copy(out, s.records)
	return out
}

// FindByCode returns the record whose code equals code exactly.
func (s *Snapshot) FindByCode(code string) (CountryRecord, bool) {
	i, ok := s.byCode[code]
	if !ok {
		return CountryRecord{}, false
	}
	return s.records[i], true
}

// FindByCallingCode returns the first record, in registry order, registered
// under callingCode. Several territories may share a calling code; the
// tie-break is insertion order.
func (s *Snapshot) FindByCallingCode(callingCode string) (CountryRecord, bool) {
	idx := s.byCallingCode[callingCode]
	if len(idx) == 0 {
		return CountryRecord{}, false
	}
	return s.records[idx[0]], true
}

// FindAllByCallingCode returns every record registered under callingCode in
// registry order.
func (s *Snapshot) FindAllByCallingCode(callingCode string) []CountryRecord {
	idx := s.byCallingCode[callingCode]
	out := make([]CountryRecord, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.records[i])
	}
	return out
}

// HasCallingCode reports whether any record uses callingCode.
func (s *Snapshot) HasCallingCode(callingCode string) bool {
	return len(s.byCallingCode[callingCode]) > 0
}

// ListSortedByName returns the records in locale-aware alphabetical order.
func (s *Snapshot) ListSortedByName() []CountryRecord {
	out := make([]CountryRecord, len(s.sorted))
	for pos, i := range s.sorted {
		out[pos] = s.records[i]
	}
	return out
}

// Registry publishes snapshots. Reads are lock-free; bulk updates are
// serialized and swap in a fresh snapshot.
type Registry struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// New creates a registry whose first snapshot holds records.
func New(records []CountryRecord) *Registry {
	r := &Registry{}
	r.current.Store(newSnapshot(1, records))
	return r
}

// Snapshot returns the current snapshot.
func (r *Registry) Snapshot() *Snapshot {
	return r.current.Load()
}

// ReplaceAll discards the current table and installs records.
func (r *Registry) ReplaceAll(records []CountryRecord) *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := newSnapshot(r.current.Load().version+1, records)
	r.current.Store(next)
	return next
}

// AppendAll adds records after the existing ones. It neither removes nor
// de-duplicates.
func (r *Registry) AppendAll(records []CountryRecord) *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.current.Load()
	merged := make([]CountryRecord, 0, len(prev.records)+len(records))
	merged = append(merged, prev.records...)
	merged = append(merged, records...)

	next := newSnapshot(prev.version+1, merged)
	r.current.Store(next)
	return next
}
