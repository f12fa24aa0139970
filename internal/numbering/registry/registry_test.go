package registry

import (
	"strings"
	"sync"
	"testing"

	"numbering_backend/platform/phone"
)

func TestDefaultTableIsSelfConsistent(t *testing.T) {
	records := Default()
	if len(records) == 0 {
		t.Fatal("expected a non-empty default table")
	}
	if err := CheckAll(records); err != nil {
		t.Fatalf("default table: %v", err)
	}
	for _, rec := range records {
		if !rec.Matches(phone.Normalize(rec.Example)) {
			t.Fatalf("%s: example %q does not satisfy %q", rec.Code, rec.Example, rec.Pattern)
		}
		if rec.Glyph == "" {
			t.Fatalf("%s: expected a glyph", rec.Code)
		}
	}
}

func TestDefaultCallingCodesAgreeWithLibphonenumber(t *testing.T) {
	for _, rec := range Default() {
		want := phone.RegionCallingCode(rec.Code)
		if want == "" {
			continue
		}
		// +1684 style codes carry the area code on top of the region code.
		if !strings.HasPrefix(rec.CallingCode, want) {
			t.Fatalf("%s: calling code %s does not start with libphonenumber's %s", rec.Code, rec.CallingCode, want)
		}
	}
}

func TestMatchesIsFullString(t *testing.T) {
	ma, ok := New(Default()).Snapshot().FindByCode("MA")
	if !ok {
		t.Fatal("expected MA in default table")
	}
	if !ma.Matches("600691801") {
		t.Fatal("expected exact example to match")
	}
	if ma.Matches("0600691801") {
		t.Fatal("expected leading-zero form not to match")
	}
	if ma.Matches("6006918011") {
		t.Fatal("expected substring match not to count")
	}
}

func TestCheckRejectsInconsistentRecords(t *testing.T) {
	cases := []CountryRecord{
		{Code: "", CallingCode: "+1", Pattern: `\d`, Example: "1"},
		{Code: "XA", CallingCode: "33", Pattern: `\d`, Example: "1"},
		{Code: "XB", CallingCode: "+12345", Pattern: `\d`, Example: "1"},
		{Code: "XC", CallingCode: "+1", Pattern: `(`, Example: "1"},
		{Code: "XD", CallingCode: "+1", Pattern: `\d{3}`, Example: "12"},
		{Code: "XE", CallingCode: "+1", Pattern: `\d`, Example: "1", Trunk: "sometimes"},
	}
	for _, rec := range cases {
		if err := rec.Check(); err == nil {
			t.Fatalf("expected %+v to fail Check", rec)
		}
	}
}

func TestFindByCode(t *testing.T) {
	snap := New(Default()).Snapshot()

	fr, ok := snap.FindByCode("FR")
	if !ok || fr.CallingCode != "+33" {
		t.Fatalf("expected FR with +33, got %+v (found=%v)", fr, ok)
	}
	if _, ok := snap.FindByCode("fr"); ok {
		t.Fatal("expected code lookup to be exact")
	}
	if _, ok := snap.FindByCode("ZZ"); ok {
		t.Fatal("expected ZZ to be absent")
	}
}

func TestFindByCallingCodeUsesInsertionOrder(t *testing.T) {
	snap := New(Default()).Snapshot()

	cases := map[string]string{
		"+1":   "US",
		"+7":   "RU",
		"+44":  "GB",
		"+212": "MA",
		"+590": "GP",
		"+1684": "AS",
	}
	for cc, want := range cases {
		got, ok := snap.FindByCallingCode(cc)
		if !ok || got.Code != want {
			t.Fatalf("FindByCallingCode(%s): expected %s, got %+v", cc, want, got)
		}
	}

	all := snap.FindAllByCallingCode("+44")
	codes := make([]string, 0, len(all))
	for _, rec := range all {
		codes = append(codes, rec.Code)
	}
	if strings.Join(codes, ",") != "GB,GG,JE,IM" {
		t.Fatalf("expected GB,GG,JE,IM, got %v", codes)
	}

	if _, ok := snap.FindByCallingCode("+999"); ok {
		t.Fatal("expected +999 to be unknown")
	}
	if len(snap.FindAllByCallingCode("+999")) != 0 {
		t.Fatal("expected no records for +999")
	}
}

func TestListSortedByNameIsLocaleAware(t *testing.T) {
	sorted := New(Default()).Snapshot().ListSortedByName()

	pos := make(map[string]int, len(sorted))
	for i, rec := range sorted {
		pos[rec.Code] = i
	}

	// Å collates with A, not after Z as a byte comparison would put it.
	if pos["AX"] > pos["DZ"] {
		t.Fatalf("expected Åland Islands before Algeria, got %d > %d", pos["AX"], pos["DZ"])
	}
	if !(pos["KM"] < pos["CI"] && pos["CI"] < pos["HR"]) {
		t.Fatal("expected Comoros < Côte d'Ivoire < Croatia")
	}
	if !(pos["TN"] < pos["TR"] && pos["TR"] < pos["UA"]) {
		t.Fatal("expected Tunisia < Türkiye < Ukraine")
	}
	if len(sorted) != len(Default()) {
		t.Fatalf("expected %d records, got %d", len(Default()), len(sorted))
	}
}

func TestReplaceAllAndAppendAllPublishNewSnapshots(t *testing.T) {
	reg := New(Default())
	before := reg.Snapshot()

	custom := []CountryRecord{
		{Code: "XA", Name: "Alpha", CallingCode: "+999", Pattern: `\d{4}`, Example: "1234"},
	}
	replaced := reg.ReplaceAll(custom)
	if replaced.Len() != 1 || replaced.Version() != before.Version()+1 {
		t.Fatalf("unexpected snapshot after replace: len=%d version=%d", replaced.Len(), replaced.Version())
	}
	if _, ok := reg.Snapshot().FindByCode("FR"); ok {
		t.Fatal("expected FR to be gone after ReplaceAll")
	}
	if _, ok := before.FindByCode("FR"); !ok {
		t.Fatal("expected the old snapshot to be unaffected")
	}

	appended := reg.AppendAll([]CountryRecord{
		{Code: "XA", Name: "Alpha Duplicate", CallingCode: "+998", Pattern: `\d{5}`, Example: "12345"},
	})
	if appended.Len() != 2 {
		t.Fatalf("expected AppendAll not to de-duplicate, got %d records", appended.Len())
	}
	first, _ := appended.FindByCode("XA")
	if first.Name != "Alpha" {
		t.Fatalf("expected first XA entry to win, got %q", first.Name)
	}
}

func TestSnapshotsAreSafeUnderConcurrentReplace(t *testing.T) {
	reg := New(Default())
	small := []CountryRecord{
		{Code: "XA", Name: "Alpha", CallingCode: "+999", Pattern: `\d{4}`, Example: "1234"},
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				snap := reg.Snapshot()
				if len(snap.ListSortedByName()) != snap.Len() {
					t.Errorf("snapshot %d is inconsistent", snap.Version())
					return
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			reg.ReplaceAll(small)
		} else {
			reg.ReplaceAll(Default())
		}
	}
	wg.Wait()
}

func TestCanonical(t *testing.T) {
	rec := CountryRecord{Code: " ma ", Name: " Morocco ", CallingCode: " +212", Pattern: `[67]\d{8}`, Example: "600691801"}.Canonical()

	if rec.Code != "MA" || rec.Name != "Morocco" || rec.CallingCode != "+212" {
		t.Fatalf("unexpected canonical record %+v", rec)
	}
	if rec.Glyph != "🇲🇦" {
		t.Fatalf("expected derived glyph, got %q", rec.Glyph)
	}
	if rec.Trunk != TrunkNone {
		t.Fatalf("expected default trunk none, got %q", rec.Trunk)
	}
	if err := rec.Check(); err != nil {
		t.Fatalf("canonical record should pass Check: %v", err)
	}
}
