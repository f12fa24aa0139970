package service

import (
	"testing"

	"numbering_backend/internal/numbering/registry"
	"numbering_backend/platform/phone"
)

func territory(t *testing.T, code string) registry.CountryRecord {
	t.Helper()
	rec, ok := registry.New(registry.Default()).Snapshot().FindByCode(code)
	if !ok {
		t.Fatalf("territory %s missing from default table", code)
	}
	return rec
}

func TestFormatTerritoryRules(t *testing.T) {
	cases := []struct {
		code, national, want string
	}{
		{"FR", "0612345678", "06 12 34 56 78"},
		{"MA", "600691801", "6 00 69 18 01"},
		{"US", "2015550123", "201 555 0123"},
		{"GB", "7400123456", "7400 123456"},
		{"GB", "212345678", "2123 45678"},
		{"IT", "0612345", "061 234 5"},
		{"BR", "11961234567", "11 96123 4567"},
	}
	for _, tc := range cases {
		if got := Format(tc.national, territory(t, tc.code)); got != tc.want {
			t.Fatalf("Format(%s, %s): expected %q, got %q", tc.national, tc.code, tc.want, got)
		}
	}
}

func TestFormatGenericFallback(t *testing.T) {
	cases := []struct {
		code, national, want string
	}{
		{"ES", "612345678", "612 345 678"},
		{"DE", "15123456789", "151 234 567 89"},
		{"NZ", "2112345678", "211 234 567 8"},
	}
	for _, tc := range cases {
		if !RuleFor(tc.code).Generic() {
			t.Fatalf("expected %s to use the generic rule", tc.code)
		}
		if got := Format(tc.national, territory(t, tc.code)); got != tc.want {
			t.Fatalf("Format(%s, %s): expected %q, got %q", tc.national, tc.code, tc.want, got)
		}
	}
}

func TestFormatLeavesInvalidInputUnchanged(t *testing.T) {
	fr := territory(t, "FR")
	for _, in := range []string{"", "123", "612345678", "06 12 34 56 78"} {
		if got := Format(in, fr); got != in {
			t.Fatalf("expected %q unchanged, got %q", in, got)
		}
	}
	if groups, ok := FormatGroups("123", fr); ok || groups != nil {
		t.Fatal("expected no groups for invalid input")
	}
}

func TestFormatRoundTripsThroughNormalize(t *testing.T) {
	for _, rec := range registry.Default() {
		national := phone.Normalize(rec.Example)
		formatted := Format(national, rec)
		if back := phone.Normalize(formatted); back != national {
			t.Fatalf("%s: %q formatted as %q normalizes back to %q", rec.Code, national, formatted, back)
		}
	}
}

func TestFormatGroupsLabels(t *testing.T) {
	groups, ok := FormatGroups("2015550123", territory(t, "US"))
	if !ok {
		t.Fatal("expected valid US number")
	}
	want := []Group{{"area", "201"}, {"exchange", "555"}, {"line", "0123"}}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %v", len(want), groups)
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Fatalf("group %d: expected %+v, got %+v", i, want[i], groups[i])
		}
	}
}

func TestFixedRuleKeepsLeftoverDigits(t *testing.T) {
	groups := blocks(2, 2).apply("123456")
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %v", groups)
	}
	if groups[2].Label != "rest" || groups[2].Digits != "56" {
		t.Fatalf("expected trailing rest group, got %+v", groups[2])
	}
}
