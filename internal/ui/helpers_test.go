package ui

import (
	"testing"
	"unicode/utf8"

	"vitrine/internal/catalog"
	"vitrine/internal/filter"
)

func TestNextGenderCycles(t *testing.T) {
	got := nextGender(filter.GenderAll)
	if got != filter.GenderMen {
		t.Fatalf("nextGender(all) = %q, want men", got)
	}
	got = nextGender(got)
	if got != filter.GenderWomen {
		t.Fatalf("nextGender(men) = %q, want women", got)
	}
	got = nextGender(got)
	if got != filter.GenderAll {
		t.Fatalf("nextGender(women) = %q, want all", got)
	}
}

func TestNextSortVisitsEveryOrder(t *testing.T) {
	seen := map[filter.Sort]bool{}
	s := filter.SortFeatured
	for range filter.Sorts {
		seen[s] = true
		s = nextSort(s)
	}
	if s != filter.SortFeatured {
		t.Fatalf("cycle did not return to featured, ended at %q", s)
	}
	if len(seen) != len(filter.Sorts) {
		t.Fatalf("cycle visited %d sorts, want %d", len(seen), len(filter.Sorts))
	}
}

func TestNextSortUnknownFallsBack(t *testing.T) {
	if got := nextSort(filter.Sort("bogus")); got != filter.SortFeatured {
		t.Fatalf("nextSort(bogus) = %q, want featured", got)
	}
}

func TestParseFloatOr(t *testing.T) {
	if got := parseFloatOr(" 12.5 ", 0); got != 12.5 {
		t.Fatalf("parseFloatOr(12.5) = %v", got)
	}
	if got := parseFloatOr("not a number", 42); got != 42 {
		t.Fatalf("parseFloatOr(garbage) = %v, want fallback 42", got)
	}
	if got := parseFloatOr("", 7); got != 7 {
		t.Fatalf("parseFloatOr(empty) = %v, want fallback 7", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate(short) = %q", got)
	}
	if got := truncate("a very long product name", 10); got != "a very lo…" {
		t.Fatalf("truncate = %q, want %q", got, "a very lo…")
	}
}

func TestTruncate_MultibyteNames(t *testing.T) {
	// Cutting inside "é" (two bytes) must not produce invalid UTF-8.
	got := truncate("Trésor élégant", 6)
	if got != "Tréso…" {
		t.Fatalf("truncate = %q, want %q", got, "Tréso…")
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if got := truncate("日本製スニーカー", 4); got != "日本製…" {
		t.Fatalf("truncate = %q, want %q", got, "日本製…")
	}
}

func TestSessionFrom(t *testing.T) {
	resp := &catalog.AuthResponse{
		Token: "tok",
		User:  catalog.User{ID: 3, Name: "Ada", Email: "ada@example.com"},
	}
	s := sessionFrom(resp)
	if s.Token != "tok" || s.User.ID != 3 || s.User.Email != "ada@example.com" {
		t.Fatalf("sessionFrom = %+v", s)
	}
}
