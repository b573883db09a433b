package filter

import (
	"testing"
)

var testBounds = PriceRange{Min: 10, Max: 1000}

func TestApply_PageResetsOnEveryActionExceptSetPage(t *testing.T) {
	base := Default(testBounds)
	base.Page = 5

	actions := []Action{
		SetCategory{ID: 3},
		SetGender{Gender: GenderMen},
		SetText{Text: "boots"},
		SetSort{Sort: SortPriceAsc},
		SetPriceRange{Min: 100, Max: 500},
		Reset{},
	}
	for _, a := range actions {
		next := Apply(base, testBounds, a)
		if next.Page != 1 {
			t.Errorf("%T: page = %d, want 1", a, next.Page)
		}
	}

	next := Apply(base, testBounds, SetPage{Page: 3})
	if next.Page != 3 {
		t.Fatalf("SetPage: page = %d, want 3", next.Page)
	}
}

func TestApply_GenderChangeResetsCategory(t *testing.T) {
	s := Default(testBounds)
	s = Apply(s, testBounds, SetCategory{ID: 7})
	if s.CategoryID != 7 {
		t.Fatalf("CategoryID = %d, want 7", s.CategoryID)
	}

	s = Apply(s, testBounds, SetGender{Gender: GenderWomen})
	if s.Gender != GenderWomen {
		t.Fatalf("Gender = %q, want women", s.Gender)
	}
	if s.CategoryID != CategoryAll {
		t.Fatalf("CategoryID = %d, want all-sentinel after gender change", s.CategoryID)
	}
}

func TestApply_CategoryAllSentinel(t *testing.T) {
	s := Apply(Default(testBounds), testBounds, SetCategory{ID: 9})
	s = Apply(s, testBounds, SetCategory{ID: 0})
	if s.CategoryID != CategoryAll {
		t.Fatalf("CategoryID = %d, want sentinel", s.CategoryID)
	}
	s = Apply(s, testBounds, SetCategory{ID: -4})
	if s.CategoryID != CategoryAll {
		t.Fatalf("CategoryID = %d, want sentinel for negative input", s.CategoryID)
	}
}

func TestApply_UnknownSortDegradesToFeatured(t *testing.T) {
	s := Apply(Default(testBounds), testBounds, SetSort{Sort: Sort("cheapest_first")})
	if s.Sort != SortFeatured {
		t.Fatalf("Sort = %q, want featured", s.Sort)
	}
	s = Apply(s, testBounds, SetSort{Sort: SortRatingDesc})
	if s.Sort != SortRatingDesc {
		t.Fatalf("Sort = %q, want rating_desc", s.Sort)
	}
}

func TestApply_PriceRangeNormalization(t *testing.T) {
	// Inverted input is swapped.
	s := Apply(Default(testBounds), testBounds, SetPriceRange{Min: 800, Max: 200})
	if s.Price.Min != 200 || s.Price.Max != 800 {
		t.Fatalf("Price = %+v, want 200..800", s.Price)
	}

	// Out-of-bounds input is clamped.
	s = Apply(s, testBounds, SetPriceRange{Min: 1, Max: 5000})
	if s.Price != testBounds {
		t.Fatalf("Price = %+v, want clamped to %+v", s.Price, testBounds)
	}

	// A range entirely outside the bounds collapses to the bounds.
	s = Apply(s, testBounds, SetPriceRange{Min: 2000, Max: 3000})
	if s.Price != testBounds {
		t.Fatalf("Price = %+v, want %+v", s.Price, testBounds)
	}

	// Unknown bounds: only the swap applies.
	s = Apply(Default(PriceRange{}), PriceRange{}, SetPriceRange{Min: 9, Max: 3})
	if s.Price.Min != 3 || s.Price.Max != 9 {
		t.Fatalf("Price = %+v, want 3..9", s.Price)
	}
}

func TestApply_ResetRestoresDefaults(t *testing.T) {
	s := Default(testBounds)
	s = Apply(s, testBounds, SetGender{Gender: GenderMen})
	s = Apply(s, testBounds, SetCategory{ID: 2})
	s = Apply(s, testBounds, SetText{Text: "jacket"})
	s = Apply(s, testBounds, SetSort{Sort: SortPriceDesc})
	s = Apply(s, testBounds, SetPriceRange{Min: 50, Max: 90})
	s = Apply(s, testBounds, SetPage{Page: 4})

	s = Apply(s, testBounds, Reset{})
	if s != Default(testBounds) {
		t.Fatalf("Reset state = %+v, want %+v", s, Default(testBounds))
	}
}

func TestTotalPagesAndClampPage(t *testing.T) {
	if got := TotalPages(29, 12); got != 3 {
		t.Fatalf("TotalPages(29, 12) = %d, want 3", got)
	}
	if got := TotalPages(0, 12); got != 1 {
		t.Fatalf("TotalPages(0, 12) = %d, want 1", got)
	}
	if got := TotalPages(12, 12); got != 1 {
		t.Fatalf("TotalPages(12, 12) = %d, want 1", got)
	}
	if got := ClampPage(5, 29, 12); got != 3 {
		t.Fatalf("ClampPage(5, 29, 12) = %d, want 3", got)
	}
	if got := ClampPage(0, 29, 12); got != 1 {
		t.Fatalf("ClampPage(0, ...) = %d, want 1", got)
	}
	// No total yet: keep the requested page, only enforce the lower bound.
	if got := ClampPage(7, 0, 12); got != 7 {
		t.Fatalf("ClampPage(7, 0, 12) = %d, want 7", got)
	}
}

func TestParseEnums(t *testing.T) {
	if got := ParseGender("women"); got != GenderWomen {
		t.Fatalf("ParseGender(women) = %q", got)
	}
	if got := ParseGender("unisex"); got != GenderAll {
		t.Fatalf("ParseGender(unisex) = %q, want all", got)
	}
	if got := ParseSort("price_desc"); got != SortPriceDesc {
		t.Fatalf("ParseSort(price_desc) = %q", got)
	}
	if got := ParseSort(""); got != SortFeatured {
		t.Fatalf("ParseSort(empty) = %q, want featured", got)
	}
}
