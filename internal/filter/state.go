package filter

import (
	"vitrine/internal/catalog"
)

// Gender narrows the listing to one side of the catalog. Categories are
// gender-partitioned: every category belongs to exactly one gender.
type Gender string

const (
	GenderAll   Gender = catalog.GenderAll
	GenderMen   Gender = catalog.GenderMen
	GenderWomen Gender = catalog.GenderWomen
)

// ParseGender maps a raw value onto the enum, defaulting to all.
func ParseGender(raw string) Gender {
	switch Gender(raw) {
	case GenderMen, GenderWomen:
		return Gender(raw)
	}
	return GenderAll
}

// Sort orders the product listing. Featured is the server default and is
// never sent on the wire.
type Sort string

const (
	SortFeatured   Sort = "featured"
	SortPriceAsc   Sort = "price_asc"
	SortPriceDesc  Sort = "price_desc"
	SortRatingAsc  Sort = "rating_asc"
	SortRatingDesc Sort = "rating_desc"
)

// Sorts lists the valid sort orders in display order.
var Sorts = []Sort{SortFeatured, SortPriceAsc, SortPriceDesc, SortRatingAsc, SortRatingDesc}

// ParseSort maps a raw value onto the enum. Unknown values degrade to
// featured rather than erroring.
func ParseSort(raw string) Sort {
	switch Sort(raw) {
	case SortPriceAsc, SortPriceDesc, SortRatingAsc, SortRatingDesc:
		return Sort(raw)
	}
	return SortFeatured
}

// CategoryAll is the "no category selected" sentinel.
const CategoryAll int64 = 0

// PriceRange is a user-selected or catalog-wide (min, max) price pair.
type PriceRange struct {
	Min float64
	Max float64
}

// IsZero reports whether the range is unset.
func (r PriceRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Normalize swaps an inverted pair and clamps both ends to bounds. A zero
// bounds value means the catalog extent is not yet known and only the swap
// applies.
func (r PriceRange) Normalize(bounds PriceRange) PriceRange {
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	if bounds.IsZero() {
		return r
	}
	if r.Min < bounds.Min {
		r.Min = bounds.Min
	}
	if r.Max > bounds.Max {
		r.Max = bounds.Max
	}
	if r.Min > r.Max {
		r.Min = bounds.Min
		r.Max = bounds.Max
	}
	return r
}

// State is the canonical description of what the user is looking at. It is
// a value type: reducers take a State and return a new one.
type State struct {
	CategoryID int64
	Gender     Gender
	Text       string
	Sort       Sort
	Page       int
	Price      PriceRange
}

// Default returns the initial state for the given catalog price bounds.
func Default(bounds PriceRange) State {
	return State{
		CategoryID: CategoryAll,
		Gender:     GenderAll,
		Sort:       SortFeatured,
		Page:       1,
		Price:      bounds,
	}
}

// IsDefaultPrice reports whether the selected price range matches the
// catalog bounds, in which case it is omitted from URLs and requests.
func (s State) IsDefaultPrice(bounds PriceRange) bool {
	return s.Price == bounds || s.Price.IsZero()
}

// TotalPages computes the page count for a result total.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces a page number into [1, TotalPages]. A zero total means
// no result has loaded yet and only the lower bound applies.
func ClampPage(page, total, pageSize int) int {
	if page < 1 {
		return 1
	}
	if total <= 0 {
		return page
	}
	if max := TotalPages(total, pageSize); page > max {
		return max
	}
	return page
}

// Action is one mutation of the filter state. Every action except SetPage
// resets pagination: any filter change invalidates the current page.
type Action interface {
	isAction()
}

// SetCategory selects a category; CategoryAll (or any non-positive id)
// clears the selection.
type SetCategory struct{ ID int64 }

// SetGender switches the gender partition. Categories are gender-
// partitioned, so the category selection is cleared as well.
type SetGender struct{ Gender Gender }

// SetText replaces the free-text search string. Callers debounce
// keystroke-level input before dispatching.
type SetText struct{ Text string }

// SetSort changes the sort order. Unknown values degrade to featured.
type SetSort struct{ Sort Sort }

// SetPriceRange replaces the price selection. Inverted input is swapped
// and the result clamped to the catalog bounds.
type SetPriceRange struct{ Min, Max float64 }

// SetPage moves to another page. The only action that keeps pagination.
type SetPage struct{ Page int }

// Reset restores every field to its default.
type Reset struct{}

func (SetCategory) isAction()   {}
func (SetGender) isAction()     {}
func (SetText) isAction()       {}
func (SetSort) isAction()       {}
func (SetPriceRange) isAction() {}
func (SetPage) isAction()       {}
func (Reset) isAction()         {}

// Apply is the pure reducer: it maps (state, bounds, action) to the next
// state without side effects.
func Apply(s State, bounds PriceRange, a Action) State {
	switch act := a.(type) {
	case SetCategory:
		if act.ID <= 0 {
			s.CategoryID = CategoryAll
		} else {
			s.CategoryID = act.ID
		}
		s.Page = 1
	case SetGender:
		s.Gender = ParseGender(string(act.Gender))
		s.CategoryID = CategoryAll
		s.Page = 1
	case SetText:
		s.Text = act.Text
		s.Page = 1
	case SetSort:
		s.Sort = ParseSort(string(act.Sort))
		s.Page = 1
	case SetPriceRange:
		s.Price = PriceRange{Min: act.Min, Max: act.Max}.Normalize(bounds)
		s.Page = 1
	case SetPage:
		s.Page = act.Page
		if s.Page < 1 {
			s.Page = 1
		}
	case Reset:
		s = Default(bounds)
	}
	return s
}
