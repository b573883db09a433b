package shopurl

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"vitrine/internal/catalog"
	"vitrine/internal/filter"
)

// Route prefixes and reserved segments of the client route surface.
const (
	shopPath        = "/shop"
	productPath     = "/product"
	categorySegment = "category"
	fallbackSlug    = "item"
)

// Query parameter names. All are omitted at their default values, so the
// default state renders as the bare listing URL.
const (
	paramFilter   = "filter"
	paramSort     = "sort"
	paramPage     = "page"
	paramPriceMin = "price_min"
	paramPriceMax = "price_max"
)

// Codec converts between filter states and canonical shop URLs. It carries
// the category list so category ids can be rendered with their SEO slug;
// on parse the id is authoritative and the slug is cosmetic.
type Codec struct {
	byID map[int64]catalog.Category
}

// NewCodec builds a codec over the known categories.
func NewCodec(categories []catalog.Category) *Codec {
	byID := make(map[int64]catalog.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return &Codec{byID: byID}
}

// Render produces the canonical URL for a state. Gender and category live
// in the path; text, sort, page, and price live in the query string and are
// dropped at their defaults, so Render(Default) is just "/shop".
func (c *Codec) Render(s filter.State, bounds filter.PriceRange) string {
	var path string
	switch {
	case s.CategoryID != filter.CategoryAll:
		slug := fallbackSlug
		if cat, ok := c.byID[s.CategoryID]; ok && cat.Slug != "" {
			slug = cat.Slug
		}
		head := categorySegment
		if s.Gender != filter.GenderAll {
			head = string(s.Gender)
		}
		path = fmt.Sprintf("%s/%s/%s/%d", shopPath, head, slug, s.CategoryID)
	case s.Gender != filter.GenderAll:
		path = shopPath + "/" + string(s.Gender)
	default:
		path = shopPath
	}

	values := url.Values{}
	if s.Text != "" {
		values.Set(paramFilter, s.Text)
	}
	if s.Sort != filter.SortFeatured {
		values.Set(paramSort, string(s.Sort))
	}
	if s.Page > 1 {
		values.Set(paramPage, strconv.Itoa(s.Page))
	}
	if !s.IsDefaultPrice(bounds) {
		if s.Price.Min != bounds.Min {
			values.Set(paramPriceMin, formatPrice(s.Price.Min))
		}
		if s.Price.Max != bounds.Max {
			values.Set(paramPriceMax, formatPrice(s.Price.Max))
		}
	}

	if encoded := values.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

// Parse reads a shop URL back into a filter state. The inverse of Render:
// parse(render(s)) yields s for every normalized state. Unknown sort values
// degrade to featured and an absent page means page one; a malformed path
// or a non-numeric category id is an error.
func (c *Codec) Parse(raw string, bounds filter.PriceRange) (filter.State, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return filter.State{}, fmt.Errorf("parse url: %w", err)
	}

	s := filter.Default(bounds)

	segments := splitPath(u.Path)
	if len(segments) == 0 || segments[0] != strings.TrimPrefix(shopPath, "/") {
		return filter.State{}, fmt.Errorf("not a shop url: %q", u.Path)
	}
	switch len(segments) {
	case 1:
		// bare listing
	case 2:
		gender := filter.Gender(segments[1])
		if gender != filter.GenderMen && gender != filter.GenderWomen {
			return filter.State{}, fmt.Errorf("unknown gender segment %q", segments[1])
		}
		s.Gender = gender
	case 4:
		if segments[1] == categorySegment {
			s.Gender = filter.GenderAll
		} else {
			gender := filter.Gender(segments[1])
			if gender != filter.GenderMen && gender != filter.GenderWomen {
				return filter.State{}, fmt.Errorf("unknown gender segment %q", segments[1])
			}
			s.Gender = gender
		}
		id, err := strconv.ParseInt(segments[3], 10, 64)
		if err != nil || id <= 0 {
			return filter.State{}, fmt.Errorf("invalid category id %q", segments[3])
		}
		s.CategoryID = id
	default:
		return filter.State{}, fmt.Errorf("unrecognized shop path %q", u.Path)
	}

	query := u.Query()
	s.Text = query.Get(paramFilter)
	s.Sort = filter.ParseSort(query.Get(paramSort))
	if rawPage := query.Get(paramPage); rawPage != "" {
		if page, err := strconv.Atoi(rawPage); err == nil && page > 1 {
			s.Page = page
		}
	}

	if query.Has(paramPriceMin) || query.Has(paramPriceMax) {
		price := bounds
		if raw := query.Get(paramPriceMin); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				price.Min = v
			}
		}
		if raw := query.Get(paramPriceMax); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				price.Max = v
			}
		}
		s.Price = price.Normalize(bounds)
	}

	return s, nil
}

// Canonical reports whether raw already is the canonical form of the state
// it parses to. A false result with a nil error means the caller should
// redirect to Render's output (e.g. a stale SEO slug).
func (c *Codec) Canonical(raw string, bounds filter.PriceRange) (bool, error) {
	s, err := c.Parse(raw, bounds)
	if err != nil {
		return false, err
	}
	return c.Render(s, bounds) == raw, nil
}

// RenderProduct produces the canonical product detail URL:
// /product/{gender}/{categorySlug}/{productId}.
func (c *Codec) RenderProduct(p catalog.Product) string {
	gender := p.Gender
	if gender == "" {
		gender = catalog.GenderAll
	}
	slug := fallbackSlug
	if cat, ok := c.byID[p.CategoryID]; ok {
		if cat.Slug != "" {
			slug = cat.Slug
		}
		if gender == catalog.GenderAll && cat.Gender != "" {
			gender = cat.Gender
		}
	}
	return fmt.Sprintf("%s/%s/%s/%d", productPath, gender, slug, p.ID)
}

// ParseProduct extracts the product id from a detail URL. The gender and
// slug segments are cosmetic.
func (c *Codec) ParseProduct(raw string) (int64, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("parse url: %w", err)
	}
	segments := splitPath(u.Path)
	if len(segments) != 4 || segments[0] != strings.TrimPrefix(productPath, "/") {
		return 0, fmt.Errorf("not a product url: %q", u.Path)
	}
	id, err := strconv.ParseInt(segments[3], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", segments[3])
	}
	return id, nil
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
