package catalog

import (
	"encoding/json"
	"strings"
)

// PlaceholderImage is rendered when a product carries no usable image data.
const PlaceholderImage = "placeholder://product"

// Gender tags used by the catalog API. Categories belong to exactly one
// gender; products inherit the tag of their category.
const (
	GenderAll   = "all"
	GenderMen   = "men"
	GenderWomen = "women"
)

// Product is a catalog entry in transport-friendly form. Image data is
// normalized on decode: the API variously returns an array of strings, an
// array of objects with a url field, or a bare "image" field, and all of
// those collapse into Images.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice float64  `json:"discountPrice"`
	CategoryID    int64    `json:"categoryId"`
	Gender        string   `json:"gender"`
	Rating        float64  `json:"rating"`
	Images        []string `json:"-"`
}

// DisplayImage resolves the product's single display image: first entry of
// the normalized image list, or the placeholder.
func (p Product) DisplayImage() string {
	for _, img := range p.Images {
		if strings.TrimSpace(img) != "" {
			return img
		}
	}
	return PlaceholderImage
}

// EffectivePrice returns the discount price when one is set, otherwise the
// list price.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		return p.DiscountPrice
	}
	return p.Price
}

// imageRef covers the object form of an image entry.
type imageRef struct {
	URL string `json:"url"`
	Src string `json:"src"`
}

func (r imageRef) value() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Src
}

// UnmarshalJSON decodes a product and normalizes its image fields.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		RawImages json.RawMessage `json:"images"`
		Image     string          `json:"image"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Images = normalizeImages(aux.RawImages, aux.Image)
	return nil
}

// normalizeImages flattens the duck-typed image payloads into []string.
// Fallback chain: explicit image array, then the single image field, then
// nothing (DisplayImage supplies the placeholder).
func normalizeImages(raw json.RawMessage, single string) []string {
	var out []string
	if len(raw) > 0 {
		var asStrings []string
		if err := json.Unmarshal(raw, &asStrings); err == nil {
			out = appendNonEmpty(out, asStrings...)
		} else {
			var asRefs []imageRef
			if err := json.Unmarshal(raw, &asRefs); err == nil {
				for _, ref := range asRefs {
					out = appendNonEmpty(out, ref.value())
				}
			} else {
				var one string
				if err := json.Unmarshal(raw, &one); err == nil {
					out = appendNonEmpty(out, one)
				}
			}
		}
	}
	if len(out) == 0 {
		out = appendNonEmpty(out, single)
	}
	return out
}

func appendNonEmpty(dst []string, values ...string) []string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			dst = append(dst, v)
		}
	}
	return dst
}

// Category describes a catalog category. The API encodes the gender and
// slug in a single code field ("m:running-shoes"); Gender and Slug are
// derived on decode. ProductCount is filled in client-side.
type Category struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Code         string `json:"code"`
	Gender       string `json:"-"`
	Slug         string `json:"-"`
	ProductCount int    `json:"-"`
}

// UnmarshalJSON decodes a category and splits its code into gender and slug.
func (c *Category) UnmarshalJSON(data []byte) error {
	type alias Category
	if err := json.Unmarshal(data, (*alias)(c)); err != nil {
		return err
	}
	c.Gender, c.Slug = parseCategoryCode(c.Code)
	if c.Slug == "" {
		c.Slug = Slugify(c.Title)
	}
	return nil
}

// parseCategoryCode splits "<genderChar>:<slug>". Unknown gender characters
// map to the all-genders tag; a missing slug is derived from the title by
// the caller.
func parseCategoryCode(code string) (gender, slug string) {
	gender = GenderAll
	head, tail, found := strings.Cut(code, ":")
	if found {
		slug = strings.TrimSpace(tail)
	}
	switch strings.ToLower(strings.TrimSpace(head)) {
	case "m":
		gender = GenderMen
	case "w", "f":
		gender = GenderWomen
	}
	return gender, slug
}

// Slugify produces a URL-safe slug from a title: lowercase, alphanumerics
// kept, runs of anything else collapsed to single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// CountProducts fills each category's ProductCount by cross-referencing the
// full product set against category ids. One pass over products.
func CountProducts(categories []Category, products []Product) {
	counts := make(map[int64]int, len(categories))
	for _, p := range products {
		counts[p.CategoryID]++
	}
	for i := range categories {
		categories[i].ProductCount = counts[categories[i].ID]
	}
}

// GenderByCategory builds the category-id to gender index used for
// client-side re-filtering.
func GenderByCategory(categories []Category) map[int64]string {
	idx := make(map[int64]string, len(categories))
	for _, c := range categories {
		idx[c.ID] = c.Gender
	}
	return idx
}

// ProductPage mirrors the paginated /products response. MinPrice and
// MaxPrice report the price bounds across the full catalog and are only
// trustworthy on unfiltered requests.
type ProductPage struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
	MinPrice float64   `json:"minPrice"`
	MaxPrice float64   `json:"maxPrice"`
}

// Credentials is the login/signup request payload.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse mirrors /login and /signup responses.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// User identifies the signed-in account.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// emailCheckResponse mirrors /check-email.
type emailCheckResponse struct {
	Available bool `json:"available"`
}
