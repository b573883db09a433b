package shopurl

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"vitrine/internal/catalog"
	"vitrine/internal/filter"
)

var testCategories = []catalog.Category{
	{ID: 5, Title: "Running Shoes", Gender: catalog.GenderMen, Slug: "running-shoes"},
	{ID: 8, Title: "Dresses", Gender: catalog.GenderWomen, Slug: "dresses"},
}

var testBounds = filter.PriceRange{Min: 10, Max: 1000}

func TestCodec_RenderKnownShapes(t *testing.T) {
	c := NewCodec(testCategories)

	cases := []struct {
		name  string
		state filter.State
		want  string
	}{
		{
			name:  "default state is the bare listing",
			state: filter.Default(testBounds),
			want:  "/shop",
		},
		{
			name: "gender only",
			state: func() filter.State {
				s := filter.Default(testBounds)
				s.Gender = filter.GenderMen
				return s
			}(),
			want: "/shop/men",
		},
		{
			name: "gendered category",
			state: func() filter.State {
				s := filter.Default(testBounds)
				s.Gender = filter.GenderMen
				s.CategoryID = 5
				return s
			}(),
			want: "/shop/men/running-shoes/5",
		},
		{
			name: "genderless category",
			state: func() filter.State {
				s := filter.Default(testBounds)
				s.CategoryID = 8
				return s
			}(),
			want: "/shop/category/dresses/8",
		},
		{
			name: "query params only when off default",
			state: func() filter.State {
				s := filter.Default(testBounds)
				s.Text = "waterproof"
				s.Sort = filter.SortPriceAsc
				s.Page = 3
				s.Price = filter.PriceRange{Min: 50, Max: 1000}
				return s
			}(),
			want: "/shop?filter=waterproof&page=3&price_min=50&sort=price_asc",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Render(tc.state, testBounds); got != tc.want {
				t.Fatalf("Render = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec(testCategories)

	// Every reachable (normalized) state must survive parse(render(s)).
	states := []filter.State{
		filter.Default(testBounds),
		{Gender: filter.GenderWomen, Sort: filter.SortFeatured, Page: 1, Price: testBounds},
		{Gender: filter.GenderWomen, CategoryID: 8, Sort: filter.SortRatingDesc, Page: 4, Price: testBounds},
		{Gender: filter.GenderAll, CategoryID: 5, Sort: filter.SortFeatured, Page: 1, Price: filter.PriceRange{Min: 100, Max: 400}},
		{Gender: filter.GenderMen, Text: "trail boots", Sort: filter.SortPriceDesc, Page: 2, Price: filter.PriceRange{Min: 10, Max: 250}},
		{Gender: filter.GenderAll, Text: "é&=?#", Sort: filter.SortPriceAsc, Page: 1, Price: testBounds},
	}

	for _, want := range states {
		raw := c.Render(want, testBounds)
		got, err := c.Parse(raw, testBounds)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", raw, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("round trip of %q mismatch (-want +got):\n%s", raw, diff)
		}
	}
}

func TestCodec_ParseDetails(t *testing.T) {
	c := NewCodec(testCategories)

	// Slug is cosmetic: the id wins even when the slug is stale.
	s, err := c.Parse("/shop/men/stale-slug/5", testBounds)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if s.CategoryID != 5 || s.Gender != filter.GenderMen {
		t.Fatalf("state = %+v, want category 5 men", s)
	}

	// ...and the canonical check flags the stale slug for a redirect.
	ok, err := c.Canonical("/shop/men/stale-slug/5", testBounds)
	if err != nil {
		t.Fatalf("Canonical returned error: %v", err)
	}
	if ok {
		t.Fatal("Canonical = true for stale slug, want false")
	}
	ok, err = c.Canonical("/shop/men/running-shoes/5", testBounds)
	if err != nil || !ok {
		t.Fatalf("Canonical = %v, %v for canonical url, want true", ok, err)
	}

	// Unknown sort degrades to featured; bad page degrades to 1.
	s, err = c.Parse("/shop?sort=bogus&page=zero", testBounds)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if s.Sort != filter.SortFeatured || s.Page != 1 {
		t.Fatalf("state = %+v, want featured page 1", s)
	}

	// One-sided price params inherit the missing side from the bounds.
	s, err = c.Parse("/shop?price_max=300", testBounds)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if s.Price.Min != testBounds.Min || s.Price.Max != 300 {
		t.Fatalf("price = %+v, want %v..300", s.Price, testBounds.Min)
	}

	// Inverted price params are normalized.
	s, err = c.Parse("/shop?price_min=800&price_max=200", testBounds)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if s.Price.Min != 200 || s.Price.Max != 800 {
		t.Fatalf("price = %+v, want 200..800", s.Price)
	}
}

func TestCodec_ParseRejectsMalformedPaths(t *testing.T) {
	c := NewCodec(testCategories)

	for _, raw := range []string{
		"/cart",
		"/shop/unisex",
		"/shop/men/only-a-slug",
		"/shop/men/slug/not-a-number",
		"/shop/men/slug/-3",
		"/shop/men/slug/5/extra",
	} {
		if _, err := c.Parse(raw, testBounds); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", raw)
		}
	}
}

func TestCodec_ProductURLs(t *testing.T) {
	c := NewCodec(testCategories)

	p := catalog.Product{ID: 42, CategoryID: 8, Gender: catalog.GenderWomen}
	raw := c.RenderProduct(p)
	if raw != "/product/women/dresses/42" {
		t.Fatalf("RenderProduct = %q", raw)
	}
	id, err := c.ParseProduct(raw)
	if err != nil || id != 42 {
		t.Fatalf("ParseProduct = %d, %v, want 42", id, err)
	}

	// Product without gender inherits the category's.
	p = catalog.Product{ID: 7, CategoryID: 5}
	if got := c.RenderProduct(p); got != "/product/men/running-shoes/7" {
		t.Fatalf("RenderProduct = %q", got)
	}

	if _, err := c.ParseProduct("/product/men/slug"); err == nil {
		t.Fatal("ParseProduct accepted short path")
	}
}

func TestHistory_PushReplaceBackForward(t *testing.T) {
	h := NewHistory("/shop")

	h.Push("/shop/men")
	h.Replace("/shop/men?page=2") // filter tweak rewrites in place
	h.Push("/shop/men/running-shoes/5")

	if got := h.Current(); got != "/shop/men/running-shoes/5" {
		t.Fatalf("Current = %q", got)
	}

	u, ok := h.Back()
	if !ok || u != "/shop/men?page=2" {
		t.Fatalf("Back = %q, %v", u, ok)
	}
	u, ok = h.Back()
	if !ok || u != "/shop" {
		t.Fatalf("Back = %q, %v", u, ok)
	}
	if _, ok := h.Back(); ok {
		t.Fatal("Back past the oldest entry should report false")
	}

	u, ok = h.Forward()
	if !ok || u != "/shop/men?page=2" {
		t.Fatalf("Forward = %q, %v", u, ok)
	}

	// Pushing from the middle discards the forward entries.
	h.Push("/shop/women")
	if _, ok := h.Forward(); ok {
		t.Fatal("Forward after Push should report false")
	}
}
