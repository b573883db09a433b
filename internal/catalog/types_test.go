package catalog

import (
	"encoding/json"
	"testing"
)

func TestProduct_ImageNormalization(t *testing.T) {
	cases := []struct {
		name string
		json string
		want string
	}{
		{
			name: "array of strings",
			json: `{"id":1,"images":["a.jpg","b.jpg"]}`,
			want: "a.jpg",
		},
		{
			name: "array of objects with url",
			json: `{"id":1,"images":[{"url":"u.jpg"},{"url":"v.jpg"}]}`,
			want: "u.jpg",
		},
		{
			name: "array of objects with src",
			json: `{"id":1,"images":[{"src":"s.jpg"}]}`,
			want: "s.jpg",
		},
		{
			name: "bare string images field",
			json: `{"id":1,"images":"solo.jpg"}`,
			want: "solo.jpg",
		},
		{
			name: "single image field fallback",
			json: `{"id":1,"image":"single.jpg"}`,
			want: "single.jpg",
		},
		{
			name: "empty array falls through to image field",
			json: `{"id":1,"images":[],"image":"single.jpg"}`,
			want: "single.jpg",
		},
		{
			name: "nothing usable yields placeholder",
			json: `{"id":1,"images":[""]}`,
			want: PlaceholderImage,
		},
		{
			name: "no image data at all",
			json: `{"id":1}`,
			want: PlaceholderImage,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p Product
			if err := json.Unmarshal([]byte(tc.json), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := p.DisplayImage(); got != tc.want {
				t.Fatalf("DisplayImage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestProduct_EffectivePrice(t *testing.T) {
	p := Product{Price: 100, DiscountPrice: 80}
	if got := p.EffectivePrice(); got != 80 {
		t.Fatalf("EffectivePrice = %v, want 80", got)
	}
	p = Product{Price: 100}
	if got := p.EffectivePrice(); got != 100 {
		t.Fatalf("EffectivePrice = %v, want 100", got)
	}
	// A "discount" above list price is ignored.
	p = Product{Price: 100, DiscountPrice: 120}
	if got := p.EffectivePrice(); got != 100 {
		t.Fatalf("EffectivePrice = %v, want 100", got)
	}
}

func TestCategory_CodeParsing(t *testing.T) {
	cases := []struct {
		name       string
		json       string
		wantGender string
		wantSlug   string
	}{
		{
			name:       "men with slug",
			json:       `{"id":1,"title":"Running Shoes","code":"m:running-shoes"}`,
			wantGender: GenderMen,
			wantSlug:   "running-shoes",
		},
		{
			name:       "women with slug",
			json:       `{"id":2,"title":"Dresses","code":"w:dresses"}`,
			wantGender: GenderWomen,
			wantSlug:   "dresses",
		},
		{
			name:       "slug derived from title when missing",
			json:       `{"id":3,"title":"Hats & Caps","code":"m:"}`,
			wantGender: GenderMen,
			wantSlug:   "hats-caps",
		},
		{
			name:       "unknown gender char",
			json:       `{"id":4,"title":"Socks","code":"x:socks"}`,
			wantGender: GenderAll,
			wantSlug:   "socks",
		},
		{
			name:       "no code at all",
			json:       `{"id":5,"title":"Belts"}`,
			wantGender: GenderAll,
			wantSlug:   "belts",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Category
			if err := json.Unmarshal([]byte(tc.json), &c); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if c.Gender != tc.wantGender {
				t.Errorf("Gender = %q, want %q", c.Gender, tc.wantGender)
			}
			if c.Slug != tc.wantSlug {
				t.Errorf("Slug = %q, want %q", c.Slug, tc.wantSlug)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Running Shoes":  "running-shoes",
		"Hats & Caps":    "hats-caps",
		"  T-Shirts  ":   "t-shirts",
		"ÉLÉGANT":        "l-gant",
		"already-a-slug": "already-a-slug",
		"":               "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCountProducts(t *testing.T) {
	cats := []Category{{ID: 1}, {ID: 2}, {ID: 3}}
	products := []Product{
		{ID: 10, CategoryID: 1},
		{ID: 11, CategoryID: 1},
		{ID: 12, CategoryID: 2},
		{ID: 13, CategoryID: 99},
	}
	CountProducts(cats, products)
	if cats[0].ProductCount != 2 || cats[1].ProductCount != 1 || cats[2].ProductCount != 0 {
		t.Fatalf("counts = %d/%d/%d, want 2/1/0", cats[0].ProductCount, cats[1].ProductCount, cats[2].ProductCount)
	}
}
