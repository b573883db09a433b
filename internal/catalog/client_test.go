package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("api.example.com:8080")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != "api.example.com:8080" {
		t.Fatalf("host = %q, want api.example.com:8080", u.Host)
	}

	u, err = parseBaseURL("https://example.com/v1/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/v1" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("   "); err == nil {
		t.Fatal("parseBaseURL accepted empty base")
	}
}

func TestClient_FetchProductsEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/products":
			gotQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode(ProductPage{
				Total:    29,
				Products: []Product{{ID: 7, Name: "Trail Runner"}},
				MinPrice: 15,
				MaxPrice: 900,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	min, max := 200.0, 800.0
	page, err := c.FetchProducts(ctx, ProductQuery{
		Limit:      12,
		Offset:     24,
		Filter:     "boots",
		Sort:       "price_asc",
		CategoryID: 5,
		Gender:     GenderWomen,
		PriceMin:   &min,
		PriceMax:   &max,
	})
	if err != nil {
		t.Fatalf("FetchProducts returned error: %v", err)
	}
	if page.Total != 29 || len(page.Products) != 1 || page.Products[0].ID != 7 {
		t.Fatalf("FetchProducts payload = %#v, want total=29 one product id=7", page)
	}

	want := map[string]string{
		"limit":       "12",
		"offset":      "24",
		"filter":      "boots",
		"sort":        "price_asc",
		"category_id": "5",
		"gender":      "women",
		"priceMin":    "200",
		"priceMax":    "800",
	}
	for key, value := range want {
		if got := gotQuery.Get(key); got != value {
			t.Errorf("query %s = %q, want %q", key, got, value)
		}
	}
	if gotUserAgent != defaultUserAgent {
		t.Errorf("user agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
}

func TestClient_FetchProductsOmitsDefaults(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(ProductPage{})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchProducts(context.Background(), ProductQuery{Limit: 12, Offset: 0, Gender: GenderAll})
	if err != nil {
		t.Fatalf("FetchProducts returned error: %v", err)
	}

	for _, key := range []string{"filter", "sort", "category_id", "gender", "priceMin", "priceMax"} {
		if gotQuery.Has(key) {
			t.Errorf("query unexpectedly contains %s=%q", key, gotQuery.Get(key))
		}
	}
	if gotQuery.Get("limit") != "12" || gotQuery.Get("offset") != "0" {
		t.Errorf("pagination params = limit=%q offset=%q, want 12/0", gotQuery.Get("limit"), gotQuery.Get("offset"))
	}
}

func TestClient_AuthEndpoints(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/login" && r.Method == http.MethodPost:
			var creds Credentials
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds.Email != "a@b.co" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(AuthResponse{Token: "tok", User: User{ID: 3, Email: creds.Email}})
		case r.URL.Path == "/check-email":
			_ = json.NewEncoder(w).Encode(map[string]bool{"available": r.URL.Query().Get("email") == "new@b.co"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	resp, err := c.Login(ctx, Credentials{Email: "a@b.co", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Token != "tok" || resp.User.ID != 3 {
		t.Fatalf("Login payload = %#v, want token=tok user id=3", resp)
	}

	if _, err := c.Login(ctx, Credentials{Email: "wrong@b.co", Password: "x"}); err == nil {
		t.Fatal("Login with bad credentials should fail")
	}

	free, err := c.CheckEmail(ctx, "new@b.co")
	if err != nil {
		t.Fatalf("CheckEmail returned error: %v", err)
	}
	if !free {
		t.Fatal("CheckEmail = false, want true")
	}
	taken, err := c.CheckEmail(ctx, "a@b.co")
	if err != nil {
		t.Fatalf("CheckEmail returned error: %v", err)
	}
	if taken {
		t.Fatal("CheckEmail = true, want false for taken address")
	}
}

func TestClient_FetchProductValidatesID(t *testing.T) {
	c, err := NewClient("localhost:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchProduct(context.Background(), 0); err == nil {
		t.Fatal("FetchProduct(0) should fail")
	}
}
