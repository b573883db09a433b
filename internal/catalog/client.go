package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Fetcher defines the read side of the catalog API. Implemented by *Client;
// the fetch orchestrator and tests depend on this interface.
type Fetcher interface {
	FetchCategories(ctx context.Context) ([]Category, error)
	FetchProducts(ctx context.Context, query ProductQuery) (ProductPage, error)
	FetchProduct(ctx context.Context, id int64) (*Product, error)
}

// Authenticator defines the account side of the API.
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (*AuthResponse, error)
	Signup(ctx context.Context, creds Credentials) (*AuthResponse, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
}

// Ensure Client satisfies both surfaces at compile time.
var (
	_ Fetcher       = (*Client)(nil)
	_ Authenticator = (*Client)(nil)
)

// Client talks to the storefront HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "vitrine/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL. A bare host:port is
// promoted to http.
func NewClient(apiBase string) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ProductQuery carries the request parameters for /products. Zero values
// are omitted from the query string, except pagination which is always sent.
type ProductQuery struct {
	Limit      int
	Offset     int
	Filter     string
	Sort       string
	CategoryID int64
	Gender     string
	PriceMin   *float64
	PriceMax   *float64
}

// FetchCategories retrieves the category list.
func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchProducts retrieves one page of products matching the query.
func (c *Client) FetchProducts(ctx context.Context, query ProductQuery) (ProductPage, error) {
	if c == nil {
		return ProductPage{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("limit", strconv.Itoa(query.Limit))
	values.Set("offset", strconv.Itoa(query.Offset))
	if filter := strings.TrimSpace(query.Filter); filter != "" {
		values.Set("filter", filter)
	}
	if sort := strings.TrimSpace(query.Sort); sort != "" {
		values.Set("sort", sort)
	}
	if query.CategoryID > 0 {
		values.Set("category_id", strconv.FormatInt(query.CategoryID, 10))
	}
	if gender := strings.TrimSpace(query.Gender); gender != "" && gender != GenderAll {
		values.Set("gender", gender)
	}
	if query.PriceMin != nil {
		values.Set("priceMin", formatPrice(*query.PriceMin))
	}
	if query.PriceMax != nil {
		values.Set("priceMax", formatPrice(*query.PriceMax))
	}
	rel := &url.URL{Path: "/products", RawQuery: values.Encode()}
	var payload ProductPage
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return ProductPage{}, err
	}
	return payload, nil
}

// FetchProduct retrieves a single product by id.
func (c *Client) FetchProduct(ctx context.Context, id int64) (*Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return nil, fmt.Errorf("product id required")
	}
	var payload Product
	if err := c.do(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", creds, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Signup registers a new account and returns its session.
func (c *Client) Signup(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload AuthResponse
	if err := c.do(ctx, http.MethodPost, "/signup", creds, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CheckEmail reports whether an email address is free to register.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("email", strings.TrimSpace(email))
	rel := &url.URL{Path: "/check-email", RawQuery: values.Encode()}
	var payload emailCheckResponse
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return false, err
	}
	return payload.Available, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	// Keep any path prefix on the base URL (ResolveReference would drop it).
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + rel.Path
	reqURL.RawQuery = rel.RawQuery

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		return nil, fmt.Errorf("api base is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", apiBase, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
