// Package cart holds the shopping cart: ordered line items persisted to a
// JSON file, with subtotal, shipping, and tax arithmetic.
package cart

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Pricing policy. Shipping is a step function of the subtotal: free above
// the threshold, a flat fee otherwise. Tax is a fixed percentage.
const (
	FreeShippingThreshold = 100.0
	ShippingFee           = 10.0
	TaxRate               = 0.08
)

// Line is one cart row. Price is a snapshot taken when the product was
// added; later catalog price changes do not reprice the cart.
type Line struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Totals is the cart arithmetic breakdown, each component rounded to cents.
type Totals struct {
	Subtotal float64
	Shipping float64
	Tax      float64
	Total    float64
}

// Cart holds the ordered line items and persists them to a JSON file on
// every mutation. Product ids are unique within the cart: adding an
// existing product increments its quantity instead of appending a row.
type Cart struct {
	mu    sync.Mutex
	lines []Line
	path  string
	log   *zap.Logger
}

// Load reads the cart file at path. A missing, unreadable, or corrupt file
// yields an empty cart; storage problems are logged, never fatal.
func Load(path string, log *zap.Logger) *Cart {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Cart{path: path, log: log}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("cart read failed, starting empty", zap.String("path", path), zap.Error(err))
		}
		return c
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		log.Warn("cart file corrupt, starting empty", zap.String("path", path), zap.Error(err))
		return c
	}
	for _, l := range lines {
		if l.ProductID > 0 && l.Quantity > 0 {
			c.lines = append(c.lines, l)
		}
	}
	return c
}

// Add merges qty of the given line into the cart.
func (c *Cart) Add(line Line, qty int) {
	if line.ProductID <= 0 || qty <= 0 {
		return
	}
	c.mu.Lock()
	merged := false
	for i := range c.lines {
		if c.lines[i].ProductID == line.ProductID {
			c.lines[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		line.Quantity = qty
		c.lines = append(c.lines, line)
	}
	c.mu.Unlock()
	c.persist()
}

// SetQuantity pins a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(productID int64, qty int) {
	c.mu.Lock()
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if qty <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = qty
		}
		break
	}
	c.mu.Unlock()
	c.persist()
}

// Remove deletes a line.
func (c *Cart) Remove(productID int64) {
	c.SetQuantity(productID, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
	c.persist()
}

// Lines returns a copy of the cart rows in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == 0 {
		return nil
	}
	dup := make([]Line, len(c.lines))
	copy(dup, c.lines)
	return dup
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Units returns the total number of items across all lines.
func (c *Cart) Units() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	units := 0
	for _, l := range c.lines {
		units += l.Quantity
	}
	return units
}

// Totals computes the subtotal and its derived shipping and tax.
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := 0.0
	for _, l := range c.lines {
		subtotal += l.Price * float64(l.Quantity)
	}
	subtotal = roundCents(subtotal)

	shipping := 0.0
	if subtotal > 0 && subtotal < FreeShippingThreshold {
		shipping = ShippingFee
	}
	tax := roundCents(subtotal * TaxRate)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    roundCents(subtotal + shipping + tax),
	}
}

// persist writes the cart file. Failures are logged and swallowed; the
// in-memory cart stays authoritative for the session.
func (c *Cart) persist() {
	if c.path == "" {
		return
	}
	c.mu.Lock()
	data, err := json.Marshal(c.lines)
	c.mu.Unlock()
	if err != nil {
		c.log.Warn("cart encode failed", zap.Error(err))
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		c.log.Warn("cart dir create failed", zap.String("path", c.path), zap.Error(err))
		return
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		c.log.Warn("cart write failed", zap.String("path", c.path), zap.Error(err))
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
