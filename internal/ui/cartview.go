package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vitrine/internal/cart"
)

// cartModel renders the cart contents with quantity editing and the totals
// breakdown.
type cartModel struct {
	opts   Options
	styles Styles

	lines  []cart.Line
	cursor int
}

func newCartModel(opts Options, styles Styles) cartModel {
	return cartModel{opts: opts, styles: styles}
}

// refresh re-reads the cart lines; called when the view opens and after
// every mutation.
func (c *cartModel) refresh() {
	c.lines = c.opts.Cart.Lines()
	if c.cursor >= len(c.lines) {
		c.cursor = len(c.lines) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

func (c *cartModel) update(root *Model, msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, root.keys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(keyMsg, root.keys.Down):
		if c.cursor < len(c.lines)-1 {
			c.cursor++
		}
	case keyMsg.String() == "+":
		if line, ok := c.selected(); ok {
			c.opts.Cart.SetQuantity(line.ProductID, line.Quantity+1)
			c.refresh()
		}
	case keyMsg.String() == "-":
		// Dropping to zero removes the line.
		if line, ok := c.selected(); ok {
			c.opts.Cart.SetQuantity(line.ProductID, line.Quantity-1)
			c.refresh()
		}
	case keyMsg.String() == "x", keyMsg.Type == tea.KeyDelete:
		if line, ok := c.selected(); ok {
			c.opts.Cart.Remove(line.ProductID)
			c.refresh()
		}
	case keyMsg.String() == "X":
		c.opts.Cart.Clear()
		c.refresh()
	}
	return nil
}

func (c *cartModel) selected() (cart.Line, bool) {
	if c.cursor < 0 || c.cursor >= len(c.lines) {
		return cart.Line{}, false
	}
	return c.lines[c.cursor], true
}

func (c *cartModel) view(root *Model) string {
	currency := c.opts.Currency

	if len(c.lines) == 0 {
		return c.styles.Panel.Render(
			c.styles.MutedText.Render("your cart is empty") + "\n" +
				c.styles.FaintText.Render("esc returns to the shop"))
	}

	var rows []string
	for i, line := range c.lines {
		text := fmt.Sprintf("%-36s %3d × %s%8.2f  =  %s%9.2f",
			truncate(line.Name, 36), line.Quantity,
			currency, line.Price,
			currency, line.Price*float64(line.Quantity))
		if i == c.cursor {
			text = c.styles.Selected.Render("> " + text)
		} else {
			text = c.styles.Text.Render("  " + text)
		}
		rows = append(rows, text)
	}

	totals := c.opts.Cart.Totals()
	shipping := fmt.Sprintf("%s%.2f", currency, totals.Shipping)
	if totals.Shipping == 0 {
		shipping = c.styles.SuccessText.Render("free")
	}
	summary := strings.Join([]string{
		c.styles.MutedText.Render(fmt.Sprintf("subtotal  %s%9.2f", currency, totals.Subtotal)),
		c.styles.MutedText.Render("shipping  ") + shipping,
		c.styles.MutedText.Render(fmt.Sprintf("tax       %s%9.2f", currency, totals.Tax)),
		c.styles.AccentText.Render(fmt.Sprintf("total     %s%9.2f", currency, totals.Total)),
	}, "\n")

	help := c.styles.FaintText.Render("+/- quantity, x remove, X clear, esc shop")

	return lipgloss.JoinVertical(lipgloss.Left,
		c.styles.Panel.Render(strings.Join(rows, "\n")),
		c.styles.Panel.Render(summary),
		help,
	)
}

// truncate shortens a display string to n runes, never splitting a rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
