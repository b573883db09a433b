package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vitrine/internal/cart"
	"vitrine/internal/catalog"
)

// detailModel renders a single product fetched on demand.
type detailModel struct {
	opts   Options
	styles Styles

	loading bool
	product *catalog.Product
	err     error
}

func newDetailModel(opts Options, styles Styles) detailModel {
	return detailModel{opts: opts, styles: styles}
}

func (d *detailModel) receive(msg productMsg) {
	d.loading = false
	d.product = msg.product
	d.err = msg.err
}

func (d *detailModel) update(root *Model, msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if key.Matches(keyMsg, root.keys.AddCart) || keyMsg.Type == tea.KeyEnter {
		if d.product != nil {
			root.opts.Cart.Add(cart.Line{
				ProductID: d.product.ID,
				Name:      d.product.Name,
				Image:     d.product.DisplayImage(),
				Price:     d.product.EffectivePrice(),
			}, 1)
			root.status = fmt.Sprintf("added %s to cart", d.product.Name)
		}
	}
	return nil
}

func (d *detailModel) view(root *Model) string {
	if d.loading {
		return d.styles.InfoText.Render("loading product…")
	}
	if d.err != nil {
		return d.styles.DangerText.Render("product load failed: "+d.err.Error()) +
			"\n" + d.styles.MutedText.Render("esc returns to the shop")
	}
	if d.product == nil {
		return d.styles.MutedText.Render("no product selected")
	}

	p := d.product
	currency := d.opts.Currency

	var lines []string
	lines = append(lines, d.styles.AccentText.Render(p.Name))

	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		lines = append(lines, fmt.Sprintf("%s  %s",
			d.styles.SuccessText.Render(fmt.Sprintf("%s%.2f", currency, p.DiscountPrice)),
			d.styles.FaintText.Strikethrough(true).Render(fmt.Sprintf("%s%.2f", currency, p.Price))))
	} else {
		lines = append(lines, d.styles.Text.Render(fmt.Sprintf("%s%.2f", currency, p.Price)))
	}

	lines = append(lines, d.styles.MutedText.Render(fmt.Sprintf("rating %.1f  •  %s", p.Rating, p.Gender)))

	lines = append(lines, "")
	lines = append(lines, d.styles.MutedText.Render("images:"))
	if len(p.Images) == 0 {
		lines = append(lines, d.styles.FaintText.Render("  "+catalog.PlaceholderImage))
	} else {
		for _, img := range p.Images {
			lines = append(lines, d.styles.FaintText.Render("  "+img))
		}
	}

	lines = append(lines, "")
	lines = append(lines, d.styles.FaintText.Render(d.opts.Codec.RenderProduct(*p)))
	lines = append(lines, d.styles.MutedText.Render("a/enter adds to cart, esc returns to the shop"))

	body := strings.Join(lines, "\n")
	return lipgloss.JoinVertical(lipgloss.Left, d.styles.Panel.Render(body))
}
