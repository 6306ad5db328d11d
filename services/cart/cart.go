package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/pharmacare/services/catalogapi"
)

type Line struct {
	Product  catalogapi.Product `json:"product"`
	Quantity int                `json:"quantity"`
}

func (l Line) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type ChangeType int

const (
	Unchanged ChangeType = iota
	LineAdded
	QuantityIncreased
	QuantityReplaced
	LineRemoved
	Cleared
)

// Change tells what a transition did, and to which line.
type Change struct {
	Type ChangeType
	Line Line
}

// Cart is an immutable value: every transition returns a new cart.
// Lines keep insertion order and hold at most one line per product.
type Cart struct {
	lines []Line
}

func (c Cart) indexOf(productUID string) int {
	return slices.IndexFunc(c.lines, func(l Line) bool {
		return l.Product.UID == productUID
	})
}

func (c Cart) Add(product catalogapi.Product, quantity int) (Cart, Change) {
	if quantity < 1 {
		return c, Change{Type: Unchanged}
	}

	lines := slices.Clone(c.lines)
	idx := c.indexOf(product.UID)
	if idx >= 0 {
		lines[idx].Quantity += quantity
		return Cart{lines: lines}, Change{Type: QuantityIncreased, Line: lines[idx]}
	}

	line := Line{Product: product, Quantity: quantity}
	return Cart{lines: append(lines, line)}, Change{Type: LineAdded, Line: line}
}

func (c Cart) Remove(productUID string) (Cart, Change) {
	idx := c.indexOf(productUID)
	if idx < 0 {
		return c, Change{Type: Unchanged}
	}
	removed := c.lines[idx]
	return Cart{lines: slices.Delete(slices.Clone(c.lines), idx, idx+1)}, Change{Type: LineRemoved, Line: removed}
}

// UpdateQuantity removes the line when quantity drops to zero or below.
func (c Cart) UpdateQuantity(productUID string, quantity int) (Cart, Change) {
	if quantity <= 0 {
		return c.Remove(productUID)
	}

	idx := c.indexOf(productUID)
	if idx < 0 {
		return c, Change{Type: Unchanged}
	}
	lines := slices.Clone(c.lines)
	lines[idx].Quantity = quantity
	return Cart{lines: lines}, Change{Type: QuantityReplaced, Line: lines[idx]}
}

func (c Cart) Clear() (Cart, Change) {
	return Cart{}, Change{Type: Cleared}
}

// ClearOrdered takes the quantities of ordered out of the cart. What was added after
// ordered was taken stays in the cart.
func (c Cart) ClearOrdered(ordered Cart) (Cart, Change) {
	lines := []Line{}
	for _, l := range c.lines {
		idx := ordered.indexOf(l.Product.UID)
		if idx >= 0 {
			l.Quantity -= ordered.lines[idx].Quantity
		}
		if l.Quantity > 0 {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return Cart{}, Change{Type: Cleared}
	}
	return Cart{lines: lines}, Change{Type: Cleared}
}

func (c Cart) Lines() []Line {
	return slices.Clone(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalPrice is rounded half away from zero to cents, after summing exact line totals.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total.Round(2)
}

func (c Cart) TotalItems() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}
