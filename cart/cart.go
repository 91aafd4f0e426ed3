// Package cart holds the customer's cart: priced lines merged by configuration.
package cart

import (
	"fmt"
	"sync"

	"pizza-deprizza/errs"
	"pizza-deprizza/models"
)

// LineID builds the merge key of a menu pizza: item, size and doubled ingredient.
func LineID(itemID int64, sizeKey, double string) string {
	if double == "" {
		double = "none"
	}
	return fmt.Sprintf("%d-%s-%s", itemID, sizeKey, double)
}

// Cart is the in-memory cart. It changes only through its methods; OnChange is
// called after every mutation with a snapshot of the lines.
type Cart struct {
	mu       sync.Mutex
	lines    []models.CartLine
	onChange func([]models.CartLine)
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// SetChangeCallback sets the function called after every mutation.
func (c *Cart) SetChangeCallback(fn func([]models.CartLine)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Add merges line into an existing line with the same CartID or appends it
// with quantity 1. It returns the resulting line.
func (c *Cart) Add(line models.CartLine) (models.CartLine, error) {
	if line.CartID == "" {
		return models.CartLine{}, errs.Invalid("cartId", "la línea no tiene identificador")
	}
	if line.UnitPrice < 0 {
		return models.CartLine{}, errs.Invalid("price", "precio inválido %d", line.UnitPrice)
	}

	c.mu.Lock()
	var result models.CartLine
	merged := false
	for i := range c.lines {
		if c.lines[i].CartID == line.CartID {
			c.lines[i].Quantity++
			result = c.lines[i]
			merged = true
			break
		}
	}
	if !merged {
		line.Quantity = 1
		c.lines = append(c.lines, line)
		result = line
	}
	snapshot, fn := c.snapshotLocked()
	c.mu.Unlock()

	notify(fn, snapshot)
	return result, nil
}

// Remove deletes the line with cartID. It reports whether a line was removed.
func (c *Cart) Remove(cartID string) bool {
	c.mu.Lock()
	idx := -1
	for i := range c.lines {
		if c.lines[i].CartID == cartID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	snapshot, fn := c.snapshotLocked()
	c.mu.Unlock()

	notify(fn, snapshot)
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	snapshot, fn := c.snapshotLocked()
	c.mu.Unlock()

	notify(fn, snapshot)
}

// Settle removes the quantities of submitted from the cart after they were
// ordered. Lines added or merged since the snapshot keep their extra units.
func (c *Cart) Settle(submitted []models.CartLine) {
	ordered := make(map[string]int, len(submitted))
	for _, l := range submitted {
		ordered[l.CartID] += l.Quantity
	}

	c.mu.Lock()
	kept := c.lines[:0]
	for _, l := range c.lines {
		l.Quantity -= ordered[l.CartID]
		delete(ordered, l.CartID)
		if l.Quantity > 0 {
			kept = append(kept, l)
		}
	}
	c.lines = kept
	snapshot, fn := c.snapshotLocked()
	c.mu.Unlock()

	notify(fn, snapshot)
}

// Total is Σ unitPrice × quantity.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return total(c.lines)
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Count is the number of pizzas (sum of quantities).
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Total sums a set of lines; the ticket and the checkout payload use it too.
func Total(lines []models.CartLine) int64 { return total(lines) }

func total(lines []models.CartLine) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.LineTotal()
	}
	return sum
}

func (c *Cart) snapshotLocked() ([]models.CartLine, func([]models.CartLine)) {
	if c.onChange == nil {
		return nil, nil
	}
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out, c.onChange
}

func notify(fn func([]models.CartLine), lines []models.CartLine) {
	if fn != nil {
		fn(lines)
	}
}
