// Package cart implements the transient shopping-cart used by the checkout
// flow. A cart lives for one checkout session, is never persisted, and
// moves through Empty -> Building -> CheckingOut -> Completed | Failed.
package cart

import (
	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/domain/entity"
)

// State is the lifecycle state of a cart
type State string

const (
	StateEmpty       State = "empty"
	StateBuilding    State = "building"
	StateCheckingOut State = "checking_out"
	StateCompleted   State = "completed"
	StateFailed      State = "failed"
)

// Line is one product entry in the cart. UnitPrice and StockLevel are
// snapshots taken when the product was added; the price is a display cache
// only, checkout re-prices from the current inventory snapshot.
type Line struct {
	ItemID     uuid.UUID
	Name       string
	UnitPrice  int64 // cents, display snapshot
	Quantity   int
	StockLevel int // stock snapshot used to bound Quantity
}

// Cart accumulates lines for a single checkout session. Not safe for
// concurrent use; a cart belongs to one session.
type Cart struct {
	state State
	lines []Line
}

// New returns an empty cart
func New() *Cart {
	return &Cart{state: StateEmpty}
}

// State returns the current lifecycle state
func (c *Cart) State() State {
	return c.state
}

// Lines returns a copy of the cart's lines, in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// AddItem adds one unit of the given inventory item. If the item is already
// in the cart its quantity is incremented. The add is rejected (a no-op
// returning false) when it would exceed the item's stock level at the time
// it was first added.
func (c *Cart) AddItem(item *entity.InventoryItem) bool {
	if c.state != StateEmpty && c.state != StateBuilding {
		return false
	}

	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			if c.lines[i].Quantity >= c.lines[i].StockLevel {
				return false
			}
			c.lines[i].Quantity++
			return true
		}
	}

	if item.StockLevel < 1 {
		return false
	}

	c.lines = append(c.lines, Line{
		ItemID:     item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   1,
		StockLevel: item.StockLevel,
	})
	c.state = StateBuilding
	return true
}

// AdjustQuantity changes a line's quantity by delta. Adjusting to zero or
// below removes the line; increments beyond the stock snapshot are rejected
// as a no-op. Returns false when nothing changed.
func (c *Cart) AdjustQuantity(itemID uuid.UUID, delta int) bool {
	if c.state != StateBuilding {
		return false
	}

	for i := range c.lines {
		if c.lines[i].ItemID != itemID {
			continue
		}

		next := c.lines[i].Quantity + delta
		if next <= 0 {
			c.removeAt(i)
			return true
		}
		if next > c.lines[i].StockLevel {
			return false
		}
		c.lines[i].Quantity = next
		return true
	}
	return false
}

// RemoveLine removes the line for the given item, if present
func (c *Cart) RemoveLine(itemID uuid.UUID) bool {
	if c.state != StateBuilding {
		return false
	}
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.removeAt(i)
			return true
		}
	}
	return false
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	if len(c.lines) == 0 {
		c.state = StateEmpty
	}
}

// DisplayTotal sums quantity times the cached unit price, in cents. This is
// what the cart screen shows; the authoritative total is computed at
// checkout from current prices.
func (c *Cart) DisplayTotal() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.UnitPrice * int64(l.Quantity)
	}
	return total
}

// BeginCheckout transitions a non-empty Building cart to CheckingOut
func (c *Cart) BeginCheckout() bool {
	if c.state != StateBuilding || len(c.lines) == 0 {
		return false
	}
	c.state = StateCheckingOut
	return true
}

// Complete marks a successful checkout and clears the cart
func (c *Cart) Complete() {
	c.lines = nil
	c.state = StateCompleted
}

// Fail marks a failed checkout. Lines are preserved so the caller can retry.
func (c *Cart) Fail() {
	c.state = StateFailed
}

// Retry moves a failed cart back to Building with its lines intact
func (c *Cart) Retry() bool {
	if c.state != StateFailed {
		return false
	}
	if len(c.lines) == 0 {
		c.state = StateEmpty
	} else {
		c.state = StateBuilding
	}
	return true
}
