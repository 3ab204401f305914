package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func stockedItem(name string, price int64, stock int) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:         uuid.New(),
		Name:       name,
		Price:      price,
		StockLevel: stock,
	}
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	c := New()
	tea := stockedItem("Tea", 14500, 3)

	assert.Equal(t, StateEmpty, c.State())
	assert.True(t, c.AddItem(tea))
	assert.Equal(t, StateBuilding, c.State())
	assert.True(t, c.AddItem(tea))

	lines := c.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, c.TotalQuantity())
}

func TestAddItemBoundedByStockSnapshot(t *testing.T) {
	c := New()
	tea := stockedItem("Tea", 14500, 2)

	assert.True(t, c.AddItem(tea))
	assert.True(t, c.AddItem(tea))
	// third add would exceed the stock snapshot, cart unchanged
	assert.False(t, c.AddItem(tea))
	assert.Equal(t, 2, c.TotalQuantity())
}

func TestAddItemOutOfStock(t *testing.T) {
	c := New()

	assert.False(t, c.AddItem(stockedItem("Soap", 2500, 0)))
	assert.True(t, c.IsEmpty())
	assert.Equal(t, StateEmpty, c.State())
}

func TestAdjustQuantityToZeroRemovesLine(t *testing.T) {
	c := New()
	tea := stockedItem("Tea", 14500, 5)
	rice := stockedItem("Rice", 62000, 5)
	c.AddItem(tea)
	c.AddItem(rice)

	assert.True(t, c.AdjustQuantity(tea.ID, -1))

	lines := c.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, rice.ID, lines[0].ItemID)
}

func TestAdjustQuantityOfLastLineEmptiesCart(t *testing.T) {
	c := New()
	tea := stockedItem("Tea", 14500, 5)
	c.AddItem(tea)

	assert.True(t, c.AdjustQuantity(tea.ID, -1))
	assert.True(t, c.IsEmpty())
	assert.Equal(t, StateEmpty, c.State())
}

func TestAdjustQuantityRejectsExceedingStock(t *testing.T) {
	c := New()
	tea := stockedItem("Tea", 14500, 3)
	c.AddItem(tea)

	assert.False(t, c.AdjustQuantity(tea.ID, 3))
	assert.Equal(t, 1, c.TotalQuantity())

	assert.True(t, c.AdjustQuantity(tea.ID, 2))
	assert.Equal(t, 3, c.TotalQuantity())
}

func TestAdjustQuantityUnknownItem(t *testing.T) {
	c := New()
	c.AddItem(stockedItem("Tea", 14500, 3))

	assert.False(t, c.AdjustQuantity(uuid.New(), 1))
}

func TestDisplayTotal(t *testing.T) {
	c := New()
	tea := stockedItem("Tea", 14500, 5)
	soap := stockedItem("Soap", 2500, 5)
	c.AddItem(tea)
	c.AddItem(tea)
	c.AddItem(soap)

	assert.Equal(t, int64(31500), c.DisplayTotal())
}

func TestBeginCheckoutRequiresLines(t *testing.T) {
	c := New()

	assert.False(t, c.BeginCheckout())

	c.AddItem(stockedItem("Tea", 14500, 5))
	assert.True(t, c.BeginCheckout())
	assert.Equal(t, StateCheckingOut, c.State())

	// no edits while checking out
	assert.False(t, c.AddItem(stockedItem("Rice", 62000, 5)))
	assert.False(t, c.AdjustQuantity(c.Lines()[0].ItemID, 1))
}

func TestCompleteClearsCart(t *testing.T) {
	c := New()
	c.AddItem(stockedItem("Tea", 14500, 5))
	c.BeginCheckout()

	c.Complete()

	assert.Equal(t, StateCompleted, c.State())
	assert.True(t, c.IsEmpty())
}

func TestFailPreservesLinesAndRetryResumes(t *testing.T) {
	c := New()
	tea := stockedItem("Tea", 14500, 5)
	c.AddItem(tea)
	c.AddItem(tea)
	c.BeginCheckout()

	c.Fail()

	assert.Equal(t, StateFailed, c.State())
	assert.Equal(t, 2, c.TotalQuantity())

	assert.True(t, c.Retry())
	assert.Equal(t, StateBuilding, c.State())
	assert.True(t, c.BeginCheckout())
}

func TestRetryOnlyFromFailed(t *testing.T) {
	c := New()

	assert.False(t, c.Retry())

	c.AddItem(stockedItem("Tea", 14500, 5))
	assert.False(t, c.Retry())
}
