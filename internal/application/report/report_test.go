package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func sale(soldAt time.Time, total, profit int64, lines ...entity.SaleItem) entity.Sale {
	return entity.Sale{
		ID:     uuid.New(),
		Total:  total,
		Profit: profit,
		SoldAt: soldAt,
		Items:  lines,
	}
}

func TestRangeTotalsHalfOpenInterval(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	sales := []entity.Sale{
		sale(start.Add(-time.Second), 1000, 100), // before the range
		sale(start, 2000, 200),                   // boundary, included
		sale(start.Add(12*time.Hour), 3000, 300), // inside
		sale(end, 4000, 400),                     // end boundary, excluded
	}

	totals := RangeTotals(sales, start, end)

	assert.Equal(t, 50.0, totals.Revenue)
	assert.Equal(t, 5.0, totals.Profit)
	assert.Equal(t, 2, totals.Count)
}

func TestRangeTotalsEmptySnapshot(t *testing.T) {
	totals := RangeTotals(nil, time.Now().Add(-time.Hour), time.Now())

	assert.Equal(t, Totals{}, totals)
}

func TestRangeTotalsFullSpanMatchesSum(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	sales := []entity.Sale{
		sale(base, 1250, 300),
		sale(base.Add(time.Hour), 999, 99),
		sale(base.Add(48*time.Hour), 5000, 2000),
	}

	totals := RangeTotals(sales, base, base.Add(49*time.Hour))

	assert.Equal(t, 72.49, totals.Revenue)
	assert.Equal(t, 23.99, totals.Profit)
	assert.Equal(t, 3, totals.Count)
}

func TestDailySeriesAlwaysHasExactlyNumDays(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 17, 30, 0, 0, time.UTC)

	series := DailySeries(nil, 7, asOf)

	assert.Len(t, series, 7)
	for _, p := range series {
		assert.Zero(t, p.Revenue)
		assert.Zero(t, p.Profit)
	}
}

func TestDailySeriesBucketsByMidnightBoundary(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 17, 30, 0, 0, time.UTC)
	sales := []entity.Sale{
		// 23:59 on the 14th lands in the second-to-last bucket
		sale(time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC), 1000, 100),
		// 00:00 on the 15th lands in the last bucket
		sale(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 2000, 200),
	}

	series := DailySeries(sales, 3, asOf)

	assert.Len(t, series, 3)
	assert.Equal(t, "Mar 13", series[0].Label)
	assert.Zero(t, series[0].Revenue)
	assert.Equal(t, "Mar 14", series[1].Label)
	assert.Equal(t, 10.0, series[1].Revenue)
	assert.Equal(t, "Mar 15", series[2].Label)
	assert.Equal(t, 20.0, series[2].Revenue)
}

func TestDailySeriesZeroDays(t *testing.T) {
	assert.Empty(t, DailySeries(nil, 0, time.Now()))
}

func TestTopProductsRanksByRevenue(t *testing.T) {
	tea := entity.InventoryItem{ID: uuid.New(), Name: "Tea"}
	rice := entity.InventoryItem{ID: uuid.New(), Name: "Rice"}
	soap := entity.InventoryItem{ID: uuid.New(), Name: "Soap"}
	items := []entity.InventoryItem{tea, rice, soap}

	now := time.Now()
	sales := []entity.Sale{
		sale(now, 0, 0,
			entity.SaleItem{ItemID: tea.ID, Quantity: 2, UnitPrice: 1000},  // 20.00
			entity.SaleItem{ItemID: rice.ID, Quantity: 1, UnitPrice: 5000}, // 50.00
		),
		sale(now, 0, 0,
			entity.SaleItem{ItemID: soap.ID, Quantity: 10, UnitPrice: 200}, // 20.00
		),
	}

	ranking := TopProducts(sales, items, 2, RankByRevenue)

	assert.Len(t, ranking, 2)
	assert.Equal(t, "Rice", ranking[0].Name)
	assert.Equal(t, 50.0, ranking[0].Revenue)
	// Tea and Soap tie at 20.00, lower item ID wins
	expected := "Tea"
	if soap.ID.String() < tea.ID.String() {
		expected = "Soap"
	}
	assert.Equal(t, expected, ranking[1].Name)
}

func TestTopProductsRanksByUnits(t *testing.T) {
	tea := entity.InventoryItem{ID: uuid.New(), Name: "Tea"}
	soap := entity.InventoryItem{ID: uuid.New(), Name: "Soap"}
	items := []entity.InventoryItem{tea, soap}

	sales := []entity.Sale{
		sale(time.Now(), 0, 0,
			entity.SaleItem{ItemID: tea.ID, Quantity: 2, UnitPrice: 9000},
			entity.SaleItem{ItemID: soap.ID, Quantity: 10, UnitPrice: 200},
		),
	}

	ranking := TopProducts(sales, items, 5, RankByUnits)

	assert.Len(t, ranking, 2)
	assert.Equal(t, "Soap", ranking[0].Name)
	assert.Equal(t, 10, ranking[0].Units)
	assert.Equal(t, "Tea", ranking[1].Name)
}

func TestTopProductsSkipsDeletedItems(t *testing.T) {
	tea := entity.InventoryItem{ID: uuid.New(), Name: "Tea"}
	deletedID := uuid.New()

	sales := []entity.Sale{
		sale(time.Now(), 0, 0,
			entity.SaleItem{ItemID: tea.ID, Quantity: 1, UnitPrice: 1000},
			entity.SaleItem{ItemID: deletedID, Quantity: 99, UnitPrice: 9999},
		),
	}

	ranking := TopProducts(sales, []entity.InventoryItem{tea}, 5, RankByRevenue)

	assert.Len(t, ranking, 1)
	assert.Equal(t, tea.ID, ranking[0].ItemID)
}

func TestTopProductsTruncatesToN(t *testing.T) {
	items := make([]entity.InventoryItem, 8)
	lines := make([]entity.SaleItem, 8)
	for i := range items {
		items[i] = entity.InventoryItem{ID: uuid.New(), Name: "P"}
		lines[i] = entity.SaleItem{ItemID: items[i].ID, Quantity: i + 1, UnitPrice: 100}
	}

	ranking := TopProducts([]entity.Sale{sale(time.Now(), 0, 0, lines...)}, items, 5, RankByUnits)

	assert.Len(t, ranking, 5)
}

func TestStockSummary(t *testing.T) {
	items := []entity.InventoryItem{
		{StockLevel: 0, LowStockThreshold: 5},  // out of stock
		{StockLevel: 5, LowStockThreshold: 5},  // low, at the threshold
		{StockLevel: 20, LowStockThreshold: 5}, // healthy
	}

	summary := StockSummary(items)

	assert.Equal(t, 25, summary.TotalUnits)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, 1, summary.OutOfStockCount)
	assert.Equal(t, 3, summary.TotalProducts)
}

func TestMarginPercent(t *testing.T) {
	assert.Equal(t, 0.0, MarginPercent(0, 0))
	assert.Equal(t, 0.0, MarginPercent(-10, 5))
	assert.Equal(t, 25.0, MarginPercent(100, 25))
	assert.Equal(t, 100.0, MarginPercent(50, 50))
}
