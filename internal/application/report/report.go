// Package report turns snapshots of inventory and sale records into the
// figures shown on the dashboard and sales report. Every function is pure:
// inputs are never mutated, no I/O happens, and results are deterministic
// given the same snapshots and reference time.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/domain/entity"
)

// Totals holds aggregate revenue, profit and transaction count over a range
type Totals struct {
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Count   int     `json:"count"`
}

// DailyPoint is one calendar-day bucket of a time series
type DailyPoint struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// RankBy selects the sort key for TopProducts
type RankBy string

const (
	RankByRevenue RankBy = "revenue"
	RankByUnits   RankBy = "units"
)

// ProductRank is one entry of a top-products ranking
type ProductRank struct {
	ItemID  uuid.UUID `json:"item_id"`
	Name    string    `json:"name"`
	Revenue float64   `json:"revenue"`
	Units   int       `json:"units"`
}

// StockSummaryResult summarizes inventory stock levels
type StockSummaryResult struct {
	TotalUnits      int `json:"total_units"`
	LowStockCount   int `json:"low_stock_count"`
	OutOfStockCount int `json:"out_of_stock_count"`
	TotalProducts   int `json:"total_products"`
}

// RangeTotals sums revenue, profit and sale count over the half-open
// interval [start, end). An empty snapshot yields all zeros, never an error.
func RangeTotals(sales []entity.Sale, start, end time.Time) Totals {
	var revenue, profit int64
	var count int

	for i := range sales {
		soldAt := sales[i].SoldAt
		if soldAt.Before(start) || !soldAt.Before(end) {
			continue
		}
		revenue += sales[i].Total
		profit += sales[i].Profit
		count++
	}

	return Totals{
		Revenue: float64(revenue) / 100,
		Profit:  float64(profit) / 100,
		Count:   count,
	}
}

// DailySeries buckets sales into numDays consecutive calendar days ending at
// asOf's day, oldest first. Day boundaries are midnight in asOf's location.
// Days without sales produce zero-valued entries; the result always has
// exactly numDays entries.
func DailySeries(sales []entity.Sale, numDays int, asOf time.Time) []DailyPoint {
	if numDays <= 0 {
		return []DailyPoint{}
	}

	series := make([]DailyPoint, 0, numDays)
	loc := asOf.Location()

	for i := numDays - 1; i >= 0; i-- {
		day := asOf.AddDate(0, 0, -i)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		dayEnd := dayStart.AddDate(0, 0, 1)

		totals := RangeTotals(sales, dayStart, dayEnd)
		series = append(series, DailyPoint{
			Label:   dayStart.Format("Jan 02"),
			Revenue: totals.Revenue,
			Profit:  totals.Profit,
		})
	}

	return series
}

// TopProducts ranks products by revenue or units sold across the sales
// snapshot, resolving names against the inventory snapshot. Lines whose
// item no longer exists are skipped; a deleted product must never break a
// report. Ties are broken by item ID ascending so the ranking is stable.
func TopProducts(sales []entity.Sale, items []entity.InventoryItem, n int, rankBy RankBy) []ProductRank {
	if n <= 0 {
		return []ProductRank{}
	}

	itemsByID := make(map[uuid.UUID]*entity.InventoryItem, len(items))
	for i := range items {
		itemsByID[items[i].ID] = &items[i]
	}

	type accum struct {
		revenue int64
		units   int
	}
	totals := make(map[uuid.UUID]*accum)

	for i := range sales {
		for _, line := range sales[i].Items {
			if _, exists := itemsByID[line.ItemID]; !exists {
				continue
			}
			acc, ok := totals[line.ItemID]
			if !ok {
				acc = &accum{}
				totals[line.ItemID] = acc
			}
			acc.revenue += line.UnitPrice * int64(line.Quantity)
			acc.units += line.Quantity
		}
	}

	ranking := make([]ProductRank, 0, len(totals))
	for id, acc := range totals {
		ranking = append(ranking, ProductRank{
			ItemID:  id,
			Name:    itemsByID[id].Name,
			Revenue: float64(acc.revenue) / 100,
			Units:   acc.units,
		})
	}

	sort.Slice(ranking, func(a, b int) bool {
		ra, rb := ranking[a], ranking[b]
		if rankBy == RankByUnits {
			if ra.Units != rb.Units {
				return ra.Units > rb.Units
			}
		} else {
			if ra.Revenue != rb.Revenue {
				return ra.Revenue > rb.Revenue
			}
		}
		return ra.ItemID.String() < rb.ItemID.String()
	})

	if len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// StockSummary counts units and flags low/out-of-stock items. Low stock
// means 0 < stockLevel <= lowStockThreshold; out of stock means exactly zero.
func StockSummary(items []entity.InventoryItem) StockSummaryResult {
	var summary StockSummaryResult
	summary.TotalProducts = len(items)

	for i := range items {
		summary.TotalUnits += items[i].StockLevel
		switch {
		case items[i].IsOutOfStock():
			summary.OutOfStockCount++
		case items[i].IsLowStock():
			summary.LowStockCount++
		}
	}

	return summary
}

// MarginPercent returns profit as a percentage of revenue, or 0 when
// revenue is not positive.
func MarginPercent(revenue, profit float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return profit / revenue * 100
}
