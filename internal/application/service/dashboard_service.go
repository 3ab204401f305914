package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/application/report"
	"github.com/stockmate-app/stockmate-api/internal/domain/entity"
	"github.com/stockmate-app/stockmate-api/internal/domain/repository"
	"github.com/stockmate-app/stockmate-api/pkg/apperror"
	"github.com/stockmate-app/stockmate-api/pkg/currency"
)

// DashboardService fetches inventory and sales snapshots and feeds them to
// the report package. All arithmetic lives in report; this service only
// does I/O and assembly.
type DashboardService struct {
	saleRepo repository.SaleRepository
	itemRepo repository.ItemRepository
	money    *currency.Formatter
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(saleRepo repository.SaleRepository, itemRepo repository.ItemRepository, money *currency.Formatter) *DashboardService {
	return &DashboardService{
		saleRepo: saleRepo,
		itemRepo: itemRepo,
		money:    money,
		now:      time.Now,
	}
}

// DashboardStats represents the dashboard overview figures
type DashboardStats struct {
	Today            report.Totals             `json:"today"`
	Week             report.Totals             `json:"week"`
	Stock            report.StockSummaryResult `json:"stock"`
	DailySales       []report.DailyPoint       `json:"daily_sales"`
	TopProducts      []report.ProductRank      `json:"top_products"`
	TodayRevenueText string                    `json:"today_revenue_text"`
	TodayProfitText  string                    `json:"today_profit_text"`
}

// SalesReport represents the sales analytics page figures
type SalesReport struct {
	Range         string               `json:"range"`
	Totals        report.Totals        `json:"totals"`
	MarginPercent float64              `json:"margin_percent"`
	TopProducts   []report.ProductRank `json:"top_products"`
	RecentSales   []entity.Sale        `json:"recent_sales"`
}

// GetDashboardStats returns today/week totals, the stock summary, the 7-day
// series and the top five products by revenue
func (s *DashboardService) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	sales, err := s.saleRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	items, err := s.itemRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	now := s.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := todayStart.AddDate(0, 0, 1)
	weekStart := todayStart.AddDate(0, 0, -7)

	today := report.RangeTotals(sales, todayStart, tomorrow)

	stats := &DashboardStats{
		Today:            today,
		Week:             report.RangeTotals(sales, weekStart, tomorrow),
		Stock:            report.StockSummary(items),
		DailySales:       report.DailySeries(sales, 7, now),
		TopProducts:      report.TopProducts(sales, items, 5, report.RankByRevenue),
		TodayRevenueText: s.money.Format(today.Revenue),
		TodayProfitText:  s.money.Format(today.Profit),
	}

	return stats, nil
}

// reportRange resolves a named range to its start time. Unknown names mean
// the full history.
func reportRange(name string, now time.Time) time.Time {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch name {
	case "today":
		return todayStart
	case "7days":
		return now.AddDate(0, 0, -7)
	case "30days":
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}

// GetSalesReport returns range totals, margin and top products for the
// sales analytics page. rankBy is "revenue" or "units"; recentLimit bounds
// the recent-sales list.
func (s *DashboardService) GetSalesReport(ctx context.Context, userID uuid.UUID, rangeName string, rankBy report.RankBy, recentLimit int) (*SalesReport, error) {
	sales, err := s.saleRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	items, err := s.itemRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}

	now := s.now()
	start := reportRange(rangeName, now)
	end := now.Add(time.Second)

	// Restrict the snapshot so top products and recents honor the range
	inRange := make([]entity.Sale, 0, len(sales))
	for i := range sales {
		if !sales[i].SoldAt.Before(start) && sales[i].SoldAt.Before(end) {
			inRange = append(inRange, sales[i])
		}
	}

	totals := report.RangeTotals(sales, start, end)

	if recentLimit <= 0 {
		recentLimit = 10
	}
	recent := mostRecent(inRange, recentLimit)

	return &SalesReport{
		Range:         rangeName,
		Totals:        totals,
		MarginPercent: report.MarginPercent(totals.Revenue, totals.Profit),
		TopProducts:   report.TopProducts(inRange, items, 5, rankBy),
		RecentSales:   recent,
	}, nil
}

func mostRecent(sales []entity.Sale, limit int) []entity.Sale {
	out := make([]entity.Sale, len(sales))
	copy(out, sales)

	sort.Slice(out, func(a, b int) bool {
		return out[a].SoldAt.After(out[b].SoldAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
