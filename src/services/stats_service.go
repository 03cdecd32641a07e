package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/ankitkhedar12/trading-journal/src/models"
)

const (
	ckDashboardStats = "agg_dashboard_stats"
	ckCalendarDays   = "agg_calendar_days"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type statsServiceImpl struct {
	store      TradeStore
	statsCache *cache.Cache
}

func NewStatsService(store TradeStore, statsCache *cache.Cache) StatsService {
	return &statsServiceImpl{store: store, statsCache: statsCache}
}

// GetDashboardStats recomputes the dashboard from the full trade set,
// ordered by open time ascending. Results are cached until the next import.
func (s *statsServiceImpl) GetDashboardStats() (*models.DashboardStats, error) {
	if cached, found := s.statsCache.Get(ckDashboardStats); found {
		return cached.(*models.DashboardStats), nil
	}
	trades, err := s.store.ListAll(true)
	if err != nil {
		return nil, fmt.Errorf("loading trades for dashboard: %w", err)
	}
	stats := computeDashboardStats(trades)
	s.statsCache.Set(ckDashboardStats, stats, DefaultCacheExpiration)
	return stats, nil
}

// GetCalendar buckets trades by the calendar date of their open time,
// summing pnl and counting trades per day for independent per-day
// rendering.
func (s *statsServiceImpl) GetCalendar() ([]models.CalendarDay, error) {
	if cached, found := s.statsCache.Get(ckCalendarDays); found {
		return cached.([]models.CalendarDay), nil
	}
	trades, err := s.store.ListAll(true)
	if err != nil {
		return nil, fmt.Errorf("loading trades for calendar: %w", err)
	}

	type bucket struct {
		pnl   decimal.Decimal
		count int
	}
	buckets := make(map[string]*bucket)
	for _, t := range trades {
		date := t.OpenedAt.UTC().Format("2006-01-02")
		b, ok := buckets[date]
		if !ok {
			b = &bucket{}
			buckets[date] = b
		}
		b.pnl = b.pnl.Add(t.Pnl)
		b.count++
	}

	days := make([]models.CalendarDay, 0, len(buckets))
	for date, b := range buckets {
		days = append(days, models.CalendarDay{
			Date:   date,
			Pnl:    b.pnl.Round(2).InexactFloat64(),
			Trades: b.count,
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	s.statsCache.Set(ckCalendarDays, days, DefaultCacheExpiration)
	return days, nil
}

func (s *statsServiceImpl) InvalidateCache() {
	s.statsCache.Delete(ckDashboardStats)
	s.statsCache.Delete(ckCalendarDays)
}

func computeDashboardStats(trades []models.Trade) *models.DashboardStats {
	stats := &models.DashboardStats{
		ChartData: []models.ChartPoint{},
		QuickStats: models.QuickStats{
			Total:       len(trades),
			WinRate:     "0%",
			LargestLoss: "$0.00",
		},
	}
	if len(trades) == 0 {
		return stats
	}

	wins := 0
	largestLoss := decimal.Zero
	cumulative := decimal.Zero
	for _, t := range trades {
		if t.Pnl.IsPositive() {
			wins++
		}
		if t.Pnl.LessThan(largestLoss) {
			largestLoss = t.Pnl
		}
		cumulative = cumulative.Add(t.Pnl)
		stats.ChartData = append(stats.ChartData, models.ChartPoint{
			Date: t.OpenedAt.UTC().Format("2006-01-02"),
			Pnl:  cumulative.Round(2).InexactFloat64(),
		})
	}

	stats.QuickStats.WinRate = fmt.Sprintf("%.0f%%", float64(wins)/float64(len(trades))*100)
	stats.QuickStats.LargestLoss = "$" + largestLoss.Abs().StringFixed(2)
	return stats
}
