package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is the canonical, deduplicated representation of one broker trade.
// OrderID is the identity key: re-importing a file with an already known
// order leaves the stored row untouched.
type Trade struct {
	ID          int64           `json:"id,omitempty"`
	OrderID     string          `json:"orderId"`
	Symbol      string          `json:"symbol"`
	Volume      string          `json:"volume"` // kept as text, may encode "closed/total" pairs like "0.05/0.05"
	EntryPrice  decimal.Decimal `json:"entryPrice"`
	ClosePrice  decimal.Decimal `json:"closePrice"`
	Pnl         decimal.Decimal `json:"pnl"`
	NetPnl      decimal.Decimal `json:"netPnl"`
	ChargesSwap string          `json:"chargesSwap"`
	OpenedAt    time.Time       `json:"openedAt"`
	ClosedAt    time.Time       `json:"closedAt"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}

// ImportResult summarizes one processed upload.
type ImportResult struct {
	Count   int `json:"count"`   // rows accepted (inserted or already present)
	Skipped int `json:"skipped"` // rows dropped for missing order id / open time
}

// ChartPoint is one step of the cumulative P&L curve.
type ChartPoint struct {
	Date string  `json:"date"` // YYYY-MM-DD of the trade's open time
	Pnl  float64 `json:"pnl"`  // running total, rounded to 2 decimal places
}

// QuickStats are the headline dashboard numbers.
type QuickStats struct {
	Total       int    `json:"total"`
	WinRate     string `json:"winRate"`     // whole-percentage string, e.g. "67%"
	LargestLoss string `json:"largestLoss"` // absolute currency string, e.g. "$12.40"
}

// DashboardStats is recomputed on demand from the full trade set.
type DashboardStats struct {
	ChartData  []ChartPoint `json:"chartData"`
	QuickStats QuickStats   `json:"quickStats"`
}

// CalendarDay aggregates the trades opened on one calendar date.
type CalendarDay struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Pnl    float64 `json:"pnl"`
	Trades int     `json:"trades"`
}
