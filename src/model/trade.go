package model

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ankitkhedar12/trading-journal/src/models"
)

const tradeColumns = `id, order_id, symbol, volume, entry_price, close_price,
	pnl, net_pnl, charges_swap, opened_at, closed_at, status, created_at`

// UpsertTrade stores a trade keyed by its broker order id with
// first-write-wins semantics: when the order id is already present the
// existing row is left untouched and returned. Two concurrent imports of
// the same order id therefore cannot corrupt state; SQLite resolves the
// conflict atomically.
func UpsertTrade(db *sql.DB, t *models.Trade) (*models.Trade, error) {
	_, err := db.Exec(`
		INSERT INTO trades
			(order_id, symbol, volume, entry_price, close_price, pnl, net_pnl,
			 charges_swap, opened_at, closed_at, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(order_id) DO NOTHING`,
		t.OrderID, t.Symbol, t.Volume, t.EntryPrice, t.ClosePrice, t.Pnl, t.NetPnl,
		t.ChargesSwap, formatInstant(t.OpenedAt), formatInstant(t.ClosedAt), t.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("upserting trade %s: %w", t.OrderID, err)
	}
	return GetTradeByOrderID(db, t.OrderID)
}

// GetTradeByOrderID fetches one trade by its dedup key.
func GetTradeByOrderID(db *sql.DB, orderID string) (*models.Trade, error) {
	row := db.QueryRow(`SELECT `+tradeColumns+` FROM trades WHERE order_id = ?`, orderID)
	t, err := scanTrade(row)
	if err != nil {
		return nil, fmt.Errorf("fetching trade %s: %w", orderID, err)
	}
	return t, nil
}

// ListTrades returns every stored trade ordered by open time.
func ListTrades(db *sql.DB, ascending bool) ([]models.Trade, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}
	rows, err := db.Query(`SELECT ` + tradeColumns + ` FROM trades ORDER BY opened_at ` + order + `, id ` + order)
	if err != nil {
		return nil, fmt.Errorf("listing trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning trade row: %w", err)
		}
		trades = append(trades, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trade rows: %w", err)
	}
	return trades, nil
}

// CountTrades reports the stored trade set size.
func CountTrades(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM trades`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting trades: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (*models.Trade, error) {
	var t models.Trade
	var openedAt, closedAt, createdAt string
	err := row.Scan(
		&t.ID, &t.OrderID, &t.Symbol, &t.Volume, &t.EntryPrice, &t.ClosePrice,
		&t.Pnl, &t.NetPnl, &t.ChargesSwap, &openedAt, &closedAt, &t.Status, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	if t.OpenedAt, err = parseDBTime(openedAt); err != nil {
		return nil, err
	}
	if t.ClosedAt, err = parseDBTime(closedAt); err != nil {
		return nil, err
	}
	// created_at comes from CURRENT_TIMESTAMP and uses SQLite's own layout.
	t.CreatedAt, _ = parseDBTime(createdAt)
	return &t, nil
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseDBTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized stored time %q", s)
}
