package model

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/ankitkhedar12/trading-journal/src/models"
)

const tradesSchema = `
CREATE TABLE trades (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id TEXT NOT NULL UNIQUE,
    symbol TEXT NOT NULL DEFAULT '',
    volume TEXT NOT NULL DEFAULT '',
    entry_price TEXT NOT NULL DEFAULT '0',
    close_price TEXT NOT NULL DEFAULT '0',
    pnl TEXT NOT NULL DEFAULT '0',
    net_pnl TEXT NOT NULL DEFAULT '0',
    charges_swap TEXT NOT NULL DEFAULT '0.00/0.00',
    opened_at TIMESTAMP NOT NULL,
    closed_at TIMESTAMP NOT NULL,
    status TEXT NOT NULL DEFAULT 'Closed',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(tradesSchema)
	require.NoError(t, err)
	return db
}

func sampleTrade(orderID string, openedAt time.Time, pnl string) *models.Trade {
	return &models.Trade{
		OrderID:     orderID,
		Symbol:      "EURUSD",
		Volume:      "0.05/0.05",
		EntryPrice:  decimal.RequireFromString("1085.50"),
		ClosePrice:  decimal.RequireFromString("1090.00"),
		Pnl:         decimal.RequireFromString(pnl),
		NetPnl:      decimal.RequireFromString(pnl),
		ChargesSwap: "0.10/0.00",
		OpenedAt:    openedAt,
		ClosedAt:    openedAt.Add(time.Hour),
		Status:      "Closed",
	}
}

func TestUpsertTradeRoundTrip(t *testing.T) {
	db := openTestDB(t)
	opened := time.Date(2026, 2, 20, 19, 18, 44, 0, time.UTC)

	stored, err := UpsertTrade(db, sampleTrade("#421082424", opened, "25.55"))
	require.NoError(t, err)

	assert.NotZero(t, stored.ID)
	assert.Equal(t, "#421082424", stored.OrderID)
	assert.Equal(t, "EURUSD", stored.Symbol)
	assert.True(t, stored.Pnl.Equal(decimal.RequireFromString("25.55")))
	assert.True(t, stored.OpenedAt.Equal(opened))
	assert.True(t, stored.ClosedAt.Equal(opened.Add(time.Hour)))
}

func TestUpsertTradeFirstWriteWins(t *testing.T) {
	db := openTestDB(t)
	opened := time.Date(2026, 2, 20, 19, 0, 25, 0, time.UTC)

	first, err := UpsertTrade(db, sampleTrade("#421075739", opened, "0.64"))
	require.NoError(t, err)

	replay := sampleTrade("#421075739", opened, "999.99")
	replay.Symbol = "XAUUSD"
	second, err := UpsertTrade(db, replay)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "EURUSD", second.Symbol)
	assert.True(t, second.Pnl.Equal(first.Pnl), "replayed upsert must not rewrite the stored row")

	n, err := CountTrades(db)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestListTradesOrdering(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

	for i, orderID := range []string{"#3", "#1", "#2"} {
		offsets := map[string]time.Duration{"#1": 0, "#2": time.Hour, "#3": 2 * time.Hour}
		_, err := UpsertTrade(db, sampleTrade(orderID, base.Add(offsets[orderID]), "1.00"))
		require.NoError(t, err, "inserting trade %d", i)
	}

	asc, err := ListTrades(db, true)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, "#1", asc[0].OrderID)
	assert.Equal(t, "#2", asc[1].OrderID)
	assert.Equal(t, "#3", asc[2].OrderID)

	desc, err := ListTrades(db, false)
	require.NoError(t, err)
	assert.Equal(t, "#3", desc[0].OrderID)
}

func TestListTradesEmpty(t *testing.T) {
	db := openTestDB(t)
	trades, err := ListTrades(db, true)
	require.NoError(t, err)
	assert.Empty(t, trades)
}
