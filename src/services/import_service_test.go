package services

import (
	"errors"
	"sort"
	"testing"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankitkhedar12/trading-journal/src/models"
)

// fakeTradeStore keeps trades in memory with the same first-write-wins
// upsert contract as the sqlite store. failAfter injects a storage error
// once that many upserts have succeeded; -1 disables injection.
type fakeTradeStore struct {
	byOrder   map[string]models.Trade
	failAfter int
	upserts   int
}

func newFakeTradeStore() *fakeTradeStore {
	return &fakeTradeStore{byOrder: make(map[string]models.Trade), failAfter: -1}
}

func (s *fakeTradeStore) Upsert(t *models.Trade) (*models.Trade, error) {
	if s.failAfter >= 0 && s.upserts >= s.failAfter {
		return nil, errors.New("disk full")
	}
	s.upserts++
	if existing, ok := s.byOrder[t.OrderID]; ok {
		return &existing, nil
	}
	s.byOrder[t.OrderID] = *t
	stored := s.byOrder[t.OrderID]
	return &stored, nil
}

func (s *fakeTradeStore) ListAll(ascending bool) ([]models.Trade, error) {
	trades := make([]models.Trade, 0, len(s.byOrder))
	for _, t := range s.byOrder {
		trades = append(trades, t)
	}
	sort.Slice(trades, func(i, j int) bool {
		if ascending {
			return trades[i].OpenedAt.Before(trades[j].OpenedAt)
		}
		return trades[j].OpenedAt.Before(trades[i].OpenedAt)
	})
	return trades, nil
}

func (s *fakeTradeStore) Count() (int, error) {
	return len(s.byOrder), nil
}

func newTestStatsService(store TradeStore) StatsService {
	return NewStatsService(store, cache.New(DefaultCacheExpiration, CacheCleanupInterval))
}

const importFixture = "Symbol,PnL,Opened,Order\n" +
	"EURUSD,0.64,20/02/2026 19:00:25,#421075739\n" +
	"EURUSD,25.55,20/02/2026 19:18:44,#421082424\n"

func TestImportExport(t *testing.T) {
	store := newFakeTradeStore()
	svc := NewImportService(store, newTestStatsService(store))

	result, err := svc.ImportExport([]byte(importFixture))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Zero(t, result.Skipped)

	stored, _ := store.Count()
	assert.Equal(t, 2, stored)
}

func TestImportExportIsIdempotent(t *testing.T) {
	store := newFakeTradeStore()
	svc := NewImportService(store, newTestStatsService(store))

	first, err := svc.ImportExport([]byte(importFixture))
	require.NoError(t, err)
	second, err := svc.ImportExport([]byte(importFixture))
	require.NoError(t, err)

	assert.Equal(t, first.Count, second.Count)
	stored, _ := store.Count()
	assert.Equal(t, 2, stored, "re-importing the same export must not duplicate trades")
}

func TestImportExportFirstWriteWins(t *testing.T) {
	store := newFakeTradeStore()
	svc := NewImportService(store, newTestStatsService(store))

	_, err := svc.ImportExport([]byte("Order,Opened,Symbol\n#1,20/02/2026 10:00:00,EURUSD\n"))
	require.NoError(t, err)
	_, err = svc.ImportExport([]byte("Order,Opened,Symbol\n#1,20/02/2026 10:00:00,XAUUSD\n"))
	require.NoError(t, err)

	trades, err := store.ListAll(true)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "EURUSD", trades[0].Symbol, "a later import never rewrites an existing order")
}

func TestImportExportUnparsableSkipsRowsOnly(t *testing.T) {
	store := newFakeTradeStore()
	svc := NewImportService(store, newTestStatsService(store))

	text := "Order,Opened,PnL\n" +
		"#1,20/02/2026 10:00:00,5.00\n" +
		",20/02/2026 11:00:00,3.00\n"
	result, err := svc.ImportExport([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 1, result.Skipped)
}

func TestImportExportStorageFailureKeepsPartialProgress(t *testing.T) {
	store := newFakeTradeStore()
	store.failAfter = 1
	svc := NewImportService(store, newTestStatsService(store))

	result, err := svc.ImportExport([]byte(importFixture))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageFailed)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Count, "rows written before the failure stand")

	stored, _ := store.Count()
	assert.Equal(t, 1, stored)
}

func TestImportExportInvalidatesStatsCache(t *testing.T) {
	store := newFakeTradeStore()
	stats := newTestStatsService(store)
	svc := NewImportService(store, stats)

	before, err := stats.GetDashboardStats()
	require.NoError(t, err)
	assert.Zero(t, before.QuickStats.Total)

	_, err = svc.ImportExport([]byte(importFixture))
	require.NoError(t, err)

	after, err := stats.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, 2, after.QuickStats.Total, "cached empty dashboard must be dropped after an import")
}
