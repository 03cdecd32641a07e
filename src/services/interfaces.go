package services

import (
	"database/sql"
	"errors"

	"github.com/ankitkhedar12/trading-journal/src/model"
	"github.com/ankitkhedar12/trading-journal/src/models"
)

// Define common service errors
var (
	ErrParsingFailed = errors.New("export parsing failed")
	ErrStorageFailed = errors.New("trade storage failed")
)

// TradeStore is the storage collaborator the import pipeline writes to.
// Upsert must be atomic per order id: create if absent, else return the
// existing row unchanged.
type TradeStore interface {
	Upsert(t *models.Trade) (*models.Trade, error)
	ListAll(ascending bool) ([]models.Trade, error)
	Count() (int, error)
}

// ImportService ingests one raw broker export file.
type ImportService interface {
	ImportExport(buf []byte) (*models.ImportResult, error)
}

// StatsService derives dashboard figures from the stored trade set.
type StatsService interface {
	GetDashboardStats() (*models.DashboardStats, error)
	GetCalendar() ([]models.CalendarDay, error)
	InvalidateCache()
}

type dbTradeStore struct {
	db *sql.DB
}

// NewTradeStore wraps the trades table behind the TradeStore contract.
func NewTradeStore(db *sql.DB) TradeStore {
	return &dbTradeStore{db: db}
}

func (s *dbTradeStore) Upsert(t *models.Trade) (*models.Trade, error) {
	return model.UpsertTrade(s.db, t)
}

func (s *dbTradeStore) ListAll(ascending bool) ([]models.Trade, error) {
	return model.ListTrades(s.db, ascending)
}

func (s *dbTradeStore) Count() (int, error) {
	return model.CountTrades(s.db)
}
