package services

import (
	"fmt"
	"time"

	"github.com/ankitkhedar12/trading-journal/src/logger"
	"github.com/ankitkhedar12/trading-journal/src/models"
	"github.com/ankitkhedar12/trading-journal/src/parsers"
)

type importServiceImpl struct {
	parser *parsers.ExportParser
	store  TradeStore
	stats  StatsService
}

func NewImportService(store TradeStore, stats StatsService) ImportService {
	return &importServiceImpl{
		parser: parsers.NewExportParser(),
		store:  store,
		stats:  stats,
	}
}

// ImportExport runs the normalization pipeline over one exported file and
// upserts every resulting trade keyed by order id. Re-importing the same
// file is a no-op on already stored orders, so overlapping export windows
// never duplicate history. Parse-level row problems are absorbed into the
// skipped count; only storage failures abort, and since each row is an
// independent upsert the rows already written stand.
func (s *importServiceImpl) ImportExport(buf []byte) (*models.ImportResult, error) {
	start := time.Now()

	trades, skipped, err := s.parser.Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	accepted := 0
	for i := range trades {
		if _, err := s.store.Upsert(&trades[i]); err != nil {
			result := &models.ImportResult{Count: accepted, Skipped: skipped}
			return result, fmt.Errorf("%w (after %d rows): %v", ErrStorageFailed, accepted, err)
		}
		accepted++
	}

	if accepted > 0 {
		s.stats.InvalidateCache()
	}
	logger.L.Info("Import processed", "accepted", accepted, "skipped", skipped, "duration", time.Since(start))
	return &models.ImportResult{Count: accepted, Skipped: skipped}, nil
}
