package parsers

import (
	"fmt"

	"github.com/ankitkhedar12/trading-journal/src/logger"
	"github.com/ankitkhedar12/trading-journal/src/models"
)

// ExportParser converts a raw broker export (MT5-style CSV/TSV in arbitrary
// encoding, with arbitrary column naming) into normalized trades.
type ExportParser struct{}

func NewExportParser() *ExportParser {
	return &ExportParser{}
}

// Parse runs the whole normalization pipeline over one file's bytes:
// decode, sniff the delimiter, split into rows, then resolve and coerce
// each row into a Trade. Rows whose order id or open time cannot be
// resolved are dropped; the second return value counts them.
func (p *ExportParser) Parse(buf []byte) ([]models.Trade, int, error) {
	text := DecodeExport(buf)
	delimiter := DetectDelimiter(text)

	headers, rows, err := ReadTable(text, delimiter)
	if err != nil {
		return nil, 0, fmt.Errorf("export parser: %w", err)
	}
	if len(headers) == 0 {
		return nil, 0, nil
	}

	resolver := NewColumnResolver(headers)
	var trades []models.Trade
	skipped := 0
	for _, cells := range rows {
		trade, ok := extractTrade(resolver, cells)
		if !ok {
			skipped++
			continue
		}
		trades = append(trades, trade)
	}
	if skipped > 0 {
		logger.L.Debug("Dropped rows during export parse", "skipped", skipped, "kept", len(trades))
	}
	return trades, skipped, nil
}

// extractTrade maps one data row onto the canonical trade shape. A trade is
// only constructed when both the order id and the open time resolve to
// non-empty text; every other malformed field is coerced to a safe default
// instead of failing the row.
func extractTrade(resolver *ColumnResolver, cells []string) (models.Trade, bool) {
	orderID := resolver.Resolve(cells, orderKeys...)
	openedRaw := resolver.Resolve(cells, openedKeys...)
	if orderID == "" || openedRaw == "" {
		return models.Trade{}, false
	}

	openedAt, err := ParseInstant(NormalizeDate(openedRaw))
	if err != nil {
		// NormalizeDate is total, so its output always parses back.
		return models.Trade{}, false
	}
	closedAt := openedAt
	if closedRaw := resolver.Resolve(cells, closedKeys...); closedRaw != "" {
		if t, err := ParseInstant(NormalizeDate(closedRaw)); err == nil {
			closedAt = t
		}
	}

	pnl := ParseAmount(resolver.Resolve(cells, pnlKeys...))
	netPnl := ParseAmount(resolver.Resolve(cells, netPnlKeys...))

	return models.Trade{
		OrderID:     orderID,
		Symbol:      CleanSymbol(resolver.Resolve(cells, symbolKeys...)),
		Volume:      resolver.Resolve(cells, volumeKeys...),
		EntryPrice:  ParseAmount(resolver.Resolve(cells, entryKeys...)),
		ClosePrice:  ParseAmount(resolver.Resolve(cells, closeKeys...)),
		Pnl:         pnl,
		NetPnl:      netPnl,
		ChargesSwap: orEmpty(resolver.Resolve(cells, chargesKeys...), "0.00/0.00"),
		OpenedAt:    openedAt,
		ClosedAt:    closedAt,
		Status:      orEmpty(resolver.Resolve(cells, statusKeys...), "Closed"),
	}, true
}
