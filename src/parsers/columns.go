package parsers

import "strings"

// Canonical field names and their fallback chains, tried in order. The
// resolver returns the first non-empty cell whose header matches, which is
// how e.g. NetPnL silently falls back to PnL on exports that lack a net
// column.
var (
	symbolKeys   = []string{"Symbol"}
	volumeKeys   = []string{"ClosedTotalVolLots", "Volume", "Vol"}
	entryKeys    = []string{"EntryPrice"}
	closeKeys    = []string{"AvgPrice", "ClosePrice"}
	pnlKeys      = []string{"PnL", "Profit"}
	netPnlKeys   = []string{"NetPnL", "PnL"}
	chargesKeys  = []string{"ChargesSwap", "Swap"}
	openedKeys   = []string{"Opened", "OpenTime", "Time"}
	closedKeys   = []string{"Closed", "CloseTime", "Time"}
	orderKeys    = []string{"Order", "Ticket", "Position"}
	statusKeys   = []string{"Status"}
)

// ColumnResolver maps canonical field names onto whatever header text a
// broker actually exported, ignoring casing, punctuation and stray
// whitespace ("Closed/Total Vol. (Lots)" matches ClosedTotalVolLots).
type ColumnResolver struct {
	index map[string]int // normalized header -> column position
}

// NewColumnResolver builds the lookup table for one header row. When two
// headers normalize to the same key the first occurrence wins.
func NewColumnResolver(headers []string) *ColumnResolver {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := normalizeHeader(h)
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	return &ColumnResolver{index: index}
}

// Resolve returns the first non-empty cell matching any of the requested
// names, or "" when none match.
func (r *ColumnResolver) Resolve(cells []string, names ...string) string {
	for _, name := range names {
		i, ok := r.index[normalizeHeader(name)]
		if !ok || i >= len(cells) {
			continue
		}
		if cells[i] != "" {
			return cells[i]
		}
	}
	return ""
}

// normalizeHeader lowercases and strips everything outside ASCII [a-z0-9].
func normalizeHeader(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range strings.ToLower(s) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}
