package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNoisyHeader(t *testing.T) {
	resolver := NewColumnResolver([]string{"Symbol ", "Closed/Total Vol. (Lots)", " Entry Price"})
	cells := []string{"EURUSD", "0.05/0.05", "1085.5"}

	assert.Equal(t, "0.05/0.05", resolver.Resolve(cells, "ClosedTotalVolLots"))
	assert.Equal(t, "EURUSD", resolver.Resolve(cells, "Symbol"))
	assert.Equal(t, "1085.5", resolver.Resolve(cells, "EntryPrice"))
}

func TestResolveFallbackChain(t *testing.T) {
	resolver := NewColumnResolver([]string{"Ticket", "Profit"})
	cells := []string{"#42", "10.5"}

	assert.Equal(t, "#42", resolver.Resolve(cells, orderKeys...))
	assert.Equal(t, "10.5", resolver.Resolve(cells, pnlKeys...))
	// NetPnL column absent: netPnlKeys fall back to the PnL/Profit cell.
	assert.Equal(t, "10.5", resolver.Resolve(cells, netPnlKeys...))
}

func TestResolveSkipsEmptyCells(t *testing.T) {
	// Both headers are present but the preferred cell is empty, so the
	// fallback value is returned.
	resolver := NewColumnResolver([]string{"NetPnL", "PnL"})
	cells := []string{"", "3.30"}

	assert.Equal(t, "3.30", resolver.Resolve(cells, netPnlKeys...))
}

func TestResolveNoMatch(t *testing.T) {
	resolver := NewColumnResolver([]string{"Unrelated"})
	assert.Equal(t, "", resolver.Resolve([]string{"x"}, "Symbol"))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "closedtotalvollots", normalizeHeader("Closed/Total Vol. (Lots)"))
	assert.Equal(t, "opened", normalizeHeader(" Opened\r\n"))
	assert.Equal(t, "", normalizeHeader("  ??? "))
}
