package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTableBasic(t *testing.T) {
	headers, rows, err := ReadTable("a,b,c\n1,2,3\n4,5,6\n", ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, headers)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5", "6"}}, rows)
}

func TestReadTableQuotedFieldWithEmbeddedNewlineAndDelimiter(t *testing.T) {
	text := "name,note\nEURUSD,\"line one\nline two, still the same cell\"\n"
	headers, rows, err := ReadTable(text, ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "note"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, "line one\nline two, still the same cell", rows[0][1])
}

func TestReadTableDoubledQuotes(t *testing.T) {
	_, rows, err := ReadTable("a,b\n\"say \"\"hi\"\"\",2\n", ',')
	require.NoError(t, err)
	assert.Equal(t, `say "hi"`, rows[0][0])
}

func TestReadTableSkipsBlankLines(t *testing.T) {
	headers, rows, err := ReadTable("\n\na,b\n\n1,2\n\n", ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, headers)
	assert.Len(t, rows, 1)
}

func TestReadTableShortRowsPadded(t *testing.T) {
	_, rows, err := ReadTable("a,b,c\n1,2\n", ',')
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1", "2", ""}, rows[0])
}

func TestReadTableTabDelimited(t *testing.T) {
	headers, rows, err := ReadTable("a\tb\n1,5\t2\n", '\t')
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, headers)
	assert.Equal(t, []string{"1,5", "2"}, rows[0])
}

func TestReadTableEmptyInput(t *testing.T) {
	headers, rows, err := ReadTable("", ',')
	require.NoError(t, err)
	assert.Nil(t, headers)
	assert.Nil(t, rows)
}
