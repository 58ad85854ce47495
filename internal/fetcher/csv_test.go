package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_Basic(t *testing.T) {
	input := "name,age\nalice,30\nbob,25\n"
	table, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "alice", table.Cell(table.Rows[0], "name"))
	assert.Equal(t, "25", table.Cell(table.Rows[1], "age"))
}

func TestReadCSV_TrimSpace(t *testing.T) {
	input := "name , city\n alice , cambridge \n"
	table, err := ReadCSV(strings.NewReader(input), CSVOptions{TrimSpace: true})
	require.NoError(t, err)
	assert.Equal(t, "alice", table.Cell(table.Rows[0], "name"))
	assert.Equal(t, "cambridge", table.Cell(table.Rows[0], "city"))
}

func TestReadCSV_VariableFields(t *testing.T) {
	input := "a,b,c\n1,2\n4,5,6,7\n"
	table, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	// Short rows return "" for missing columns.
	assert.Equal(t, "", table.Cell(table.Rows[0], "c"))
	assert.Equal(t, "6", table.Cell(table.Rows[1], "c"))
}

func TestReadCSV_MissingColumn(t *testing.T) {
	input := "a,b\n1,2\n"
	table, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)

	assert.Equal(t, -1, table.Col("zzz"))
	assert.Equal(t, "", table.Cell(table.Rows[0], "zzz"))
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), CSVOptions{})
	require.Error(t, err)
}

func TestReadCSV_PipeDelimited(t *testing.T) {
	input := "a|b\n1|2\n"
	table, err := ReadCSV(strings.NewReader(input), CSVOptions{Delimiter: '|'})
	require.NoError(t, err)
	assert.Equal(t, "2", table.Cell(table.Rows[0], "b"))
}
