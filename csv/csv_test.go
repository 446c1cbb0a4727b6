package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderLooksUpColumnsByHeader(t *testing.T) {
	reader, err := NewReader(strings.NewReader("\ufefflocation,date\nNorway,2021-01-01\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"location", "date"}, reader.Header())

	index, ok := reader.ColumnIndex("location")
	assert.True(t, ok)
	assert.Equal(t, 0, index)

	_, ok = reader.ColumnIndex("population")
	assert.False(t, ok)

	row, rowNumber, done, err := reader.ReadRow()
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 2, rowNumber)
	assert.Equal(t, []string{"Norway", "2021-01-01"}, row)

	_, _, done, err = reader.ReadRow()
	require.NoError(t, err)
	assert.True(t, done)
}

func TestReaderRejectsEmptyInput(t *testing.T) {
	_, err := NewReader(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReaderRejectsDuplicateColumns(t *testing.T) {
	_, err := NewReader(strings.NewReader("date,date\n"))
	assert.ErrorContains(t, err, "duplicate column 'date'")
}

func TestReaderRejectsShortRows(t *testing.T) {
	reader, err := NewReader(strings.NewReader("a,b,c\n1,2\n"))
	require.NoError(t, err)

	_, _, done, err := reader.ReadRow()
	assert.False(t, done)
	assert.ErrorContains(t, err, "row 2 has 2 fields, expected 3")
}

func TestWriterRoundTrip(t *testing.T) {
	var output bytes.Buffer

	writer, err := NewWriter(&output, []string{"location", "note"})
	require.NoError(t, err)
	require.NoError(t, writer.WriteRow([]string{"País A", "has, comma"}))
	require.NoError(t, writer.Close())

	assert.Equal(t, "location,note\nPaís A,\"has, comma\"\n", output.String())
}

func TestWriterRejectsWrongFieldCount(t *testing.T) {
	writer, err := NewWriter(&bytes.Buffer{}, []string{"a", "b"})
	require.NoError(t, err)

	err = writer.WriteRow([]string{"1"})
	assert.ErrorIs(t, err, errFieldCount)
}
