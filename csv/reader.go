package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"hermannm.dev/wrap"
)

type Reader struct {
	inner      *csv.Reader
	header     []string
	columns    map[string]int
	currentRow int
}

// Reads the header row from the given source, so that fields of subsequent rows can be looked up
// by column name.
func NewReader(source io.Reader) (*Reader, error) {
	inner := csv.NewReader(source)
	inner.FieldsPerRecord = -1

	reader := &Reader{inner: inner, currentRow: 0}

	header, err := reader.readHeaderRow()
	if err != nil {
		return nil, wrap.Error(err, "failed to read CSV header row")
	}

	reader.header = header
	reader.columns = make(map[string]int, len(header))
	for i, column := range header {
		if _, duplicate := reader.columns[column]; duplicate {
			return nil, fmt.Errorf("duplicate column '%s' in CSV header", column)
		}
		reader.columns[column] = i
	}

	return reader, nil
}

// Returns a copy of the header row.
func (reader *Reader) Header() []string {
	header := make([]string, len(reader.header))
	copy(header, reader.header)
	return header
}

func (reader *Reader) ColumnIndex(column string) (index int, ok bool) {
	index, ok = reader.columns[column]
	return index, ok
}

// The returned row is not reused between calls, so callers may keep it.
func (reader *Reader) ReadRow() (row []string, rowNumber int, done bool, err error) {
	reader.currentRow++

	row, err = reader.inner.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, true, nil
		} else {
			return nil, 0, false, err
		}
	}

	if reader.header != nil && len(row) != len(reader.header) {
		return nil, reader.currentRow, false, fmt.Errorf(
			"row %d has %d fields, expected %d from header",
			reader.currentRow,
			len(row),
			len(reader.header),
		)
	}

	return row, reader.currentRow, false, nil
}

func (reader *Reader) readHeaderRow() (row []string, err error) {
	row, rowNumber, done, err := reader.ReadRow()
	if done {
		return nil, errors.New("csv file ended before header row")
	}
	if err != nil {
		return nil, err
	}
	if rowNumber != 1 {
		return nil, errors.New("tried to read header row after reading previous rows")
	}

	// A UTF-8 byte order mark is kept by encoding/csv as part of the first field.
	if len(row) > 0 {
		row[0] = trimByteOrderMark(row[0])
	}

	return row, nil
}

func trimByteOrderMark(field string) string {
	return strings.TrimPrefix(field, "\ufeff")
}
