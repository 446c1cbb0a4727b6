package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"hermannm.dev/wrap"
)

var errFieldCount = errors.New("wrong number of fields in row")

type Writer struct {
	inner      *csv.Writer
	columns    int
	currentRow int
}

// Writes the header row immediately. Rows written afterwards must have the same number of fields.
func NewWriter(destination io.Writer, header []string) (*Writer, error) {
	writer := &Writer{inner: csv.NewWriter(destination), columns: len(header), currentRow: 0}

	if err := writer.WriteRow(header); err != nil {
		return nil, wrap.Error(err, "failed to write CSV header row")
	}

	return writer, nil
}

func (writer *Writer) WriteRow(row []string) error {
	writer.currentRow++

	if len(row) != writer.columns {
		return fmt.Errorf(
			"row %d has %d fields, expected %d: %w",
			writer.currentRow,
			len(row),
			writer.columns,
			errFieldCount,
		)
	}

	return writer.inner.Write(row)
}

// Must be called after the last row, to flush buffered output to the destination.
func (writer *Writer) Close() error {
	writer.inner.Flush()
	if err := writer.inner.Error(); err != nil {
		return wrap.Error(err, "failed to flush CSV output")
	}
	return nil
}
