package export

import (
	"io"

	"github.com/xuri/excelize/v2"
	"hermannm.dev/coviddash/csv"
	"hermannm.dev/coviddash/dataset"
	"hermannm.dev/wrap"
)

const (
	CSVFileName    = "covid_big_data_filtered.csv"
	CSVContentType = "text/csv"

	XLSXFileName    = "covid_big_data_filtered.xlsx"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	xlsxSheetName = "covid_data"
)

// Writes the view's rows with the dataset's original columns, header first.
func WriteCSV(destination io.Writer, columns []string, view []dataset.Observation) error {
	writer, err := csv.NewWriter(destination, columns)
	if err != nil {
		return err
	}

	for i, observation := range view {
		if err := writer.WriteRow(observation.Record); err != nil {
			return wrap.Errorf(err, "failed to write observation %d of export", i+1)
		}
	}

	return writer.Close()
}

// Same table as WriteCSV, as a single-sheet Excel workbook. Fields are written as text, exactly as
// they appear in the source.
func WriteXLSX(destination io.Writer, columns []string, view []dataset.Observation) (err error) {
	workbook := excelize.NewFile()
	defer func() {
		if closeErr := workbook.Close(); closeErr != nil && err == nil {
			err = wrap.Error(closeErr, "failed to close workbook")
		}
	}()

	if err := workbook.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return wrap.Error(err, "failed to name worksheet")
	}

	stream, err := workbook.NewStreamWriter(xlsxSheetName)
	if err != nil {
		return wrap.Error(err, "failed to create worksheet writer")
	}

	if err := writeXLSXRow(stream, 1, columns); err != nil {
		return wrap.Error(err, "failed to write header row")
	}
	for i, observation := range view {
		if err := writeXLSXRow(stream, i+2, observation.Record); err != nil {
			return wrap.Errorf(err, "failed to write observation %d of export", i+1)
		}
	}

	if err := stream.Flush(); err != nil {
		return wrap.Error(err, "failed to flush worksheet")
	}

	if _, err := workbook.WriteTo(destination); err != nil {
		return wrap.Error(err, "failed to write workbook")
	}

	return nil
}

func writeXLSXRow(stream *excelize.StreamWriter, rowNumber int, fields []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return err
	}

	values := make([]any, len(fields))
	for i, field := range fields {
		values[i] = field
	}

	return stream.SetRow(cell, values)
}
