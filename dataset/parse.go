package dataset

import (
	"fmt"
	"io"
	"strings"
	"time"

	"hermannm.dev/coviddash/csv"
	"hermannm.dev/wrap"
)

const (
	columnLocation = "location"
	columnDate     = "date"
)

type columnIndexes struct {
	location int
	date     int
	// Only contains fields whose column is in the header.
	fields map[Field]int
}

// Parses the CSV data from the given source into a dataset. The location and date columns are
// required, while missing numeric columns are treated as having no values.
func Parse(source string, data io.Reader) (*Dataset, error) {
	reader, err := csv.NewReader(data)
	if err != nil {
		return nil, wrap.Error(err, "failed to read dataset CSV")
	}

	indexes, err := findColumns(reader)
	if err != nil {
		return nil, err
	}

	var observations []Observation
	for {
		row, rowNumber, done, err := reader.ReadRow()
		if done {
			break
		}
		if err != nil {
			return nil, wrap.Error(err, "failed to read dataset CSV")
		}

		observation, err := parseObservation(row, indexes)
		if err != nil {
			return nil, wrap.Errorf(err, "failed to parse row %d of dataset", rowNumber)
		}

		observations = append(observations, observation)
	}

	return newDataset(source, reader.Header(), observations), nil
}

func findColumns(reader *csv.Reader) (columnIndexes, error) {
	var indexes columnIndexes
	var errs []error

	for _, required := range []struct {
		name  string
		index *int
	}{
		{columnLocation, &indexes.location},
		{columnDate, &indexes.date},
	} {
		if index, ok := reader.ColumnIndex(required.name); ok {
			*required.index = index
		} else {
			errs = append(errs, fmt.Errorf("column '%s' missing", required.name))
		}
	}

	if len(errs) != 0 {
		return columnIndexes{}, wrap.Errors("invalid dataset header", errs...)
	}

	indexes.fields = make(map[Field]int, len(Fields))
	for _, field := range Fields {
		if index, ok := reader.ColumnIndex(field.String()); ok {
			indexes.fields[field] = index
		}
	}

	return indexes, nil
}

func parseObservation(row []string, indexes columnIndexes) (Observation, error) {
	observation := Observation{
		Location: row[indexes.location],
		Record:   row,
	}

	if dateField := strings.TrimSpace(row[indexes.date]); dateField != "" {
		date, err := time.Parse(DateLayout, dateField)
		if err != nil {
			return Observation{}, wrap.Errorf(err, "invalid date '%s'", dateField)
		}
		observation.Date = date
		observation.HasDate = true
	}

	for field, index := range indexes.fields {
		if err := observation.setField(field, row[index]); err != nil {
			return Observation{}, wrap.Errorf(
				err, "invalid value '%s' in column '%s'", row[index], field,
			)
		}
	}

	return observation, nil
}

func (observation *Observation) setField(field Field, rawValue string) (err error) {
	if field.isInteger() {
		var value Nullable[int64]
		if value, err = parseNullableInt(rawValue); err != nil {
			return err
		}

		switch field {
		case FieldPopulation:
			observation.Population = value
		case FieldTotalCases:
			observation.TotalCases = value
		case FieldTotalDeaths:
			observation.TotalDeaths = value
		case FieldTotalVaccinations:
			observation.TotalVaccinations = value
		}
		return nil
	}

	var value Nullable[float64]
	if value, err = parseNullableFloat(rawValue); err != nil {
		return err
	}

	switch field {
	case FieldNewCases:
		observation.NewCases = value
	case FieldNewDeaths:
		observation.NewDeaths = value
	case FieldNewVaccinations:
		observation.NewVaccinations = value
	default:
		return fmt.Errorf("unrecognized field %d", field)
	}
	return nil
}
